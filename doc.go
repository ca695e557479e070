// Package glcache keeps a shadow cache of a graphics context's state
// (capability flags, blend/depth/stencil parameters, viewport, pixel store,
// bound program) so queries do not round-trip to the context, redundant
// setter calls are dropped, and state can be saved and restored in nested
// scopes.
//
// Components:
//   - Table: which params are cacheable, their defaults, how each setter
//     maps to params (Adapter) and how params are re-applied (RestoreRule).
//     WebGL() is the built-in table.
//   - Tracked: decorator over a Context. Setters listed in the table are
//     wrapped; GetParameter and IsEnabled are served from the cache.
//   - Scopes: Push records the pre-change value of every param first changed
//     in the scope; Pop re-applies exactly those through the setters.
//
// Usage:
//
//	gl := glcache.Track(raw, glcache.Options{})
//	gl.Push()
//	gl.Call(glcache.OpEnable, glcache.Enum(glcache.BLEND))
//	gl.Call(glcache.OpBlendFunc, glcache.Enum(glcache.ONE), glcache.Enum(glcache.ONE))
//	draw(gl)
//	gl.Pop() // BLEND and the blend factors are back to what they were
//
// Buffer and texture bindings are not tracked. The cache assumes every
// forwarded setter call succeeds; if the context silently rejects one, the
// cache keeps stating the requested value.
package glcache
