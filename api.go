package glcache

// Options tune tracking. The zero value tracks a WebGL context, serves
// queries from the cache and seeds it from the table defaults.
type Options struct {
	Disabled         bool   // default false (queries served from cache)
	CopyInitialState bool   // live-read every table param instead of using defaults
	Table            *Table // nil => WebGL()
	Logger           Logger // if nil, NopLogger is used
	Hooks            Hooks  // if nil, NopHooks is used
}

// Trackable is implemented by contexts that can carry their tracker. Track,
// Push and Pop consult it, so the raw context and the *Tracked share one
// cache no matter which of the two is passed in.
type Trackable interface {
	Tracker() *Tracked
	SetTracker(*Tracked)
}

// tracker finds the cache installed on ctx, if any.
func tracker(ctx Context) (*Tracked, bool) {
	switch c := ctx.(type) {
	case *Tracked:
		return c, c != nil
	case Trackable:
		t := c.Tracker()
		return t, t != nil
	}
	return nil, false
}

func nilContext(ctx Context) bool {
	t, ok := ctx.(*Tracked)
	return ctx == nil || (ok && t == nil)
}

// Track installs a state cache on ctx and returns the tracked context, which
// must be used in place of ctx from then on. Tracking an already tracked
// context only updates its enabled flag; setters are never wrapped twice.
//
// A context is recognized as tracked when it is the *Tracked itself or
// implements Trackable. Any other raw context must be tracked once: a second
// Track on it installs an independent cache that does not see the first
// one's state.
func Track(ctx Context, opts Options) *Tracked {
	assert(!nilContext(ctx), "track", ErrNilContext)
	if t, ok := tracker(ctx); ok {
		t.SetEnabled(!opts.Disabled)
		return t
	}
	return install(ctx, opts)
}

func install(ctx Context, opts Options) *Tracked {
	t := newTracked(ctx, opts)
	if m, ok := ctx.(Trackable); ok {
		m.SetTracker(t)
	}
	return t
}

// Push opens a scope on ctx, tracking it with default Options first if it
// is not tracked yet. The same single-tracking rule as Track applies.
func Push(ctx Context) *Tracked {
	assert(!nilContext(ctx), "push", ErrNilContext)
	t, ok := tracker(ctx)
	if !ok {
		t = install(ctx, Options{})
	}
	t.Push()
	return t
}

// Pop closes the innermost scope of ctx. It panics with an *AssertionError
// if ctx is not tracked or has no open scope.
func Pop(ctx Context) {
	t, ok := tracker(ctx)
	assert(ok, "pop", ErrNotTracked)
	t.Pop()
}
