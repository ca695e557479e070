package glcache

// frame holds the pre-change value of every param first modified while it
// was the top of the scope stack, in first-modified order.
type frame struct {
	order []Param
	old   map[Param]Value
}

func newFrame() *frame { return &frame{old: make(map[Param]Value)} }

// record keeps the first value seen for id; later changes in the same scope
// must not overwrite it.
func (f *frame) record(id Param, v Value) {
	if _, ok := f.old[id]; ok {
		return
	}
	f.old[id] = v
	f.order = append(f.order, id)
}

// stateCache is the shadow copy of one context's state. Not safe for
// concurrent use; it is owned by a single Tracked.
type stateCache struct {
	table   *Table
	entries map[Param]Value
	frames  []*frame
	enabled bool
	gen     uint64 // bumped on every real change
	hooks   Hooks
}

func newStateCache(table *Table, hooks Hooks, enabled bool) *stateCache {
	return &stateCache{
		table:   table,
		entries: make(map[Param]Value, len(table.Defaults)),
		enabled: enabled,
		hooks:   hooks,
	}
}

// bypass reports whether id must never be cached.
func (c *stateCache) bypass(id Param) (string, bool) {
	if id == 0 {
		return "undefined", true
	}
	if c.table.blacklisted(id) {
		return "blacklisted", true
	}
	return "", false
}

func (c *stateCache) get(id Param, live func(Param) Value) Value {
	if reason, ok := c.bypass(id); ok {
		c.hooks.LiveRead(id, reason)
		return live(id)
	}
	v, ok := c.entries[id]
	if !ok {
		// limits and size-dependent params are not pre-populated
		c.hooks.LiveRead(id, "fill")
		v = live(id)
		c.entries[id] = v
		return v
	}
	if !c.enabled {
		c.hooks.LiveRead(id, "disabled")
		return live(id)
	}
	return v
}

// update writes changes into the cache and reports whether any of them
// differed from the cached value. A param without an entry is filled from
// live first so that the value recorded into a scope frame is real.
// Params that bypass the cache always count as changed.
func (c *stateCache) update(live func(Param) Value, changes ...Change) (changed bool, old Value) {
	for _, ch := range changes {
		if _, ok := c.bypass(ch.ID); ok {
			changed = true
			continue
		}
		cur, ok := c.entries[ch.ID]
		if !ok {
			cur = live(ch.ID)
			c.entries[ch.ID] = cur
		}
		if cur.Equal(ch.Value) {
			continue
		}
		changed, old = true, cur
		c.entries[ch.ID] = ch.Value
		c.gen++
		if f := c.top(); f != nil {
			f.record(ch.ID, cur)
		}
	}
	return changed, old
}

// cached returns the cached value of id, filling it from live if absent.
func (c *stateCache) cached(id Param, live func(Param) Value) Value {
	v, ok := c.entries[id]
	if !ok {
		v = live(id)
		c.entries[id] = v
	}
	return v
}

func (c *stateCache) top() *frame {
	if n := len(c.frames); n > 0 {
		return c.frames[n-1]
	}
	return nil
}

func (c *stateCache) push() { c.frames = append(c.frames, newFrame()) }

func (c *stateCache) drop() {
	n := len(c.frames)
	c.frames[n-1] = nil
	c.frames = c.frames[:n-1]
}
