package glcache

// Func is a set-style operation of a context. Its return value, if the
// underlying API has one, is not meaningful to the cache.
type Func func(args ...Value)

// Context is the underlying stateful graphics context: two query entry
// points and a set of named setters. Func reports false for setters the
// implementation does not provide (e.g. WebGL 2 entry points on WebGL 1).
type Context interface {
	GetParameter(id Param) Value
	IsEnabled(id Param) bool
	Func(op string) (Func, bool)
}

// setter is an installed wrapper. called reports whether the underlying
// operation was invoked.
type setter func(args ...Value) (old Value, called bool)

// Tracked decorates a Context with a state cache. Setters named by the
// table are replaced by wrappers that drop calls which would not change the
// cached state; queries are answered from the cache.
//
// A Tracked belongs to a single thread of control, like the context it
// wraps.
type Tracked struct {
	ctx     Context
	cache   *stateCache
	log     Logger
	hooks   Hooks
	setters map[string]setter

	program      Value
	programKnown bool
}

var _ Context = (*Tracked)(nil)

func newTracked(ctx Context, opts Options) *Tracked {
	table := opts.Table
	if table == nil {
		table = WebGL()
	}
	t := &Tracked{
		ctx:     ctx,
		log:     coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:   coalesce[Hooks](opts.Hooks, NopHooks{}),
		setters: make(map[string]setter, len(table.Adapters)+1),
	}
	t.cache = newStateCache(table, t.hooks, !opts.Disabled)

	if opts.CopyInitialState {
		for id := range table.Defaults {
			t.cache.entries[id] = t.live(id)
		}
	} else {
		for id, v := range table.Defaults {
			t.cache.entries[id] = v
		}
	}

	for op, adapt := range table.Adapters {
		orig, ok := ctx.Func(op)
		if !ok {
			t.hooks.OpMissing(op)
			t.log.Debug("setter not provided by context; left unwrapped", Fields{"op": op})
			continue
		}
		t.setters[op] = t.wrap(op, orig, adapt)
	}

	if op := table.ProgramOp; op != "" {
		if orig, ok := ctx.Func(op); ok {
			t.setters[op] = t.wrapProgram(op, orig)
			// without a live copy the bound handle is unknown until the
			// first bind goes through
			if opts.CopyInitialState {
				t.program = ctx.GetParameter(table.ProgramParam)
				t.programKnown = t.program.IsValid()
			}
		} else {
			t.hooks.OpMissing(op)
		}
	}

	t.log.Debug("state tracking installed", Fields{
		"wrapped":  len(t.setters),
		"copied":   opts.CopyInitialState,
		"disabled": opts.Disabled,
	})
	return t
}

// live reads id from the underlying context, using IsEnabled for
// capabilities.
func (t *Tracked) live(id Param) Value {
	if t.cache.table.capability(id) {
		return Bool(t.ctx.IsEnabled(id))
	}
	return t.ctx.GetParameter(id)
}

func (t *Tracked) update(changes ...Change) (bool, Value) {
	return t.cache.update(t.live, changes...)
}

func (t *Tracked) wrap(op string, orig Func, adapt Adapter) setter {
	return func(args ...Value) (Value, bool) {
		changed, old := adapt(t.update, args...)
		if !changed {
			t.hooks.CallElided(op)
			return Value{}, false
		}
		// the cache now states the new value whether or not orig applies it
		orig(args...)
		return old, true
	}
}

// wrapProgram caches the bound program handle on its own; it is checked far
// more often than any table param and never takes part in scopes.
func (t *Tracked) wrapProgram(op string, orig Func) setter {
	return func(args ...Value) (Value, bool) {
		p := arg(args, 0)
		if t.programKnown && t.program.Equal(p) {
			t.hooks.CallElided(op)
			return Value{}, false
		}
		old := t.program
		orig(args...)
		t.program, t.programKnown = p, true
		return old, true
	}
}

// GetParameter answers from the cache unless id is undefined or
// blacklisted, or tracking is disabled.
func (t *Tracked) GetParameter(id Param) Value {
	return t.cache.get(id, t.ctx.GetParameter)
}

// IsEnabled answers a capability query from the cache, with the same bypass
// rules as GetParameter. Ids the table does not list as capabilities are
// read live and never cached.
func (t *Tracked) IsEnabled(id Param) bool {
	if !t.cache.table.capability(id) {
		t.hooks.LiveRead(id, "not_capability")
		return t.ctx.IsEnabled(id)
	}
	return t.cache.get(id, t.live).Bool()
}

// Func returns the installed wrapper for op, or the underlying operation
// when op is not cached.
func (t *Tracked) Func(op string) (Func, bool) {
	if s, ok := t.setters[op]; ok {
		return func(args ...Value) { s(args...) }, true
	}
	return t.ctx.Func(op)
}

// Call invokes op with args and returns the previous value of the last
// param it changed. Elided calls and pass-through ops return an invalid
// Value. Ops the context does not provide are ignored.
func (t *Tracked) Call(op string, args ...Value) Value {
	if s, ok := t.setters[op]; ok {
		old, _ := s(args...)
		return old
	}
	if f, ok := t.ctx.Func(op); ok {
		f(args...)
		return Value{}
	}
	t.hooks.OpMissing(op)
	return Value{}
}

// Enabled reports whether queries are served from the cache.
func (t *Tracked) Enabled() bool { return t.cache.enabled }

// SetEnabled toggles serving queries from the cache. Setters keep updating
// the cache and eliding redundant calls either way.
func (t *Tracked) SetEnabled(on bool) {
	if t.cache.enabled != on {
		t.log.Debug("state tracking toggled", Fields{"enabled": on})
	}
	t.cache.enabled = on
}

// Underlying returns the wrapped context.
func (t *Tracked) Underlying() Context { return t.ctx }

// Depth is the number of open scopes.
func (t *Tracked) Depth() int { return len(t.cache.frames) }

// Gen is bumped on every change of the cached state.
func (t *Tracked) Gen() uint64 { return t.cache.gen }

// Push opens a scope. Params first changed inside it are restored by the
// matching Pop.
func (t *Tracked) Push() { t.cache.push() }

// Pop restores every param changed since the matching Push through the
// regular setters, then closes the scope. Popping with no open scope
// panics with an *AssertionError.
func (t *Tracked) Pop() {
	f := t.cache.top()
	assert(f != nil, "pop", ErrScopeUnderflow)

	depth := len(t.cache.frames)
	calls := t.restore(f.order, f.old)
	// the frame stays on the stack until the restore is done
	t.cache.drop()

	t.hooks.ScopeRestored(depth, calls)
	if calls > 0 {
		t.log.Debug("scope restored", Fields{"depth": depth, "params": len(f.order), "calls": calls})
	}
}

// restore re-applies vals, in order, through the restore rules of the table.
// Params sharing a rule are re-applied by one call; the rule's other params
// take their current cached value. Returns the number of underlying calls.
func (t *Tracked) restore(order []Param, vals map[Param]Value) int {
	table := t.cache.table
	done := make(map[*RestoreRule]struct{})
	calls := 0
	for _, id := range order {
		rule := table.Restore[id]
		if rule == nil {
			// lazily filled read-only state (limits) has nothing to restore
			if _, ok := table.Defaults[id]; ok {
				t.log.Warn("no restore rule for param; left as is", Fields{"param": id.String()})
			} else {
				t.log.Debug("read-only param skipped on restore", Fields{"param": id.String()})
			}
			continue
		}
		if _, ok := done[rule]; ok {
			continue
		}
		done[rule] = struct{}{}

		in := make([]Value, len(rule.Params))
		for i, p := range rule.Params {
			if v, ok := vals[p]; ok {
				in[i] = v
			} else {
				in[i] = t.cache.cached(p, t.live)
			}
		}
		op, args := rule.Apply(in)
		s, ok := t.setters[op]
		if !ok {
			t.log.Debug("restore setter not provided by context", Fields{"op": op, "param": id.String()})
			continue
		}
		if _, called := s(args...); called {
			calls++
		}
	}
	return calls
}
