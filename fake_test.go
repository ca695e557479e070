package glcache

import (
	"errors"
	"testing"
)

// fakeGL is an in-memory WebGL context. Setters apply their arguments with
// the same adapters the cache uses and count every call; queries count live
// reads.
type fakeGL struct {
	state map[Param]Value
	calls map[string]int
	funcs map[string]Func
	reads int
}

var _ Context = (*fakeGL)(nil)

func newFakeGL(missing ...string) *fakeGL {
	g := &fakeGL{
		state: make(map[Param]Value),
		calls: make(map[string]int),
		funcs: make(map[string]Func),
	}
	tbl := WebGL()
	for id, v := range tbl.Defaults {
		g.state[id] = v
	}
	g.state[VIEWPORT] = Ints(0, 0, 300, 150)
	g.state[SCISSOR_BOX] = Ints(0, 0, 300, 150)
	g.state[MAX_TEXTURE_SIZE] = Int(4096)
	g.state[CURRENT_PROGRAM] = Int(0)

	for op, adapt := range tbl.Adapters {
		op, adapt := op, adapt
		g.funcs[op] = func(args ...Value) {
			g.calls[op]++
			adapt(g.apply, args...)
		}
	}
	g.funcs[OpUseProgram] = func(args ...Value) {
		g.calls[OpUseProgram]++
		g.state[CURRENT_PROGRAM] = args[0]
	}
	g.funcs["drawArrays"] = func(...Value) { g.calls["drawArrays"]++ }

	for _, op := range missing {
		delete(g.funcs, op)
	}
	return g
}

func (g *fakeGL) apply(cs ...Change) (bool, Value) {
	for _, c := range cs {
		g.state[c.ID] = c.Value
	}
	return true, Value{}
}

func (g *fakeGL) GetParameter(id Param) Value {
	g.reads++
	return g.state[id]
}

func (g *fakeGL) IsEnabled(id Param) bool {
	g.reads++
	return g.state[id].Bool()
}

func (g *fakeGL) Func(op string) (Func, bool) {
	f, ok := g.funcs[op]
	return f, ok
}

func (g *fakeGL) totalCalls() int {
	n := 0
	for _, c := range g.calls {
		n += c
	}
	return n
}

type recHooks struct {
	elided   map[string]int
	live     map[string]int
	restored []int
	missing  []string
}

func newRecHooks() *recHooks {
	return &recHooks{elided: make(map[string]int), live: make(map[string]int)}
}

func (h *recHooks) CallElided(op string)            { h.elided[op]++ }
func (h *recHooks) LiveRead(_ Param, reason string) { h.live[reason]++ }
func (h *recHooks) ScopeRestored(_ int, calls int)  { h.restored = append(h.restored, calls) }
func (h *recHooks) OpMissing(op string)             { h.missing = append(h.missing, op) }

// mustAssert runs fn and fails unless it panics with an *AssertionError
// wrapping target.
func mustAssert(t testing.TB, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected panic with %v, got %v", target, r)
			return
		}
		var ae *AssertionError
		if !errors.As(err, &ae) || !errors.Is(err, target) {
			t.Fatalf("expected AssertionError wrapping %v, got %T: %v", target, err, err)
		}
	}()
	fn()
}

// markedGL is a fakeGL that carries its tracker.
type markedGL struct {
	*fakeGL
	tracker *Tracked
}

var _ Trackable = (*markedGL)(nil)

func (m *markedGL) Tracker() *Tracked     { return m.tracker }
func (m *markedGL) SetTracker(t *Tracked) { m.tracker = t }

// recLogger keeps the messages logged at Warn and above.
type recLogger struct {
	NopLogger
	warns []string
}

func (l *recLogger) Warn(msg string, _ Fields)  { l.warns = append(l.warns, msg) }
func (l *recLogger) Error(msg string, _ Fields) { l.warns = append(l.warns, msg) }
