package presets

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/unkn0wn-root/glcache"
	"github.com/unkn0wn-root/glcache/codec"
	"github.com/unkn0wn-root/glcache/internal/wire"
	pr "github.com/unkn0wn-root/glcache/provider"
)

type memEntry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type memProvider struct {
	m      map[string]memEntry
	reject bool
}

var (
	_ pr.Provider = (*memProvider)(nil)
	_ pr.Lister   = (*memProvider)(nil)
)

func newMemProvider() *memProvider { return &memProvider{m: make(map[string]memEntry)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := p.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(p.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if p.reject {
		return false, nil
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	p.m[key] = memEntry{v: value, exp: exp}
	return true, nil
}

func (p *memProvider) Keys(_ context.Context, prefix string) ([]string, error) {
	var out []string
	for k := range p.m {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (p *memProvider) Del(_ context.Context, key string) error { delete(p.m, key); return nil }
func (p *memProvider) Close(_ context.Context) error           { return nil }

// noList hides memProvider's Keys.
type noList struct{ pr.Provider }

type recHooks struct {
	heals    []string
	rejected int
}

func (h *recHooks) SelfHeal(_, reason string) { h.heals = append(h.heals, reason) }
func (h *recHooks) SetRejected(string)        { h.rejected++ }

// glStub is a map-backed context whose setters apply the WebGL adapters.
type glStub struct {
	state map[glcache.Param]glcache.Value
	funcs map[string]glcache.Func
	calls int
}

func newGLStub() *glStub {
	g := &glStub{state: make(map[glcache.Param]glcache.Value), funcs: make(map[string]glcache.Func)}
	tbl := glcache.WebGL()
	for id, v := range tbl.Defaults {
		g.state[id] = v
	}
	g.state[glcache.VIEWPORT] = glcache.Ints(0, 0, 300, 150)
	apply := func(cs ...glcache.Change) (bool, glcache.Value) {
		for _, c := range cs {
			g.state[c.ID] = c.Value
		}
		return true, glcache.Value{}
	}
	for op, adapt := range tbl.Adapters {
		adapt := adapt
		g.funcs[op] = func(args ...glcache.Value) {
			g.calls++
			adapt(apply, args...)
		}
	}
	return g
}

func (g *glStub) GetParameter(id glcache.Param) glcache.Value { return g.state[id] }
func (g *glStub) IsEnabled(id glcache.Param) bool             { return g.state[id].Bool() }
func (g *glStub) Func(op string) (glcache.Func, bool) {
	f, ok := g.funcs[op]
	return f, ok
}

func newTestStore(t *testing.T, mp pr.Provider, optsOpt func(*Options)) *Store {
	t.Helper()
	opts := Options{Namespace: "test", Provider: mp}
	if optsOpt != nil {
		optsOpt(&opts)
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// ==============================
// Save / Load
// ==============================

// TestCaptureRestore saves the state of one context and re-applies it to a
// fresh one.
func TestCaptureRestore(t *testing.T) {
	ctx := context.Background()
	for name, cd := range map[string]codec.Codec{
		"msgpack": nil, // default
		"json":    codec.JSONCodec{},
		"cbor":    codec.MustCBOR(true),
		"proto":   codec.Proto{},
	} {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t, newMemProvider(), func(o *Options) { o.Codec = cd })

			src := glcache.Track(newGLStub(), glcache.Options{})
			src.Call(glcache.OpEnable, glcache.Enum(glcache.DEPTH_TEST))
			src.Call(glcache.OpDepthFunc, glcache.Enum(glcache.ALWAYS))
			src.Call(glcache.OpColorMask, glcache.Bool(true), glcache.Bool(false), glcache.Bool(true), glcache.Bool(false))
			if err := s.Capture(ctx, src, "overlay"); err != nil {
				t.Fatalf("Capture: %v", err)
			}

			g := newGLStub()
			dst := glcache.Track(g, glcache.Options{})
			calls, ok, err := s.Restore(ctx, dst, "overlay")
			if err != nil || !ok {
				t.Fatalf("Restore: ok=%v err=%v", ok, err)
			}
			if calls != 3 || g.calls != 3 {
				t.Fatalf("calls = %d (context saw %d), want 3", calls, g.calls)
			}
			if !g.state[glcache.DEPTH_FUNC].Equal(glcache.Enum(glcache.ALWAYS)) ||
				!g.state[glcache.COLOR_WRITEMASK].Equal(glcache.Bools(true, false, true, false)) ||
				!dst.IsEnabled(glcache.DEPTH_TEST) {
				t.Fatalf("state not restored")
			}
		})
	}
}

func TestLoadMiss(t *testing.T) {
	s := newTestStore(t, newMemProvider(), nil)
	if _, ok, err := s.Load(context.Background(), "nope"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := s.Restore(context.Background(), glcache.Track(newGLStub(), glcache.Options{}), "nope"); ok || err != nil {
		t.Fatalf("expected clean miss on Restore, got ok=%v err=%v", ok, err)
	}
}

// TestSelfHeal: every kind of invalid stored value is dropped on Load.
func TestSelfHeal(t *testing.T) {
	ctx := context.Background()
	snap := glcache.Snapshot{Gen: 3, Entries: []glcache.Record{
		glcache.NewRecord(glcache.LINE_WIDTH, glcache.Float(2)),
	}}
	payload, err := codec.Msgpack{}.Encode(snap)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	frame := func(f wire.Frame) []byte {
		b, err := wire.Encode(f)
		if err != nil {
			t.Fatalf("wire.Encode: %v", err)
		}
		return b
	}

	cases := []struct {
		reason string
		raw    []byte
	}{
		{"frame", []byte("not a frame")},
		{"name", frame(wire.Frame{Name: "other", Gen: 3, Payload: payload})},
		{"codec", frame(wire.Frame{Name: "p", Gen: 3, Payload: []byte{0xC1}})},
		{"gen", frame(wire.Frame{Name: "p", Gen: 4, Payload: payload})},
	}
	for _, tc := range cases {
		t.Run(tc.reason, func(t *testing.T) {
			mp := newMemProvider()
			h := &recHooks{}
			s := newTestStore(t, mp, func(o *Options) { o.Hooks = h })
			mp.m["preset:test:p"] = memEntry{v: tc.raw}

			if _, ok, err := s.Load(ctx, "p"); ok || err != nil {
				t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
			}
			if _, present := mp.m["preset:test:p"]; present {
				t.Fatalf("invalid value not deleted")
			}
			if len(h.heals) != 1 || h.heals[0] != tc.reason {
				t.Fatalf("heals = %v, want [%s]", h.heals, tc.reason)
			}
		})
	}
}

func TestMaxPayload(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	h := &recHooks{}
	s := newTestStore(t, mp, func(o *Options) { o.MaxPayload = 4; o.Hooks = h })
	src := glcache.Track(newGLStub(), glcache.Options{})
	if err := s.Capture(ctx, src, "big"); err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if _, ok, _ := s.Load(ctx, "big"); ok {
		t.Fatalf("oversized payload must not load")
	}
	if len(h.heals) != 1 || h.heals[0] != "codec" {
		t.Fatalf("heals = %v", h.heals)
	}
}

func TestSetRejected(t *testing.T) {
	mp := newMemProvider()
	mp.reject = true
	h := &recHooks{}
	s := newTestStore(t, mp, func(o *Options) { o.Hooks = h })
	if err := s.Save(context.Background(), "p", glcache.Snapshot{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if h.rejected != 1 {
		t.Fatalf("rejected = %d", h.rejected)
	}
}

// ==============================
// Names / listing
// ==============================

func TestNameValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := New(Options{Namespace: "a:b", Provider: newMemProvider()}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("namespace: expected ErrInvalidName, got %v", err)
	}
	if _, err := New(Options{Namespace: "ok"}); err == nil {
		t.Fatalf("expected error without provider")
	}
	s := newTestStore(t, newMemProvider(), nil)
	for _, n := range []string{"", "a:b", "x*", "[y]"} {
		if err := s.Save(ctx, n, glcache.Snapshot{}); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("Save(%q): expected ErrInvalidName, got %v", n, err)
		}
		if _, _, err := s.Load(ctx, n); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("Load(%q): expected ErrInvalidName, got %v", n, err)
		}
	}
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	s := newTestStore(t, mp, nil)
	other := newTestStore(t, mp, func(o *Options) { o.Namespace = "other" })

	for _, n := range []string{"b", "a", "c"} {
		if err := s.Save(ctx, n, glcache.Snapshot{}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if err := other.Save(ctx, "z", glcache.Snapshot{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if want := []string{"a", "c"}; strings.Join(got, ",") != strings.Join(want, ",") || !sort.StringsAreSorted(got) {
		t.Fatalf("List = %v, want %v", got, want)
	}

	nl := newTestStore(t, noList{mp}, nil)
	if _, err := nl.List(ctx); !errors.Is(err, ErrListUnsupported) {
		t.Fatalf("expected ErrListUnsupported, got %v", err)
	}
}
