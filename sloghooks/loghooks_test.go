package sloghooks

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/glcache"
)

func TestSampling(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := New(l, Options{ElidedEvery: 3})

	for i := 0; i < 9; i++ {
		h.CallElided(glcache.OpBlendFunc)
	}
	if n := strings.Count(buf.String(), "glcache.call_elided"); n != 3 {
		t.Fatalf("logged %d elided calls, want 3", n)
	}

	buf.Reset()
	h.ScopeRestored(1, 0)
	h.ScopeRestored(1, 2)
	if n := strings.Count(buf.String(), "glcache.scope_restored"); n != 1 {
		t.Fatalf("logged %d scope pops, want 1", n)
	}
}

func TestRedactsPresetKeys(t *testing.T) {
	var buf bytes.Buffer
	h := New(slog.New(slog.NewTextHandler(&buf, nil)), Options{})
	h.SelfHeal("preset:ns:secret", "frame")
	if strings.Contains(buf.String(), "secret") || !strings.Contains(buf.String(), "reason=frame") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}
