// Package sloghooks reports glcache and preset store events to a
// *slog.Logger, with sampling for the per-call events.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/glcache"
	"github.com/unkn0wn-root/glcache/presets"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ElidedEvery   uint64
	LiveReadEvery uint64
	// Scope pops that issued no calls are skipped unless set.
	EmptyScopes bool
	// Optional preset key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	elidedCtr atomic.Uint64
	liveCtr   atomic.Uint64
}

var (
	_ glcache.Hooks = (*Hooks)(nil)
	_ presets.Hooks = (*Hooks)(nil)
)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) CallElided(op string) {
	if h.l == nil || !sample(h.opts.ElidedEvery, &h.elidedCtr) {
		return
	}
	h.l.Debug("glcache.call_elided", "op", op)
}

func (h *Hooks) LiveRead(id glcache.Param, reason string) {
	if h.l == nil || !sample(h.opts.LiveReadEvery, &h.liveCtr) {
		return
	}
	h.l.Debug("glcache.live_read",
		"param", id.String(),
		"reason", reason)
}

func (h *Hooks) ScopeRestored(depth, calls int) {
	if h.l == nil || (calls == 0 && !h.opts.EmptyScopes) {
		return
	}
	h.l.Debug("glcache.scope_restored",
		"depth", depth,
		"calls", calls)
}

func (h *Hooks) OpMissing(op string) {
	if h.l == nil {
		return
	}
	h.l.Info("glcache.op_missing", "op", op)
}

func (h *Hooks) SelfHeal(key, reason string) {
	if h.l == nil {
		return
	}
	h.l.Warn("glcache.preset_self_heal",
		"key", h.redact(key),
		"reason", reason)
}

func (h *Hooks) SetRejected(key string) {
	if h.l == nil {
		return
	}
	h.l.Warn("glcache.preset_set_rejected", "key", h.redact(key))
}
