// Package asynchook moves hook delivery off the rendering thread. Events
// are queued to worker goroutines and dropped when the queue is full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    ElidedEvery: 100, // sample: ~every 100th elided call
//	})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	gl := glcache.Track(ctx, glcache.Options{Hooks: hooks})
//	store, _ := presets.New(presets.Options{Namespace: "app", Provider: p, Hooks: hooks})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/glcache"
	"github.com/unkn0wn-root/glcache/presets"
)

// Inner is what the queue delivers to.
type Inner interface {
	glcache.Hooks
	presets.Hooks
}

type Hooks struct {
	inner   Inner
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Uint64
}

var (
	_ glcache.Hooks = (*Hooks)(nil)
	_ presets.Hooks = (*Hooks)(nil)
)

func New(inner Inner, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains the queue and stops the workers. Events sent after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

// Dropped is the number of events discarded because the queue was full.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	defer func() {
		// send on closed queue
		if recover() != nil {
			h.dropped.Add(1)
		}
	}()
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) CallElided(op string)                { h.try(func() { h.inner.CallElided(op) }) }
func (h *Hooks) LiveRead(id glcache.Param, r string) { h.try(func() { h.inner.LiveRead(id, r) }) }
func (h *Hooks) ScopeRestored(depth, calls int)      { h.try(func() { h.inner.ScopeRestored(depth, calls) }) }
func (h *Hooks) OpMissing(op string)                 { h.try(func() { h.inner.OpMissing(op) }) }
func (h *Hooks) SelfHeal(key, reason string)         { h.try(func() { h.inner.SelfHeal(key, reason) }) }
func (h *Hooks) SetRejected(key string)              { h.try(func() { h.inner.SetRejected(key) }) }
