// Package presets persists named glcache snapshots in a byte store so a
// render setup captured once can be re-applied later, by this process or,
// with a shared provider, by another.
//
// Keys are "preset:<namespace>:<name>". Values are wire frames around the
// codec payload; frames that fail validation are deleted on read.
package presets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/unkn0wn-root/glcache"
	"github.com/unkn0wn-root/glcache/codec"
	"github.com/unkn0wn-root/glcache/internal/wire"
	"github.com/unkn0wn-root/glcache/provider"
)

var (
	// ErrInvalidName is returned for empty names or names containing ':' or
	// glob metacharacters.
	ErrInvalidName = errors.New("presets: invalid name")
	// ErrListUnsupported is returned by List when the provider cannot
	// enumerate keys.
	ErrListUnsupported = errors.New("presets: provider cannot list keys")
)

// Hooks report store events that are not errors to the caller.
type Hooks interface {
	// A stored value failed validation and was deleted.
	// reason ∈ {"frame", "name", "codec", "gen"}
	SelfHeal(key, reason string)

	// The provider declined a write under pressure.
	SetRejected(key string)
}

type NopHooks struct{}

func (NopHooks) SelfHeal(string, string) {}
func (NopHooks) SetRejected(string)      {}

type Options struct {
	// Namespace separates preset sets sharing a provider. Required.
	Namespace string

	// Provider stores the frames. Required; closed by Store.Close.
	Provider provider.Provider

	// Codec serializes snapshots. Default: codec.Msgpack{}.
	Codec codec.Codec

	// MaxPayload, when > 0, rejects stored payloads larger than this on Load.
	MaxPayload int

	// TTL of saved presets. Zero keeps them until deleted (or evicted).
	TTL time.Duration

	// ComputeCost prices a write for cost-aware providers. Default: len(frame).
	ComputeCost func(key string, frame []byte) int64

	Logger glcache.Logger
	Hooks  Hooks
}

type Store struct {
	ns       string
	provider provider.Provider
	codec    codec.Codec
	ttl      time.Duration
	cost     func(string, []byte) int64
	log      glcache.Logger
	hooks    Hooks
}

func New(opts Options) (*Store, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("presets: provider is required")
	}
	if err := checkName(opts.Namespace); err != nil {
		return nil, fmt.Errorf("presets: namespace: %w", err)
	}

	s := &Store{
		ns:       opts.Namespace,
		provider: opts.Provider,
		ttl:      opts.TTL,
	}
	s.codec = coalesce[codec.Codec](opts.Codec, codec.Msgpack{})
	if opts.MaxPayload > 0 {
		s.codec = codec.LimitCodec{Inner: s.codec, MaxDecode: opts.MaxPayload}
	}
	s.log = coalesce[glcache.Logger](opts.Logger, glcache.NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	if opts.ComputeCost != nil {
		s.cost = opts.ComputeCost
	} else {
		s.cost = func(_ string, b []byte) int64 { return int64(len(b)) }
	}
	return s, nil
}

func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func checkName(n string) error {
	if n == "" || strings.ContainsAny(n, ":*?[]\\") {
		return fmt.Errorf("%w: %q", ErrInvalidName, n)
	}
	return nil
}

func (s *Store) prefix() string         { return "preset:" + s.ns + ":" }
func (s *Store) key(name string) string { return s.prefix() + name }

// Save stores snap under name, replacing any previous preset.
func (s *Store) Save(ctx context.Context, name string, snap glcache.Snapshot) error {
	if err := checkName(name); err != nil {
		return err
	}
	payload, err := s.codec.Encode(snap)
	if err != nil {
		return fmt.Errorf("presets: encode %q: %w", name, err)
	}
	frame, err := wire.Encode(wire.Frame{Name: name, Gen: snap.Gen, Payload: payload})
	if err != nil {
		return err
	}
	k := s.key(name)
	ok, err := s.provider.Set(ctx, k, frame, s.cost(k, frame), s.ttl)
	if err != nil {
		return err
	}
	if !ok {
		s.hooks.SetRejected(k)
		s.log.Debug("preset rejected by provider (pressure)", glcache.Fields{"name": name})
		return nil
	}
	s.log.Debug("preset saved", glcache.Fields{"name": name, "entries": len(snap.Entries), "bytes": len(frame)})
	return nil
}

// Capture saves the current cached state of t under name.
func (s *Store) Capture(ctx context.Context, t *glcache.Tracked, name string) error {
	return s.Save(ctx, name, t.Snapshot())
}

// Load returns the preset saved under name. A missing preset and one that
// failed validation both report ok=false with a nil error; the latter is
// deleted.
func (s *Store) Load(ctx context.Context, name string) (glcache.Snapshot, bool, error) {
	if err := checkName(name); err != nil {
		return glcache.Snapshot{}, false, err
	}
	k := s.key(name)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil || !ok {
		return glcache.Snapshot{}, false, err
	}

	f, err := wire.Decode(raw)
	if err != nil {
		s.heal(ctx, k, "frame", err)
		return glcache.Snapshot{}, false, nil
	}
	if f.Name != name {
		s.heal(ctx, k, "name", fmt.Errorf("frame names %q", f.Name))
		return glcache.Snapshot{}, false, nil
	}
	snap, err := s.codec.Decode(f.Payload)
	if err != nil {
		s.heal(ctx, k, "codec", err)
		return glcache.Snapshot{}, false, nil
	}
	if snap.Gen != f.Gen {
		s.heal(ctx, k, "gen", fmt.Errorf("frame gen %d, payload gen %d", f.Gen, snap.Gen))
		return glcache.Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (s *Store) heal(ctx context.Context, key, reason string, cause error) {
	_ = s.provider.Del(ctx, key)
	s.hooks.SelfHeal(key, reason)
	s.log.Warn("dropped invalid preset", glcache.Fields{"key": key, "reason": reason, "err": cause.Error()})
}

// Restore loads the preset saved under name and applies it to t. calls is
// the number of setter calls issued; ok is false when no valid preset
// exists.
func (s *Store) Restore(ctx context.Context, t *glcache.Tracked, name string) (calls int, ok bool, err error) {
	snap, ok, err := s.Load(ctx, name)
	if err != nil || !ok {
		return 0, ok, err
	}
	return t.Apply(snap), true, nil
}

// Delete removes the preset saved under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	return s.provider.Del(ctx, s.key(name))
}

// List returns the names of the stored presets, sorted. Requires a provider
// implementing provider.Lister.
func (s *Store) List(ctx context.Context) ([]string, error) {
	l, ok := s.provider.(provider.Lister)
	if !ok {
		return nil, ErrListUnsupported
	}
	p := s.prefix()
	keys, err := l.Keys(ctx, p)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if n := strings.TrimPrefix(k, p); n != k && n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the provider.
func (s *Store) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}
