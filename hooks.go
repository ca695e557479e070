package glcache

// Hooks are lightweight callbacks for high-frequency events.
// Implementations MUST be cheap and non-blocking: they run inside every
// intercepted call.
type Hooks interface {
	// A setter call was dropped because the cache already held its values.
	CallElided(op string)

	// A query bypassed the cache.
	// reason ∈ {"undefined", "blacklisted", "disabled", "fill", "not_capability"}
	LiveRead(id Param, reason string)

	// A scope frame was popped. depth is the stack depth before the pop,
	// calls the number of setter calls issued to restore it.
	ScopeRestored(depth, calls int)

	// A table op is not implemented by the underlying context and was left
	// unwrapped.
	OpMissing(op string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) CallElided(string)      {}
func (NopHooks) LiveRead(Param, string) {}
func (NopHooks) ScopeRestored(int, int) {}
func (NopHooks) OpMissing(string)       {}
