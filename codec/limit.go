package codec

import (
	"fmt"

	"github.com/unkn0wn-root/glcache"
)

// LimitCodec wraps another codec to enforce a maximum allowed payload size
// at Decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
//
// Typical use: presets read from a shared Redis written by other processes.
type LimitCodec struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec

	// MaxDecode is the maximum permitted length (in bytes) of the incoming
	// payload for Decode.
	MaxDecode int
}

func (c LimitCodec) Encode(s glcache.Snapshot) ([]byte, error) { return c.Inner.Encode(s) }
func (c LimitCodec) Decode(b []byte) (glcache.Snapshot, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return glcache.Snapshot{}, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
