package codec

import (
	"github.com/unkn0wn-root/glcache"
	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack is a Codec that serializes snapshots using vmihailenco/msgpack/v5.
// The zero value is ready to use.
type Msgpack struct{}

func (Msgpack) Encode(s glcache.Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}
func (Msgpack) Decode(b []byte) (glcache.Snapshot, error) {
	var s glcache.Snapshot
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return glcache.Snapshot{}, err
	}
	return s, Check(s)
}
