package codec

import (
	"encoding/json"

	"github.com/unkn0wn-root/glcache"
)

type JSONCodec struct{}

func (JSONCodec) Encode(s glcache.Snapshot) ([]byte, error) { return json.Marshal(s) }
func (JSONCodec) Decode(b []byte) (glcache.Snapshot, error) {
	var s glcache.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return glcache.Snapshot{}, err
	}
	return s, Check(s)
}
