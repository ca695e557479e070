package codec

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/unkn0wn-root/glcache"
)

// CBOR is a Codec that serializes snapshots using fxamacker/cbor, with
// integer map keys.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Use deterministic=true for canonical encoding (RFC 8949 Core Deterministic)
// when equal snapshots must produce equal bytes, e.g. to dedupe presets by
// content.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec = CBOR{}

// NewCBOR constructs a CBOR codec.
//   - Deterministic is true, uses CoreDetEncOptions (RFC 8949).
//   - Otherwise uses PreferredUnsortedEncOptions.
//
// Decoding rejects duplicate map keys.
func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}

	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	dm, err := (cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}).DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Handy for package-level variables in tests/examples.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

// Encode encodes s as CBOR using the configured EncMode.
func (c CBOR) Encode(s glcache.Snapshot) ([]byte, error) {
	return c.enc.Marshal(s)
}

// Decode decodes b using the configured DecMode.
func (c CBOR) Decode(b []byte) (glcache.Snapshot, error) {
	var s glcache.Snapshot
	if err := c.dec.Unmarshal(b, &s); err != nil {
		return glcache.Snapshot{}, err
	}
	return s, Check(s)
}
