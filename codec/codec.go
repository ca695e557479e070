// Package codec serializes glcache snapshots for storage in a preset store.
package codec

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/glcache"
)

// ErrMalformed is returned by Decode when the payload parses but does not
// describe a usable snapshot.
var ErrMalformed = errors.New("codec: malformed snapshot")

// Codec encodes/decodes snapshots to []byte for storage.
type Codec interface {
	Encode(glcache.Snapshot) ([]byte, error)
	Decode([]byte) (glcache.Snapshot, error)
}

// Check verifies that entries are strictly ordered by param and that every
// record rebuilds into a valid value. Decoders call it before returning.
func Check(s glcache.Snapshot) error {
	for i, r := range s.Entries {
		if i > 0 && s.Entries[i-1].ID >= r.ID {
			return fmt.Errorf("%w: entry %d out of order (%v after %v)", ErrMalformed, i, r.ID, s.Entries[i-1].ID)
		}
		if !r.Value().IsValid() {
			return fmt.Errorf("%w: entry %d (%v) has no valid %v value", ErrMalformed, i, r.ID, r.Kind)
		}
	}
	return nil
}
