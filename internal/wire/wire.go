// Package wire frames encoded snapshots for storage in a preset provider.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	version    byte = 1
	kindPreset byte = 1

	hdrLen = 4 + 1 + 1 + 8 + 2
)

var (
	ErrCorrupt = errors.New("glcache: corrupt preset")
	magic4     = [...]byte{'G', 'L', 'S', 'C'}
)

// Frame is one stored preset. Name is repeated inside the frame so a value
// read under the wrong key is detected.
type Frame struct {
	Name    string
	Gen     uint64
	Payload []byte
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode lays out f as:
//
//	magic(4) | ver(1) | kind(1=preset) | gen(u64 be) | nameLen(u16 be) | name | plen(u32 be) | payload(plen)
func Encode(f Frame) ([]byte, error) {
	if l := len(f.Name); l == 0 || l > 0xFFFF {
		return nil, fmt.Errorf("glcache: invalid preset name length %d", l)
	}
	var buf bytes.Buffer
	buf.Grow(hdrLen + len(f.Name) + 4 + len(f.Payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindPreset)

	var u8 [8]byte
	var u4 [4]byte
	var u2 [2]byte

	binary.BigEndian.PutUint64(u8[:], f.Gen)
	buf.Write(u8[:])

	binary.BigEndian.PutUint16(u2[:], uint16(len(f.Name)))
	buf.Write(u2[:])
	buf.WriteString(f.Name)

	binary.BigEndian.PutUint32(u4[:], uint32(len(f.Payload)))
	buf.Write(u4[:])
	buf.Write(f.Payload)
	return buf.Bytes(), nil
}

// Decode parses a frame written by Encode. The returned payload aliases b.
func Decode(b []byte) (Frame, error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version || b[5] != kindPreset {
		return Frame{}, ErrCorrupt
	}
	off := 6

	gen := binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	nlen := int(binary.BigEndian.Uint16(b[off : off+2]))
	off += 2
	if nlen == 0 || nlen > len(b)-off {
		return Frame{}, ErrCorrupt
	}
	name := string(b[off : off+nlen])
	off += nlen

	if off+4 > len(b) {
		return Frame{}, ErrCorrupt
	}
	plen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	// exact length: trailing bytes mean a torn or foreign write
	if plen != len(b)-off {
		return Frame{}, ErrCorrupt
	}

	return Frame{Name: name, Gen: gen, Payload: b[off:]}, nil
}
