package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/unkn0wn-root/glcache"
)

func sampleSnapshot() glcache.Snapshot {
	return glcache.Snapshot{
		Gen: 1<<60 + 7,
		Entries: []glcache.Record{
			glcache.NewRecord(glcache.LINE_WIDTH, glcache.Float(2.5)),
			glcache.NewRecord(glcache.DITHER, glcache.Bool(true)),
			glcache.NewRecord(glcache.VIEWPORT, glcache.Ints(0, 0, 640, 480)),
			glcache.NewRecord(glcache.COLOR_WRITEMASK, glcache.Bools(true, false, true, true)),
			glcache.NewRecord(glcache.STENCIL_WRITEMASK, glcache.Int(0xFFFFFFFF)),
			glcache.NewRecord(glcache.BLEND_COLOR, glcache.Floats(0.1, 0.2, 0.3, 1)),
		},
	}
}

// sorted returns s with entries ordered by param, as Tracked.Snapshot does.
func sorted(s glcache.Snapshot) glcache.Snapshot {
	out := s
	out.Entries = append([]glcache.Record(nil), s.Entries...)
	for i := 1; i < len(out.Entries); i++ {
		for j := i; j > 0 && out.Entries[j-1].ID > out.Entries[j].ID; j-- {
			out.Entries[j-1], out.Entries[j] = out.Entries[j], out.Entries[j-1]
		}
	}
	return out
}

func codecs() map[string]Codec {
	return map[string]Codec{
		"json":     JSONCodec{},
		"msgpack":  Msgpack{},
		"cbor":     MustCBOR(false),
		"cbor_det": MustCBOR(true),
		"proto":    Proto{Deterministic: true},
		"limit":    LimitCodec{Inner: Msgpack{}, MaxDecode: 1 << 16},
	}
}

func TestCodecsPreserveSnapshot(t *testing.T) {
	want := sorted(sampleSnapshot())
	for name, c := range codecs() {
		t.Run(name, func(t *testing.T) {
			b, err := c.Encode(want)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := c.Decode(b)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
			}
			for _, r := range want.Entries {
				v, ok := got.Lookup(r.ID)
				if !ok || !v.Equal(r.Value()) {
					t.Fatalf("Lookup(%v) = %v, %v", r.ID, v, ok)
				}
			}
		})
	}
}

func TestDecodeRejectsUnordered(t *testing.T) {
	bad := sampleSnapshot() // not ordered by param
	for name, c := range codecs() {
		t.Run(name, func(t *testing.T) {
			b, err := c.Encode(bad)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if _, err := c.Decode(b); !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestCheckRejectsEmptyScalar(t *testing.T) {
	s := glcache.Snapshot{Entries: []glcache.Record{{ID: glcache.LINE_WIDTH, Kind: glcache.KindFloat}}}
	if err := Check(s); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDeterministicEncodings(t *testing.T) {
	s := sorted(sampleSnapshot())
	for name, c := range map[string]Codec{"cbor": MustCBOR(true), "proto": Proto{Deterministic: true}} {
		a, err := c.Encode(s)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		b, _ := c.Encode(s)
		if !bytes.Equal(a, b) {
			t.Fatalf("%s: encodings differ", name)
		}
	}
}

func TestProtoRejectsInexactInt(t *testing.T) {
	s := glcache.Snapshot{Entries: []glcache.Record{
		glcache.NewRecord(glcache.STENCIL_REF, glcache.Int(1<<60)),
	}}
	if _, err := (Proto{}).Encode(s); err == nil {
		t.Fatalf("expected range error")
	}
}

func TestLimitCodec(t *testing.T) {
	c := LimitCodec{Inner: JSONCodec{}, MaxDecode: 8}
	b, err := c.Encode(sorted(sampleSnapshot()))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := c.Decode(b); err == nil {
		t.Fatalf("expected size error for %d bytes", len(b))
	}
}
