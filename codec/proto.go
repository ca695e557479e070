package codec

import (
	"fmt"
	"math"
	"strconv"

	"github.com/unkn0wn-root/glcache"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// maxExactInt is the largest magnitude a protobuf Value number (a double)
// holds without rounding.
const maxExactInt = 1 << 53

// Proto is a Codec that stores snapshots as a google.protobuf.Struct, so
// presets can be read by any protobuf runtime without a generated schema.
//
// Layout:
//
//	{"gen": "<decimal u64>", "entries": [{"id": n, "kind": n, "b": [...], "i": [...], "f": [...]}]}
//
// gen travels as a string; integer components beyond ±2^53 are rejected at
// Encode since they would not survive the double representation.
type Proto struct {
	// Deterministic orders map entries so equal snapshots encode to equal
	// bytes.
	Deterministic bool
}

var _ Codec = Proto{}

func (c Proto) Encode(s glcache.Snapshot) ([]byte, error) {
	entries := make([]*structpb.Value, len(s.Entries))
	for i, r := range s.Entries {
		fields := map[string]*structpb.Value{
			"id":   structpb.NewNumberValue(float64(r.ID)),
			"kind": structpb.NewNumberValue(float64(r.Kind)),
		}
		if len(r.Bools) > 0 {
			vs := make([]*structpb.Value, len(r.Bools))
			for j, b := range r.Bools {
				vs[j] = structpb.NewBoolValue(b)
			}
			fields["b"] = structpb.NewListValue(&structpb.ListValue{Values: vs})
		}
		if len(r.Ints) > 0 {
			vs := make([]*structpb.Value, len(r.Ints))
			for j, n := range r.Ints {
				if n > maxExactInt || n < -maxExactInt {
					return nil, fmt.Errorf("codec: %v component %d out of range: %d", r.ID, j, n)
				}
				vs[j] = structpb.NewNumberValue(float64(n))
			}
			fields["i"] = structpb.NewListValue(&structpb.ListValue{Values: vs})
		}
		if len(r.Floats) > 0 {
			vs := make([]*structpb.Value, len(r.Floats))
			for j, f := range r.Floats {
				vs[j] = structpb.NewNumberValue(f)
			}
			fields["f"] = structpb.NewListValue(&structpb.ListValue{Values: vs})
		}
		entries[i] = structpb.NewStructValue(&structpb.Struct{Fields: fields})
	}

	msg := &structpb.Struct{Fields: map[string]*structpb.Value{
		"gen":     structpb.NewStringValue(strconv.FormatUint(s.Gen, 10)),
		"entries": structpb.NewListValue(&structpb.ListValue{Values: entries}),
	}}
	return proto.MarshalOptions{Deterministic: c.Deterministic}.Marshal(msg)
}

func (c Proto) Decode(b []byte) (glcache.Snapshot, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(b, &msg); err != nil {
		return glcache.Snapshot{}, err
	}

	gen, err := strconv.ParseUint(msg.GetFields()["gen"].GetStringValue(), 10, 64)
	if err != nil {
		return glcache.Snapshot{}, fmt.Errorf("%w: gen: %v", ErrMalformed, err)
	}
	list := msg.GetFields()["entries"].GetListValue().GetValues()
	s := glcache.Snapshot{Gen: gen, Entries: make([]glcache.Record, len(list))}
	for i, ev := range list {
		fields := ev.GetStructValue().GetFields()
		if fields == nil {
			return glcache.Snapshot{}, fmt.Errorf("%w: entry %d is not an object", ErrMalformed, i)
		}
		id, ok := whole(fields["id"], math.MaxUint32)
		if !ok {
			return glcache.Snapshot{}, fmt.Errorf("%w: entry %d: bad id", ErrMalformed, i)
		}
		kind, ok := whole(fields["kind"], math.MaxUint8)
		if !ok {
			return glcache.Snapshot{}, fmt.Errorf("%w: entry %d: bad kind", ErrMalformed, i)
		}
		r := glcache.Record{ID: glcache.Param(id), Kind: glcache.Kind(kind)}
		for _, v := range fields["b"].GetListValue().GetValues() {
			r.Bools = append(r.Bools, v.GetBoolValue())
		}
		for _, v := range fields["i"].GetListValue().GetValues() {
			r.Ints = append(r.Ints, int64(v.GetNumberValue()))
		}
		for _, v := range fields["f"].GetListValue().GetValues() {
			r.Floats = append(r.Floats, v.GetNumberValue())
		}
		s.Entries[i] = r
	}
	return s, Check(s)
}

// whole reads a non-negative integral number no greater than limit.
func whole(v *structpb.Value, limit float64) (uint64, bool) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue < 0 || n.NumberValue > limit || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, false
	}
	return uint64(n.NumberValue), true
}
