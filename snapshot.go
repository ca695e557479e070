package glcache

import "sort"

// Record is the serializable form of one cached param. Scalars are stored
// as one-element slices.
type Record struct {
	ID     Param     `json:"id" cbor:"1,keyasint" msgpack:"id"`
	Kind   Kind      `json:"kind" cbor:"2,keyasint" msgpack:"kind"`
	Bools  []bool    `json:"b,omitempty" cbor:"3,keyasint,omitempty" msgpack:"b,omitempty"`
	Ints   []int64   `json:"i,omitempty" cbor:"4,keyasint,omitempty" msgpack:"i,omitempty"`
	Floats []float64 `json:"f,omitempty" cbor:"5,keyasint,omitempty" msgpack:"f,omitempty"`
}

// NewRecord captures v under id.
func NewRecord(id Param, v Value) Record {
	r := Record{ID: id, Kind: v.Kind()}
	switch v.Kind() {
	case KindBool:
		r.Bools = []bool{v.p.b}
	case KindInt:
		r.Ints = []int64{v.p.i}
	case KindFloat:
		r.Floats = []float64{v.p.f}
	case KindBools:
		r.Bools = v.Bools()
	case KindInts:
		r.Ints = v.Ints()
	case KindFloats:
		r.Floats = v.Floats()
	}
	return r
}

// Value rebuilds the recorded value. Malformed scalar records yield an
// invalid Value.
func (r Record) Value() Value {
	switch r.Kind {
	case KindBool:
		if len(r.Bools) == 1 {
			return Bool(r.Bools[0])
		}
	case KindInt:
		if len(r.Ints) == 1 {
			return Int(r.Ints[0])
		}
	case KindFloat:
		if len(r.Floats) == 1 {
			return Float(r.Floats[0])
		}
	case KindBools:
		return Bools(r.Bools...)
	case KindInts:
		return Ints(r.Ints...)
	case KindFloats:
		return Floats(r.Floats...)
	}
	return Value{}
}

// Snapshot is a point-in-time copy of a context's cached state, ordered by
// param. Gen is the cache generation it was taken at.
type Snapshot struct {
	Gen     uint64   `json:"gen" cbor:"1,keyasint" msgpack:"gen"`
	Entries []Record `json:"entries" cbor:"2,keyasint" msgpack:"entries"`
}

// Lookup returns the value recorded for id.
func (s Snapshot) Lookup(id Param) (Value, bool) {
	i := sort.Search(len(s.Entries), func(i int) bool { return s.Entries[i].ID >= id })
	if i < len(s.Entries) && s.Entries[i].ID == id {
		return s.Entries[i].Value(), true
	}
	return Value{}, false
}

// Snapshot copies the cached state. Params that were never read or set are
// not included.
func (t *Tracked) Snapshot() Snapshot {
	ids := make([]Param, 0, len(t.cache.entries))
	for id, v := range t.cache.entries {
		if v.IsValid() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	s := Snapshot{Gen: t.cache.gen, Entries: make([]Record, len(ids))}
	for i, id := range ids {
		s.Entries[i] = NewRecord(id, t.cache.entries[id])
	}
	return s
}

// Apply sets the state recorded in s through the regular setters, so
// unchanged params cost nothing and changes are recorded into the open
// scope. Entries without a restore rule are skipped. Returns the number of
// underlying calls issued.
func (t *Tracked) Apply(s Snapshot) int {
	order := make([]Param, 0, len(s.Entries))
	vals := make(map[Param]Value, len(s.Entries))
	for _, r := range s.Entries {
		v := r.Value()
		if !v.IsValid() {
			continue
		}
		if _, dup := vals[r.ID]; !dup {
			order = append(order, r.ID)
		}
		vals[r.ID] = v
	}
	calls := t.restore(order, vals)
	t.log.Debug("snapshot applied", Fields{"entries": len(order), "calls": calls, "gen": s.Gen})
	return calls
}
