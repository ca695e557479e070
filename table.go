package glcache

// Change is one candidate {identifier -> value} entry handed to the cache.
type Change struct {
	ID    Param
	Value Value
}

// UpdateFunc applies changes to the cache. changed is true if any entry
// differed from its cached value; old is the previous value of the last
// entry that changed.
type UpdateFunc func(changes ...Change) (changed bool, old Value)

// Adapter translates the arguments of one setter call into cache changes
// and forwards them to update.
type Adapter func(update UpdateFunc, args ...Value) (changed bool, old Value)

// RestoreRule re-issues a group of params through a single setter call.
// Apply receives the values of Params in order and returns the op to call
// and its arguments.
type RestoreRule struct {
	Params []Param
	Apply  func(vals []Value) (op string, args []Value)
}

// Table is the static description of which context state is cacheable.
//
// Defaults seeds the cache when tracking starts without a live copy; params
// with no entry are filled lazily on first read. Blacklisted params are
// always read live. Capabilities are read with IsEnabled during a live copy.
// Restore maps every param an adapter may touch to the rule that re-applies
// it on scope pop.
type Table struct {
	Defaults     map[Param]Value
	Blacklist    map[Param]struct{}
	Capabilities map[Param]struct{}
	Adapters     map[string]Adapter
	Restore      map[Param]*RestoreRule

	// ProgramOp binds the active program; it gets a dedicated one-entry
	// cache instead of a table entry. Empty disables the wrapper.
	ProgramOp    string
	ProgramParam Param
}

func (t *Table) blacklisted(id Param) bool {
	_, ok := t.Blacklist[id]
	return ok
}

func (t *Table) capability(id Param) bool {
	_, ok := t.Capabilities[id]
	return ok
}

// Rule registers r as the restore rule of each of its params.
func (t *Table) Rule(r *RestoreRule) {
	if t.Restore == nil {
		t.Restore = make(map[Param]*RestoreRule)
	}
	for _, p := range r.Params {
		t.Restore[p] = r
	}
}

func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Value{}
}

// Scalar maps the single argument of a setter to id.
func Scalar(id Param) Adapter {
	return func(update UpdateFunc, args ...Value) (bool, Value) {
		return update(Change{ID: id, Value: arg(args, 0)})
	}
}

// Each maps argument i to ids[i].
func Each(ids ...Param) Adapter {
	return func(update UpdateFunc, args ...Value) (bool, Value) {
		cs := make([]Change, len(ids))
		for i, id := range ids {
			cs[i] = Change{ID: id, Value: arg(args, i)}
		}
		return update(cs...)
	}
}

// Fanout maps argument i to every id in groups[i] (blendFunc writes the
// same factor to the RGB and alpha params).
func Fanout(groups ...[]Param) Adapter {
	return func(update UpdateFunc, args ...Value) (bool, Value) {
		var cs []Change
		for i, ids := range groups {
			for _, id := range ids {
				cs = append(cs, Change{ID: id, Value: arg(args, i)})
			}
		}
		return update(cs...)
	}
}

// Vector packs all arguments into one vector value of the given kind
// (blendColor(r, g, b, a) -> BLEND_COLOR).
func Vector(id Param, kind Kind) Adapter {
	return func(update UpdateFunc, args ...Value) (bool, Value) {
		return update(Change{ID: id, Value: pack(kind, args)})
	}
}

func pack(kind Kind, args []Value) Value {
	switch kind {
	case KindBools:
		v := make([]bool, len(args))
		for i, a := range args {
			v[i] = a.Bool()
		}
		return Value{payload{kind: KindBools, bv: v}}
	case KindInts:
		v := make([]int64, len(args))
		for i, a := range args {
			v[i] = a.Int()
		}
		return Value{payload{kind: KindInts, iv: v}}
	default:
		v := make([]float64, len(args))
		for i, a := range args {
			v[i] = a.Float()
		}
		return Value{payload{kind: KindFloats, fv: v}}
	}
}

// Capability is the adapter of enable (on) and disable (!on): the first
// argument names the capability.
func Capability(on bool) Adapter {
	return func(update UpdateFunc, args ...Value) (bool, Value) {
		return update(Change{ID: Param(arg(args, 0).Int()), Value: Bool(on)})
	}
}

// Keyed is the adapter of (pname, value) setters such as pixelStorei and
// hint. Params listed in bools are stored as Bool.
func Keyed(bools ...Param) Adapter {
	bset := make(map[Param]struct{}, len(bools))
	for _, p := range bools {
		bset[p] = struct{}{}
	}
	return func(update UpdateFunc, args ...Value) (bool, Value) {
		id := Param(arg(args, 0).Int())
		v := arg(args, 1)
		if _, ok := bset[id]; ok {
			v = Bool(v.Bool())
		}
		return update(Change{ID: id, Value: v})
	}
}

// Face selects the front and back param sets of a *Separate setter.
type Face struct {
	Front, Back, FrontAndBack Param
}

// Faced is the adapter of stencil*Separate(face, ...): the remaining
// arguments map onto front, back, or both.
func Faced(f Face, front, back []Param) Adapter {
	return func(update UpdateFunc, args ...Value) (bool, Value) {
		face := Param(arg(args, 0).Int())
		var targets [][]Param
		switch face {
		case f.Front:
			targets = [][]Param{front}
		case f.Back:
			targets = [][]Param{back}
		case f.FrontAndBack:
			targets = [][]Param{front, back}
		default:
			return false, Value{}
		}
		var cs []Change
		for _, ids := range targets {
			for i, id := range ids {
				cs = append(cs, Change{ID: id, Value: arg(args, i+1)})
			}
		}
		return update(cs...)
	}
}

// Direct restores params by passing their values as arguments to op.
func Direct(op string, ids ...Param) *RestoreRule {
	return &RestoreRule{
		Params: ids,
		Apply: func(vals []Value) (string, []Value) {
			return op, vals
		},
	}
}

// Prefixed restores params by calling op with lead followed by the values
// (stencilFuncSeparate(FRONT, func, ref, mask)).
func Prefixed(op string, lead Value, ids ...Param) *RestoreRule {
	return &RestoreRule{
		Params: ids,
		Apply: func(vals []Value) (string, []Value) {
			args := make([]Value, 0, len(vals)+1)
			args = append(args, lead)
			return op, append(args, vals...)
		},
	}
}

// Unpacked restores a vector param by spreading its components over op's
// arguments.
func Unpacked(op string, id Param) *RestoreRule {
	return &RestoreRule{
		Params: []Param{id},
		Apply: func(vals []Value) (string, []Value) {
			v := vals[0]
			args := make([]Value, v.Len())
			for i := range args {
				args[i] = v.Component(i)
			}
			return op, args
		},
	}
}

// Toggle restores a capability with enableOp or disableOp.
func Toggle(enableOp, disableOp string, id Param) *RestoreRule {
	return &RestoreRule{
		Params: []Param{id},
		Apply: func(vals []Value) (string, []Value) {
			if vals[0].Bool() {
				return enableOp, []Value{Enum(id)}
			}
			return disableOp, []Value{Enum(id)}
		},
	}
}

// Stored restores a keyed param with op(id, value). Bool values are passed
// as 0/1 ints, as pixelStorei expects.
func Stored(op string, id Param) *RestoreRule {
	return &RestoreRule{
		Params: []Param{id},
		Apply: func(vals []Value) (string, []Value) {
			v := vals[0]
			if v.Kind() == KindBool {
				v = Int(v.Int())
			}
			return op, []Value{Enum(id), v}
		},
	}
}
