package glcache

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Param names one unit of context state (a GL enum). Param(0) is undefined.
type Param uint32

func (p Param) String() string { return fmt.Sprintf("0x%04X", uint32(p)) }

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindBools
	KindInts
	KindFloats
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBools:
		return "bools"
	case KindInts:
		return "ints"
	case KindFloats:
		return "floats"
	default:
		return "invalid"
	}
}

// Value is a tagged variant holding a scalar or vector parameter value.
// The zero Value is invalid. Constructors and accessors copy slices, so a
// Value never aliases caller memory.
type Value struct {
	p payload
}

type payload struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	bv   []bool
	iv   []int64
	fv   []float64
}

var payloadOpts = cmp.Options{
	cmp.AllowUnexported(payload{}),
	cmpopts.EquateEmpty(),
}

func Bool(b bool) Value     { return Value{payload{kind: KindBool, b: b}} }
func Int(i int64) Value     { return Value{payload{kind: KindInt, i: i}} }
func Float(f float64) Value { return Value{payload{kind: KindFloat, f: f}} }

// Enum is Int for a GL enum or handle argument.
func Enum(p Param) Value { return Int(int64(p)) }

func Bools(v ...bool) Value {
	return Value{payload{kind: KindBools, bv: append([]bool(nil), v...)}}
}

func Ints(v ...int64) Value {
	return Value{payload{kind: KindInts, iv: append([]int64(nil), v...)}}
}

func Floats(v ...float64) Value {
	return Value{payload{kind: KindFloats, fv: append([]float64(nil), v...)}}
}

func (v Value) Kind() Kind        { return v.p.kind }
func (v Value) IsValid() bool     { return v.p.kind != KindInvalid }
func (v Value) Bools() []bool     { return append([]bool(nil), v.p.bv...) }
func (v Value) Ints() []int64     { return append([]int64(nil), v.p.iv...) }
func (v Value) Floats() []float64 { return append([]float64(nil), v.p.fv...) }

// Bool reports the truth of a scalar. Numeric scalars are true when non-zero,
// matching GLboolean conversion.
func (v Value) Bool() bool {
	switch v.p.kind {
	case KindBool:
		return v.p.b
	case KindInt:
		return v.p.i != 0
	case KindFloat:
		return v.p.f != 0
	}
	return false
}

// Int returns a scalar as an integer; floats are truncated, bools are 0/1.
func (v Value) Int() int64 {
	switch v.p.kind {
	case KindInt:
		return v.p.i
	case KindFloat:
		return int64(v.p.f)
	case KindBool:
		if v.p.b {
			return 1
		}
	}
	return 0
}

// Float returns a scalar as a float64.
func (v Value) Float() float64 {
	switch v.p.kind {
	case KindFloat:
		return v.p.f
	case KindInt:
		return float64(v.p.i)
	case KindBool:
		if v.p.b {
			return 1
		}
	}
	return 0
}

// Len is the number of components: 1 for scalars, 0 for invalid.
func (v Value) Len() int {
	switch v.p.kind {
	case KindInvalid:
		return 0
	case KindBools:
		return len(v.p.bv)
	case KindInts:
		return len(v.p.iv)
	case KindFloats:
		return len(v.p.fv)
	}
	return 1
}

// Component returns element i of a vector as a scalar Value of the
// matching element kind. Scalars return themselves for i == 0.
func (v Value) Component(i int) Value {
	switch v.p.kind {
	case KindBools:
		if i < len(v.p.bv) {
			return Bool(v.p.bv[i])
		}
	case KindInts:
		if i < len(v.p.iv) {
			return Int(v.p.iv[i])
		}
	case KindFloats:
		if i < len(v.p.fv) {
			return Float(v.p.fv[i])
		}
	case KindInvalid:
	default:
		if i == 0 {
			return v
		}
	}
	return Value{}
}

// Equal reports recursive structural equality. Sequences compare element by
// element in order; the kind must match too, so Int(1) != Float(1).
func (v Value) Equal(o Value) bool {
	return cmp.Equal(v.p, o.p, payloadOpts)
}

func (v Value) String() string {
	switch v.p.kind {
	case KindBool:
		return fmt.Sprint(v.p.b)
	case KindInt:
		return fmt.Sprint(v.p.i)
	case KindFloat:
		return fmt.Sprint(v.p.f)
	case KindBools:
		return fmt.Sprint(v.p.bv)
	case KindInts:
		return fmt.Sprint(v.p.iv)
	case KindFloats:
		return fmt.Sprint(v.p.fv)
	}
	return "<invalid>"
}
