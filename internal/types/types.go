// Package types implements SolScript's nominal, Solidity-flavored type
// system: primitive scalars, composite types, and the TypeDef registry the
// checker consults for struct/enum/contract/interface/event/error shapes.
package types

import "fmt"

// Kind discriminates the variants of Type.
type Kind int

const (
	KPrimitive Kind = iota
	KUnit
	KNever
	KNamed
	KArray
	KDynamicArray
	KTuple
	KMapping
	KFunction
	KVar
	KError
)

// Primitive enumerates SolScript's scalar types.
type Primitive int

const (
	PBool Primitive = iota
	PAddress
	PSigner
	PString
	PBytes
	PUint8
	PUint16
	PUint24
	PUint32
	PUint64
	PUint128
	PUint256
	PInt8
	PInt16
	PInt24
	PInt32
	PInt64
	PInt128
	PInt256
	PBytes1
	PBytes2
	PBytes4
	PBytes8
	PBytes16
	PBytes32
)

var primitiveNames = map[Primitive]string{
	PBool: "bool", PAddress: "address", PSigner: "signer", PString: "string", PBytes: "bytes",
	PUint8: "uint8", PUint16: "uint16", PUint24: "uint24", PUint32: "uint32", PUint64: "uint64",
	PUint128: "uint128", PUint256: "uint256",
	PInt8: "int8", PInt16: "int16", PInt24: "int24", PInt32: "int32", PInt64: "int64",
	PInt128: "int128", PInt256: "int256",
	PBytes1: "bytes1", PBytes2: "bytes2", PBytes4: "bytes4", PBytes8: "bytes8",
	PBytes16: "bytes16", PBytes32: "bytes32",
}

var namesToPrimitive = func() map[string]Primitive {
	m := make(map[string]Primitive, len(primitiveNames))
	for p, n := range primitiveNames {
		m[n] = p
	}
	return m
}()

// LookupPrimitive resolves a source type name to a Primitive, if it is one.
func LookupPrimitive(name string) (Primitive, bool) {
	p, ok := namesToPrimitive[name]
	return p, ok
}

func (p Primitive) String() string { return primitiveNames[p] }

// IsInteger reports whether p is any uintN/intN variant.
func (p Primitive) IsInteger() bool {
	switch p {
	case PUint8, PUint16, PUint24, PUint32, PUint64, PUint128, PUint256,
		PInt8, PInt16, PInt24, PInt32, PInt64, PInt128, PInt256:
		return true
	}
	return false
}

// IsFixedBytes reports whether p is a bytesN variant.
func (p Primitive) IsFixedBytes() bool {
	switch p {
	case PBytes1, PBytes2, PBytes4, PBytes8, PBytes16, PBytes32:
		return true
	}
	return false
}

// Type is SolScript's semantic (as opposed to syntactic) type representation,
// produced by the checker from ast.TypeExpr nodes.
type Type struct {
	Kind Kind

	Prim Primitive // KPrimitive

	Name     string // KNamed
	TypeArgs []*Type

	Elem *Type   // KArray / KDynamicArray
	Size uint64  // KArray (0 ⇒ unset, only meaningful with KArray)

	Elems []*Type // KTuple

	Key   *Type // KMapping
	Value *Type // KMapping

	Params []*Type // KFunction
	Ret    *Type   // KFunction, nil ⇒ no return value

	Var string // KVar: the inference placeholder's display name
}

func Prim(p Primitive) *Type { return &Type{Kind: KPrimitive, Prim: p} }

var (
	Unit  = &Type{Kind: KUnit}
	Never = &Type{Kind: KNever}
	Err   = &Type{Kind: KError}
)

func Named(name string, args ...*Type) *Type { return &Type{Kind: KNamed, Name: name, TypeArgs: args} }

func Array(elem *Type, size uint64) *Type { return &Type{Kind: KArray, Elem: elem, Size: size} }

func DynamicArray(elem *Type) *Type { return &Type{Kind: KDynamicArray, Elem: elem} }

func TupleOf(elems ...*Type) *Type { return &Type{Kind: KTuple, Elems: elems} }

func MappingOf(key, value *Type) *Type { return &Type{Kind: KMapping, Key: key, Value: value} }

func FunctionOf(params []*Type, ret *Type) *Type { return &Type{Kind: KFunction, Params: params, Ret: ret} }

func Var(name string) *Type { return &Type{Kind: KVar, Var: name} }

// String renders a Type for diagnostics.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KPrimitive:
		return t.Prim.String()
	case KUnit:
		return "()"
	case KNever:
		return "never"
	case KError:
		return "<error>"
	case KVar:
		return "'" + t.Var
	case KNamed:
		if len(t.TypeArgs) == 0 {
			return t.Name
		}
		s := t.Name + "<"
		for i, a := range t.TypeArgs {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		return s + ">"
	case KArray:
		if t.Size == 0 {
			return t.Elem.String() + "[]"
		}
		return fmt.Sprintf("%s[%d]", t.Elem.String(), t.Size)
	case KDynamicArray:
		return t.Elem.String() + "[]"
	case KTuple:
		s := "("
		for i, e := range t.Elems {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + ")"
	case KMapping:
		return "mapping(" + t.Key.String() + " => " + t.Value.String() + ")"
	case KFunction:
		s := "function("
		for i, p := range t.Params {
			if i > 0 {
				s += ", "
			}
			s += p.String()
		}
		s += ")"
		if t.Ret != nil {
			s += " returns (" + t.Ret.String() + ")"
		}
		return s
	default:
		return "?"
	}
}

// Compat implements the checker's compatibility relation compat(expected,
// found): reflexive; structural through Array/DynamicArray/Tuple/
// Mapping/Function; any integer is compatible with any other integer;
// Address and Signer are mutually compatible; Error unifies with anything;
// Never is a subtype of everything; type variables unify with anything.
func Compat(expected, found *Type) bool {
	if expected == nil || found == nil {
		return false
	}
	if expected.Kind == KError || found.Kind == KError {
		return true
	}
	if expected.Kind == KVar || found.Kind == KVar {
		return true
	}
	if found.Kind == KNever {
		return true
	}
	if expected.Kind == KPrimitive && found.Kind == KPrimitive {
		if expected.Prim == found.Prim {
			return true
		}
		if expected.Prim.IsInteger() && found.Prim.IsInteger() {
			return true
		}
		if (expected.Prim == PAddress && found.Prim == PSigner) ||
			(expected.Prim == PSigner && found.Prim == PAddress) {
			return true
		}
		return false
	}
	if expected.Kind != found.Kind {
		return false
	}
	switch expected.Kind {
	case KUnit, KNever:
		return true
	case KNamed:
		if expected.Name != found.Name || len(expected.TypeArgs) != len(found.TypeArgs) {
			return false
		}
		for i := range expected.TypeArgs {
			if !Compat(expected.TypeArgs[i], found.TypeArgs[i]) {
				return false
			}
		}
		return true
	case KArray:
		return expected.Size == found.Size && Compat(expected.Elem, found.Elem)
	case KDynamicArray:
		return Compat(expected.Elem, found.Elem)
	case KTuple:
		if len(expected.Elems) != len(found.Elems) {
			return false
		}
		for i := range expected.Elems {
			if !Compat(expected.Elems[i], found.Elems[i]) {
				return false
			}
		}
		return true
	case KMapping:
		return Compat(expected.Key, found.Key) && Compat(expected.Value, found.Value)
	case KFunction:
		if len(expected.Params) != len(found.Params) {
			return false
		}
		for i := range expected.Params {
			if !Compat(expected.Params[i], found.Params[i]) {
				return false
			}
		}
		if expected.Ret == nil || found.Ret == nil {
			return expected.Ret == found.Ret
		}
		return Compat(expected.Ret, found.Ret)
	default:
		return false
	}
}

// IsInteger reports whether t is a uintN/intN primitive.
func IsInteger(t *Type) bool {
	return t != nil && t.Kind == KPrimitive && t.Prim.IsInteger()
}

// IsBool reports whether t is the bool primitive.
func IsBool(t *Type) bool {
	return t != nil && t.Kind == KPrimitive && t.Prim == PBool
}
