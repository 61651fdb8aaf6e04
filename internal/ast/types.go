package ast

import "strings"

// TypeExpr is a type expression as written in source: a path, a mapping, an
// array, or a tuple.
type TypeExpr interface {
	Node
	typeNode()
	// Name renders the canonical textual form the checker uses for
	// primitive-type lookup.
	Name() string
}

// TypePath is `uint256`, `address`, `MyContract`, or `MyStruct<T>`.
type TypePath struct {
	Segments    []*Ident
	GenericArgs []TypeExpr
	Span        Span
}

func (t *TypePath) Pos() Span  { return t.Span }
func (t *TypePath) typeNode()  {}

func (t *TypePath) IsSimple() bool { return len(t.Segments) == 1 && len(t.GenericArgs) == 0 }

func (t *TypePath) Last() string {
	if len(t.Segments) == 0 {
		return ""
	}
	return t.Segments[len(t.Segments)-1].Name
}

func (t *TypePath) Name() string {
	parts := make([]string, len(t.Segments))
	for i, s := range t.Segments {
		parts[i] = s.Name
	}
	name := strings.Join(parts, "::")
	if len(t.GenericArgs) > 0 {
		args := make([]string, len(t.GenericArgs))
		for i, a := range t.GenericArgs {
			args[i] = a.Name()
		}
		name += "<" + strings.Join(args, ", ") + ">"
	}
	return name
}

// MappingType is `mapping(K => V)`.
type MappingType struct {
	Key   TypeExpr
	Value TypeExpr
	Span  Span
}

func (m *MappingType) Pos() Span { return m.Span }
func (m *MappingType) typeNode() {}
func (m *MappingType) Name() string {
	return "mapping(" + m.Key.Name() + " => " + m.Value.Name() + ")"
}

// ArrayType is `T[]` (dynamic, Sizes contains one nil) or `T[N]` (fixed).
// Multiple entries model `T[N][M]`-style chained dimensions.
type ArrayType struct {
	Element TypeExpr
	Sizes   []*uint64 // nil entry = dynamic dimension
	Span    Span
}

func (a *ArrayType) Pos() Span { return a.Span }
func (a *ArrayType) typeNode() {}
func (a *ArrayType) Name() string {
	name := a.Element.Name()
	for _, n := range a.Sizes {
		if n == nil {
			name += "[]"
		} else {
			name += "["
			name += itoa(*n)
			name += "]"
		}
	}
	return name
}

func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// TupleType is `(T1, T2, ...)`.
type TupleType struct {
	Elements []TypeExpr
	Span     Span
}

func (t *TupleType) Pos() Span { return t.Span }
func (t *TupleType) typeNode() {}
func (t *TupleType) Name() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.Name()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
