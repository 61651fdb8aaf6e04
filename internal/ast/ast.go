// Package ast defines the abstract syntax tree produced by the SolScript
// parser: a passive, cloneable data structure with no behavior beyond
// storage, span bookkeeping, and canonical type naming.
package ast

import "fmt"

// Span is a byte range into the original source buffer. Every node carries
// one; synthesized nodes use the dummy span.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Merge returns the smallest span covering both a and b.
func (a Span) Merge(b Span) Span {
	start := a.Start
	if b.Start < start {
		start = b.Start
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Span{Start: start, End: end}
}

// Dummy is the span used for compiler-synthesized nodes.
func Dummy() Span { return Span{} }

func (s Span) IsDummy() bool { return s.Start == 0 && s.End == 0 }

// Node is satisfied by every AST node.
type Node interface {
	Pos() Span
}

// Ident is a bare identifier occurrence.
type Ident struct {
	Name string
	Span Span
}

func (i *Ident) Pos() Span { return i.Span }

// Program is the whole compilation unit: an ordered list of top-level items.
type Program struct {
	Items []Item
	Span  Span
}

func (p *Program) Pos() Span { return p.Span }

// Item is a top-level declaration.
type Item interface {
	Node
	itemNode()
}

// ImportItem is `import { a, b } from "path";`.
type ImportItem struct {
	Symbols []*Ident
	Path    string
	Span    Span
}

func (i *ImportItem) Pos() Span { return i.Span }
func (i *ImportItem) itemNode() {}

// Contract is a `contract`/`abstract contract` declaration.
type Contract struct {
	Name       *Ident
	IsAbstract bool
	Bases      []*Ident
	Members    []ContractMember
	Span       Span
}

func (c *Contract) Pos() Span { return c.Span }
func (c *Contract) itemNode() {}

// Interface is an `interface` declaration: a bag of abstract method
// signatures with no state and no bodies.
type Interface struct {
	Name    *Ident
	Bases   []*Ident
	Members []*FuncDecl
	Span    Span
}

func (i *Interface) Pos() Span { return i.Span }
func (i *Interface) itemNode() {}

// StructDecl is a `struct` declaration.
type StructDecl struct {
	Name   *Ident
	Fields []*FieldDecl
	Span   Span
}

func (s *StructDecl) Pos() Span { return s.Span }
func (s *StructDecl) itemNode() {}

// FieldDecl is one struct field or contract state variable.
type FieldDecl struct {
	Name       *Ident
	Type       TypeExpr
	Visibility Visibility
	Span       Span
}

func (f *FieldDecl) Pos() Span { return f.Span }

// EnumDecl is an `enum` declaration; Solidity-style, simple variants only.
type EnumDecl struct {
	Name     *Ident
	Variants []*Ident
	Span     Span
}

func (e *EnumDecl) Pos() Span { return e.Span }
func (e *EnumDecl) itemNode() {}

// EventDecl is an `event` declaration.
type EventDecl struct {
	Name   *Ident
	Params []*EventParam
	Span   Span
}

func (e *EventDecl) Pos() Span { return e.Span }
func (e *EventDecl) itemNode() {}

// EventParam is one named, typed, optionally-indexed event parameter.
type EventParam struct {
	Name    *Ident
	Type    TypeExpr
	Indexed bool
	Span    Span
}

// ErrorDecl is an `error` declaration.
type ErrorDecl struct {
	Name   *Ident
	Params []*Param
	Span   Span
}

func (e *ErrorDecl) Pos() Span { return e.Span }
func (e *ErrorDecl) itemNode() {}

// FuncDecl is a function or constructor declaration, either a top-level free
// function or a ContractMember. Modifiers are declared with ModifierDecl.
type FuncDecl struct {
	Name         *Ident // nil for constructors
	IsConstructor bool
	Params       []*Param
	Returns      []*Param
	Visibility   Visibility
	Mutability   []Mutability
	Modifiers    []*ModifierCall
	Attrs        []*Attribute
	Body         *Block // nil ⇒ abstract
	Span         Span
}

func (f *FuncDecl) Pos() Span { return f.Span }
func (f *FuncDecl) itemNode() {}

// Attribute is a `#[test]` or `#[should_fail("msg")]` tag.
type Attribute struct {
	Name string
	Args []string
	Span Span
}

// ModifierDecl is a `modifier` declaration on a contract.
type ModifierDecl struct {
	Name   *Ident
	Params []*Param
	Body   *Block
	Span   Span
}

func (m *ModifierDecl) Pos() Span { return m.Span }

// ModifierCall is an invocation of a modifier on a function header, e.g.
// `onlyOwner` or `rateLimited(10)`.
type ModifierCall struct {
	Name *Ident
	Args []Expr
	Span Span
}

// Param is a function/modifier/error parameter: a name plus a type.
type Param struct {
	Name *Ident
	Type TypeExpr
	Span Span
}

func (p *Param) Pos() Span { return p.Span }

// Visibility mirrors Solidity's member-visibility keywords.
type Visibility int

const (
	VisibilityDefault Visibility = iota
	VisibilityPublic
	VisibilityPrivate
	VisibilityInternal
	VisibilityExternal
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPrivate:
		return "private"
	case VisibilityInternal:
		return "internal"
	case VisibilityExternal:
		return "external"
	default:
		return ""
	}
}

// Mutability is a state-mutability tag: view, pure, or payable.
type Mutability int

const (
	MutabilityView Mutability = iota
	MutabilityPure
	MutabilityPayable
)

// ContractMember is any declaration that can live inside a contract body.
type ContractMember interface {
	Node
	memberNode()
}

// StateVar is a contract-level state variable declaration.
type StateVar struct {
	Name       *Ident
	Type       TypeExpr
	Visibility Visibility
	Init       Expr // optional inline initializer
	Span       Span
}

func (s *StateVar) Pos() Span    { return s.Span }
func (s *StateVar) memberNode()  {}

func (f *FuncDecl) memberNode()     {}
func (m *ModifierDecl) memberNode() {}
func (e *EventDecl) memberNode()    {}
func (e *ErrorDecl) memberNode()    {}
func (s *StructDecl) memberNode()   {}
func (e *EnumDecl) memberNode()     {}

// String renders a span for diagnostics.
func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }
