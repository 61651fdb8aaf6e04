package types

// StructDef is a struct's field shape, in declaration order.
type StructDef struct {
	Name   string
	Fields []FieldDef
}

type FieldDef struct {
	Name string
	Type *Type
}

// EnumDef is a simple C-style enum: an ordered set of variant names.
type EnumDef struct {
	Name     string
	Variants []string
}

// VariantIndex returns the ordinal of a variant name, or -1.
func (e *EnumDef) VariantIndex(name string) int {
	for i, v := range e.Variants {
		if v == name {
			return i
		}
	}
	return -1
}

// EventDef is an event's parameter shape, each carrying its indexed flag.
type EventDef struct {
	Name   string
	Params []EventParamDef
}

type EventParamDef struct {
	Name    string
	Type    *Type
	Indexed bool
}

// ErrorDef is a custom error's parameter shape.
type ErrorDef struct {
	Name   string
	Params []FieldDef
}

// ModifierDef is a modifier's parameter shape (body is kept on the AST node;
// the checker only needs the signature here).
type ModifierDef struct {
	Name   string
	Params []FieldDef
}

// MethodDef is one function's signature within a ContractDef or
// InterfaceDef.
type MethodDef struct {
	Name       string
	Params     []FieldDef
	Returns    []*Type
	IsAbstract bool
}

// ContractDef is the checker's flattened view of one contract: its own
// declarations plus the base-contract name chain used for member
// resolution (child-wins, reverse-declaration-order search).
type ContractDef struct {
	Name       string
	IsAbstract bool
	Bases      []string
	StateVars  []FieldDef
	Methods    map[string]*MethodDef
	Modifiers  map[string]*ModifierDef
	Events     map[string]*EventDef
	Errors     map[string]*ErrorDef
	Structs    map[string]*StructDef
	Enums      map[string]*EnumDef
}

// InterfaceDef is a bag of abstract method signatures with no state.
type InterfaceDef struct {
	Name    string
	Bases   []string
	Methods map[string]*MethodDef
}

// Registry is the per-program table of every named type definition,
// collected in the checker's first pass and consulted during the second.
type Registry struct {
	Structs    map[string]*StructDef
	Enums      map[string]*EnumDef
	Contracts  map[string]*ContractDef
	Interfaces map[string]*InterfaceDef
	Events     map[string]*EventDef
	Errors     map[string]*ErrorDef
}

// NewRegistry builds an empty Registry ready for population.
func NewRegistry() *Registry {
	return &Registry{
		Structs:    map[string]*StructDef{},
		Enums:      map[string]*EnumDef{},
		Contracts:  map[string]*ContractDef{},
		Interfaces: map[string]*InterfaceDef{},
		Events:     map[string]*EventDef{},
		Errors:     map[string]*ErrorDef{},
	}
}
