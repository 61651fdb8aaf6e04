package checker

import (
	"github.com/cryptuon/solscript/internal/ast"
	"github.com/cryptuon/solscript/internal/types"
)

// collect is the checker's first pass: it walks every top-level item (and,
// for contracts, every nested struct/enum/event/error member — which share
// the global namespace with top-level declarations) and registers a
// TypeDef. Duplicate names are reported but do not stop collection.
func (c *Checker) collect(prog *ast.Program) {
	for _, item := range prog.Items {
		c.collectItem(item)
	}
}

func (c *Checker) declared(name string, span ast.Span) bool {
	_, s := c.reg.Structs[name]
	_, e := c.reg.Enums[name]
	_, ct := c.reg.Contracts[name]
	_, i := c.reg.Interfaces[name]
	_, ev := c.reg.Events[name]
	_, er := c.reg.Errors[name]
	if s || e || ct || i || ev || er {
		c.errorAt(span, TypeDuplicate, "duplicate declaration of %q", name)
		return true
	}
	return false
}

func (c *Checker) collectItem(item ast.Item) {
	switch v := item.(type) {
	case *ast.ImportItem:
		// Imports bring no new type definitions into this program's
		// registry; cross-file resolution is out of scope for a
		// single-program Check call.
	case *ast.StructDecl:
		c.collectStruct(v)
	case *ast.EnumDecl:
		c.collectEnum(v)
	case *ast.EventDecl:
		c.collectEvent(v)
	case *ast.ErrorDecl:
		c.collectError(v)
	case *ast.Interface:
		c.collectInterface(v)
	case *ast.Contract:
		c.collectContract(v)
	case *ast.FuncDecl:
		// Free functions have no home in the registry's named-type tables;
		// the lowerer does not emit free functions as Solana instructions
		// outside of a contract, so nothing to collect here beyond parsing.
	}
}

func (c *Checker) collectStruct(v *ast.StructDecl) {
	if c.declared(v.Name.Name, v.Span) {
		return
	}
	def := &types.StructDef{Name: v.Name.Name}
	for _, f := range v.Fields {
		def.Fields = append(def.Fields, types.FieldDef{Name: f.Name.Name, Type: c.resolveType(f.Type)})
	}
	c.reg.Structs[v.Name.Name] = def
}

func (c *Checker) collectEnum(v *ast.EnumDecl) {
	if c.declared(v.Name.Name, v.Span) {
		return
	}
	def := &types.EnumDef{Name: v.Name.Name}
	for _, variant := range v.Variants {
		def.Variants = append(def.Variants, variant.Name)
	}
	c.reg.Enums[v.Name.Name] = def
}

func (c *Checker) collectEvent(v *ast.EventDecl) {
	if c.declared(v.Name.Name, v.Span) {
		return
	}
	def := &types.EventDef{Name: v.Name.Name}
	for _, p := range v.Params {
		def.Params = append(def.Params, types.EventParamDef{Name: p.Name.Name, Type: c.resolveType(p.Type), Indexed: p.Indexed})
	}
	c.reg.Events[v.Name.Name] = def
}

func (c *Checker) collectError(v *ast.ErrorDecl) {
	if c.declared(v.Name.Name, v.Span) {
		return
	}
	def := &types.ErrorDef{Name: v.Name.Name}
	for _, p := range v.Params {
		name := ""
		if p.Name != nil {
			name = p.Name.Name
		}
		def.Params = append(def.Params, types.FieldDef{Name: name, Type: c.resolveType(p.Type)})
	}
	c.reg.Errors[v.Name.Name] = def
}

func (c *Checker) collectInterface(v *ast.Interface) {
	if c.declared(v.Name.Name, v.Span) {
		return
	}
	def := &types.InterfaceDef{Name: v.Name.Name, Methods: map[string]*types.MethodDef{}}
	for _, b := range v.Bases {
		def.Bases = append(def.Bases, b.Name)
	}
	for _, fn := range v.Members {
		def.Methods[fn.Name.Name] = c.methodSig(fn)
	}
	c.reg.Interfaces[v.Name.Name] = def
}

func (c *Checker) methodSig(fn *ast.FuncDecl) *types.MethodDef {
	m := &types.MethodDef{IsAbstract: fn.Body == nil}
	if fn.Name != nil {
		m.Name = fn.Name.Name
	}
	for _, p := range fn.Params {
		name := ""
		if p.Name != nil {
			name = p.Name.Name
		}
		m.Params = append(m.Params, types.FieldDef{Name: name, Type: c.resolveType(p.Type)})
	}
	for _, r := range fn.Returns {
		m.Returns = append(m.Returns, c.resolveType(r.Type))
	}
	return m
}

func (c *Checker) collectContract(v *ast.Contract) {
	if c.declared(v.Name.Name, v.Span) {
		return
	}
	def := &types.ContractDef{
		Name:       v.Name.Name,
		IsAbstract: v.IsAbstract,
		Methods:    map[string]*types.MethodDef{},
		Modifiers:  map[string]*types.ModifierDef{},
		Events:     map[string]*types.EventDef{},
		Errors:     map[string]*types.ErrorDef{},
		Structs:    map[string]*types.StructDef{},
		Enums:      map[string]*types.EnumDef{},
	}
	for _, b := range v.Bases {
		def.Bases = append(def.Bases, b.Name)
	}
	c.reg.Contracts[v.Name.Name] = def

	for _, m := range v.Members {
		switch mv := m.(type) {
		case *ast.StateVar:
			def.StateVars = append(def.StateVars, types.FieldDef{Name: mv.Name.Name, Type: c.resolveType(mv.Type)})
		case *ast.FuncDecl:
			if mv.IsConstructor {
				def.Methods["constructor"] = c.methodSig(mv)
				continue
			}
			def.Methods[mv.Name.Name] = c.methodSig(mv)
		case *ast.ModifierDecl:
			md := &types.ModifierDef{Name: mv.Name.Name}
			for _, p := range mv.Params {
				name := ""
				if p.Name != nil {
					name = p.Name.Name
				}
				md.Params = append(md.Params, types.FieldDef{Name: name, Type: c.resolveType(p.Type)})
			}
			def.Modifiers[mv.Name.Name] = md
		case *ast.EventDecl:
			c.collectEvent(mv)
			if ed, ok := c.reg.Events[mv.Name.Name]; ok {
				def.Events[mv.Name.Name] = ed
			}
		case *ast.ErrorDecl:
			c.collectError(mv)
			if ed, ok := c.reg.Errors[mv.Name.Name]; ok {
				def.Errors[mv.Name.Name] = ed
			}
		case *ast.StructDecl:
			c.collectStruct(mv)
			if sd, ok := c.reg.Structs[mv.Name.Name]; ok {
				def.Structs[mv.Name.Name] = sd
			}
		case *ast.EnumDecl:
			c.collectEnum(mv)
			if ed, ok := c.reg.Enums[mv.Name.Name]; ok {
				def.Enums[mv.Name.Name] = ed
			}
		}
	}
}
