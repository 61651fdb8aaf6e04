// Package lower implements SolScript's IR lowerer: it turns a checked
// ast.Program into zero-or-more ir.SolanaProgram values, one per
// non-abstract contract, following the contract-flattening and
// expression-rewriting rules of the compiler's fourth pipeline stage.
package lower

import (
	"github.com/cryptuon/solscript/internal/ast"
	solerr "github.com/cryptuon/solscript/internal/errors"
	"github.com/cryptuon/solscript/internal/ir"
	"github.com/cryptuon/solscript/internal/types"
)

// Lower translates every non-abstract contract in prog into a SolanaProgram,
// using reg (the checker's registry) to resolve types. Lowering assumes prog
// already type-checked cleanly; it does not re-validate semantics.
func Lower(prog *ast.Program, reg *types.Registry) ([]*ir.SolanaProgram, []*solerr.Report) {
	contracts := map[string]*ast.Contract{}
	interfaceNames := map[string]bool{}
	for _, item := range prog.Items {
		switch v := item.(type) {
		case *ast.Contract:
			contracts[v.Name.Name] = v
		case *ast.Interface:
			interfaceNames[v.Name.Name] = true
		}
	}

	var out []*ir.SolanaProgram
	var diags []*solerr.Report
	for _, item := range prog.Items {
		c, ok := item.(*ast.Contract)
		if !ok || c.IsAbstract {
			continue
		}
		prg, d := lowerContract(c, contracts, interfaceNames, reg)
		diags = append(diags, d...)
		out = append(out, prg)
	}
	return out, diags
}

func lowerContract(c *ast.Contract, contracts map[string]*ast.Contract, interfaceNames map[string]bool, reg *types.Registry) (*ir.SolanaProgram, []*solerr.Report) {
	lc := &ctx{
		reg:            reg,
		contracts:      contracts,
		contractName:   c.Name.Name,
		stateFields:    map[string]*types.Type{},
		mappingNames:   map[string]*types.Type{},
		interfaceNames: interfaceNames,
	}

	allMembers := assembleAllMembers(contracts, c.Name.Name)
	stateVars, mappingVars := splitStateAndMappings(lc, allMembers)

	prg := &ir.SolanaProgram{Name: c.Name.Name}

	for _, sv := range stateVars {
		t := resolveType(reg, sv.Type)
		lc.stateFields[sv.Name.Name] = t
		prg.State.Fields = append(prg.State.Fields, ir.FieldDef{Name: sv.Name.Name, Type: solanaType(t)})
	}
	for _, mv := range mappingVars {
		t := resolveType(reg, mv.Type)
		lc.mappingNames[mv.Name.Name] = t
		prg.Mappings = append(prg.Mappings, &ir.MappingDef{Name: mv.Name.Name, Key: solanaType(t.Key), Value: solanaType(t.Value)})
	}

	// Structs/enums/events/errors declared inside this contract or any base:
	// collected once, keyed by name, in declaration order of first sight
	// across the flattened member list. Free-standing top-level
	// struct/enum/event/error declarations never appear inside all_members
	// and are not collected here.
	seenStruct, seenEnum, seenEvent, seenError := map[string]bool{}, map[string]bool{}, map[string]bool{}, map[string]bool{}
	collectNested := func(m ast.ContractMember) {
		switch v := m.(type) {
		case *ast.StructDecl:
			if !seenStruct[v.Name.Name] {
				seenStruct[v.Name.Name] = true
				prg.Structs = append(prg.Structs, lowerStructDef(reg, v.Name.Name))
			}
		case *ast.EnumDecl:
			if !seenEnum[v.Name.Name] {
				seenEnum[v.Name.Name] = true
				prg.Enums = append(prg.Enums, lowerEnumDef(reg, v.Name.Name))
			}
		case *ast.EventDecl:
			if !seenEvent[v.Name.Name] {
				seenEvent[v.Name.Name] = true
				prg.Events = append(prg.Events, lowerEventDef(reg, v.Name.Name))
			}
		case *ast.ErrorDecl:
			if !seenError[v.Name.Name] {
				seenError[v.Name.Name] = true
				prg.Errors = append(prg.Errors, lowerErrorDef(reg, v.Name.Name))
			}
		}
	}
	for _, m := range allMembers {
		collectNested(m)
	}
	for _, m := range c.Members {
		collectNested(m)
	}

	modifiers := collectModifiers(allMembers)
	for _, md := range modifiers {
		body := lc.lowerBlock(md.Body)
		var params []ir.FieldDef
		for _, p := range md.Params {
			name := ""
			if p.Name != nil {
				name = p.Name.Name
			}
			params = append(params, ir.FieldDef{Name: name, Type: solanaType(resolveType(reg, p.Type))})
		}
		prg.Modifiers = append(prg.Modifiers, &ir.ModifierDefinition{Name: md.Name.Name, Params: params, Body: body})
	}

	functions := collectFunctions(allMembers)
	for _, fn := range functions {
		if isTestFunction(fn) {
			prg.Tests = append(prg.Tests, lc.lowerTestFunction(fn))
			continue
		}
		prg.Instructions = append(prg.Instructions, lc.lowerFunction(fn))
	}

	// Constructor: only this contract's own (never inherited) constructor,
	// if any, becomes the `initialize` instruction.
	for _, m := range c.Members {
		if fn, ok := m.(*ast.FuncDecl); ok && fn.IsConstructor {
			inst := lc.lowerFunction(fn)
			inst.Name = "initialize"
			inst.IsPublic = true
			prg.Instructions = append([]*ir.Instruction{inst}, prg.Instructions...)
			break
		}
	}

	return prg, lc.diags
}

func isTestFunction(fn *ast.FuncDecl) bool {
	for _, a := range fn.Attrs {
		if a.Name == "test" {
			return true
		}
	}
	return false
}

func shouldFailInfo(fn *ast.FuncDecl) (bool, string) {
	for _, a := range fn.Attrs {
		if a.Name == "should_fail" {
			if len(a.Args) > 0 {
				return true, a.Args[0]
			}
			return true, ""
		}
	}
	return false, ""
}

func (c *ctx) lowerTestFunction(fn *ast.FuncDecl) *ir.TestFunction {
	c.collector = &mappingAccessCollector{}
	c.usesTokenProgram, c.usesSolTransfer, c.mappingAccesses = false, false, nil
	body := c.lowerBlock(fn.Body)
	sf, msg := shouldFailInfo(fn)
	name := ""
	if fn.Name != nil {
		name = fn.Name.Name
	}
	return &ir.TestFunction{Name: name, ShouldFail: sf, FailMessage: msg, Body: body}
}

func (c *ctx) lowerFunction(fn *ast.FuncDecl) *ir.Instruction {
	c.collector = &mappingAccessCollector{}
	c.usesTokenProgram, c.usesSolTransfer, c.mappingAccesses = false, false, nil

	inst := &ir.Instruction{}
	if fn.Name != nil {
		inst.Name = fn.Name.Name
	}
	inst.IsPublic = fn.Visibility == ast.VisibilityPublic || fn.Visibility == ast.VisibilityExternal || fn.Visibility == ast.VisibilityDefault

	for _, m := range fn.Mutability {
		switch m {
		case ast.MutabilityView, ast.MutabilityPure:
			inst.IsView = true
		case ast.MutabilityPayable:
			inst.IsPayable = true
		}
	}

	for _, p := range fn.Params {
		name := ""
		if p.Name != nil {
			name = p.Name.Name
		}
		t := resolveType(c.reg, p.Type)
		inst.Params = append(inst.Params, ir.Param{Name: name, Type: solanaType(t), IsSigner: t.Kind == types.KPrimitive && t.Prim == types.PSigner})
	}

	if len(fn.Returns) == 1 {
		inst.Ret = solanaType(resolveType(c.reg, fn.Returns[0].Type))
	} else if len(fn.Returns) > 1 {
		c.fail(solerr.LowerUnsupportedConstruct, "instruction %q: multiple return values are not supported by the target account model", inst.Name)
	}

	for _, mc := range fn.Modifiers {
		inst.Modifiers = append(inst.Modifiers, ir.ModifierCallRef{Name: mc.Name.Name, Args: c.lowerExprList(mc.Args)})
	}

	inst.Body = c.lowerBlock(fn.Body)
	inst.UsesTokenProgram = c.usesTokenProgram
	inst.UsesSolTransfer = c.usesSolTransfer
	inst.MappingAccesses = c.mappingAccesses
	inst.ClosesState = containsSelfdestruct(inst.Body)

	return inst
}

func lowerStructDef(reg *types.Registry, name string) *ir.StructDef {
	sd, ok := reg.Structs[name]
	if !ok {
		return &ir.StructDef{Name: name}
	}
	out := &ir.StructDef{Name: name}
	for _, f := range sd.Fields {
		out.Fields = append(out.Fields, ir.FieldDef{Name: f.Name, Type: solanaType(f.Type)})
	}
	return out
}

func lowerEnumDef(reg *types.Registry, name string) *ir.EnumDef {
	ed, ok := reg.Enums[name]
	if !ok {
		return &ir.EnumDef{Name: name}
	}
	return &ir.EnumDef{Name: name, Variants: append([]string{}, ed.Variants...)}
}

func lowerEventDef(reg *types.Registry, name string) *ir.EventDef {
	ed, ok := reg.Events[name]
	if !ok {
		return &ir.EventDef{Name: name}
	}
	out := &ir.EventDef{Name: name}
	for _, p := range ed.Params {
		out.Params = append(out.Params, ir.EventParamDef{Name: p.Name, Type: solanaType(p.Type), Indexed: p.Indexed})
	}
	return out
}

func lowerErrorDef(reg *types.Registry, name string) *ir.ProgramError {
	ed, ok := reg.Errors[name]
	if !ok {
		return &ir.ProgramError{Name: name}
	}
	out := &ir.ProgramError{Name: name}
	for _, p := range ed.Params {
		out.Params = append(out.Params, ir.FieldDef{Name: p.Name, Type: solanaType(p.Type)})
	}
	return out
}
