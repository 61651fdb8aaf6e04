package lower

import (
	"github.com/cryptuon/solscript/internal/ast"
	"github.com/cryptuon/solscript/internal/types"
)

// assembleAllMembers builds one contract's all_members list: every base
// contract's members in declaration order (recursively, constructors
// excluded at every level), followed by this contract's own members
// (constructor excluded here too — it is picked up separately by the
// caller from the contract's own Members, never through all_members).
func assembleAllMembers(contracts map[string]*ast.Contract, name string) []ast.ContractMember {
	c := contracts[name]
	if c == nil {
		return nil
	}
	var all []ast.ContractMember
	for _, b := range c.Bases {
		all = append(all, assembleAllMembers(contracts, b.Name)...)
	}
	for _, m := range c.Members {
		if fn, ok := m.(*ast.FuncDecl); ok && fn.IsConstructor {
			continue
		}
		all = append(all, m)
	}
	return all
}

// splitStateAndMappings performs the spec's step 1: a forward pass over
// all_members collecting state-variable declarations, with the *earlier*
// (most-base) declaration winning on a name collision — the opposite of
// the child-wins rule used below for functions and modifiers.
func splitStateAndMappings(c *ctx, allMembers []ast.ContractMember) (stateVars, mappingVars []*ast.StateVar) {
	seen := map[string]bool{}
	for _, m := range allMembers {
		sv, ok := m.(*ast.StateVar)
		if !ok || seen[sv.Name.Name] {
			continue
		}
		seen[sv.Name.Name] = true
		if resolveType(c.reg, sv.Type).Kind == types.KMapping {
			mappingVars = append(mappingVars, sv)
		} else {
			stateVars = append(stateVars, sv)
		}
	}
	return stateVars, mappingVars
}

// collectModifiers performs the spec's child-wins modifier collection: a
// reverse pass over all_members so the most-derived declaration (appended
// last during assembly) is visited first and wins the name, then the
// result is reversed back so modifiers come out in declaration order.
func collectModifiers(allMembers []ast.ContractMember) []*ast.ModifierDecl {
	seen := map[string]bool{}
	var out []*ast.ModifierDecl
	for i := len(allMembers) - 1; i >= 0; i-- {
		md, ok := allMembers[i].(*ast.ModifierDecl)
		if !ok || seen[md.Name.Name] {
			continue
		}
		seen[md.Name.Name] = true
		out = append(out, md)
	}
	reverseModifiers(out)
	return out
}

// collectFunctions performs the spec's child-wins function collection: a
// reverse pass over all_members, dropping abstract (body-less) functions,
// then the result is reversed back so functions come out in declaration
// order rather than the reverse order the child-wins pass visits them in.
func collectFunctions(allMembers []ast.ContractMember) []*ast.FuncDecl {
	seen := map[string]bool{}
	var out []*ast.FuncDecl
	for i := len(allMembers) - 1; i >= 0; i-- {
		fn, ok := allMembers[i].(*ast.FuncDecl)
		if !ok || fn.Name == nil || seen[fn.Name.Name] {
			continue
		}
		seen[fn.Name.Name] = true
		if fn.Body == nil {
			continue
		}
		out = append(out, fn)
	}
	reverseFunctions(out)
	return out
}

func reverseModifiers(s []*ast.ModifierDecl) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseFunctions(s []*ast.FuncDecl) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
