// Package checker implements SolScript's two-pass type checker: a first
// pass collects every type definition (structs, enums, contracts,
// interfaces, events, errors) into a Registry, and a second pass checks
// every function/modifier/constructor body using a Scope stack, accumulating
// diagnostics rather than aborting on the first error.
package checker

import (
	"fmt"

	"github.com/cryptuon/solscript/internal/ast"
	solerr "github.com/cryptuon/solscript/internal/errors"
	"github.com/cryptuon/solscript/internal/types"
)

// Checker holds the registry and the accumulated diagnostics for one
// Check(program) run. It is not safe for concurrent or repeated use;
// construct a fresh Checker per program.
type Checker struct {
	reg   *types.Registry
	diags []*solerr.Report
}

// New creates a Checker with an empty registry.
func New() *Checker {
	return &Checker{reg: types.NewRegistry()}
}

// Registry exposes the collected type-definition table, useful for the IR
// lowerer which needs the same contract/struct/enum shapes the checker built.
func (c *Checker) Registry() *types.Registry { return c.reg }

func (c *Checker) errorAt(span ast.Span, code string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	sp := span
	c.diags = append(c.diags, &solerr.Report{
		Schema:  "solscript.error/v1",
		Code:    code,
		Phase:   "typecheck",
		Message: msg,
		Span:    &sp,
	})
}

// Check runs both passes over prog and returns every accumulated diagnostic.
// A non-empty return does not mean checking stopped early: the checker
// always visits every declaration and every statement it can reach.
func Check(prog *ast.Program) (*types.Registry, []*solerr.Report) {
	c := New()
	c.collect(prog)
	c.checkBodies(prog)
	return c.reg, c.diags
}

// resolvedContract is the checker's working view of one contract while
// checking its members: the flattened (inherited + own) member tables
// plus the AST node for body-checking.
type resolvedContract struct {
	def  *types.ContractDef
	node *ast.Contract
}

// flattenContract resolves a contract's full member set by walking its base
// chain in reverse declaration order and recording the first (i.e.
// most-derived / child-wins) definition seen for each name, matching the
// inheritance-flattening invariant the lowerer also relies on.
func (c *Checker) flattenContract(name string) *types.ContractDef {
	def, ok := c.reg.Contracts[name]
	if !ok {
		return nil
	}
	flat := &types.ContractDef{
		Name:      def.Name,
		Bases:     def.Bases,
		Methods:   map[string]*types.MethodDef{},
		Modifiers: map[string]*types.ModifierDef{},
		Events:    map[string]*types.EventDef{},
		Errors:    map[string]*types.ErrorDef{},
		Structs:   map[string]*types.StructDef{},
		Enums:     map[string]*types.EnumDef{},
	}

	seen := map[string]bool{}
	var chain []*types.ContractDef
	var walk func(n string)
	walk = func(n string) {
		cd, ok := c.reg.Contracts[n]
		if !ok || seen[n] {
			return
		}
		seen[n] = true
		chain = append(chain, cd)
		for i := len(cd.Bases) - 1; i >= 0; i-- {
			walk(cd.Bases[i])
		}
	}
	walk(name)

	// child-wins: iterate most-derived first (chain[0] == name itself),
	// only filling a slot that hasn't already been claimed by a more
	// derived contract.
	seenState := map[string]bool{}
	for _, cd := range chain {
		for _, sv := range cd.StateVars {
			if !seenState[sv.Name] {
				flat.StateVars = append(flat.StateVars, sv)
				seenState[sv.Name] = true
			}
		}
		for mname, m := range cd.Methods {
			if _, ok := flat.Methods[mname]; !ok {
				flat.Methods[mname] = m
			}
		}
		for mname, m := range cd.Modifiers {
			if _, ok := flat.Modifiers[mname]; !ok {
				flat.Modifiers[mname] = m
			}
		}
		for ename, e := range cd.Events {
			if _, ok := flat.Events[ename]; !ok {
				flat.Events[ename] = e
			}
		}
		for ename, e := range cd.Errors {
			if _, ok := flat.Errors[ename]; !ok {
				flat.Errors[ename] = e
			}
		}
	}
	return flat
}
