package checker

import (
	"github.com/cryptuon/solscript/internal/ast"
	"github.com/cryptuon/solscript/internal/types"
)

// checkBodies is the checker's second pass: it pushes scopes per spec
// (Global → Contract → Function → Block) and checks every function,
// modifier, and constructor body using the registry built in collect().
func (c *Checker) checkBodies(prog *ast.Program) {
	global := newScope(ScopeGlobal, nil)
	for _, item := range prog.Items {
		switch v := item.(type) {
		case *ast.Contract:
			c.checkContract(v, global)
		case *ast.FuncDecl:
			c.checkFunction(v, nil, global)
		}
	}
}

func (c *Checker) checkContract(v *ast.Contract, global *Scope) {
	flat := c.flattenContract(v.Name.Name)
	contractScope := newScope(ScopeContract, global)
	for _, sv := range flat.StateVars {
		contractScope.Define(sv.Name, sv.Type)
	}

	for _, m := range v.Members {
		switch mv := m.(type) {
		case *ast.FuncDecl:
			c.checkFunction(mv, flat, contractScope)
		case *ast.ModifierDecl:
			c.checkModifier(mv, flat, contractScope)
		}
	}
}

func (c *Checker) checkModifier(v *ast.ModifierDecl, owner *types.ContractDef, parent *Scope) {
	fnScope := newScope(ScopeFunction, parent)
	for _, p := range v.Params {
		if p.Name != nil {
			fnScope.Define(p.Name.Name, c.resolveType(p.Type))
		}
	}
	c.checkBlock(v.Body, fnScope, nil, owner)
}

func (c *Checker) checkFunction(v *ast.FuncDecl, owner *types.ContractDef, parent *Scope) {
	fnScope := newScope(ScopeFunction, parent)
	for _, p := range v.Params {
		if p.Name != nil {
			fnScope.Define(p.Name.Name, c.resolveType(p.Type))
		}
	}

	for _, mc := range v.Modifiers {
		if owner == nil {
			continue
		}
		md, ok := owner.Modifiers[mc.Name.Name]
		if !ok {
			c.errorAt(mc.Span, TypeUndefinedModifier, "undefined modifier %q", mc.Name.Name)
			continue
		}
		if len(mc.Args) != len(md.Params) {
			c.errorAt(mc.Span, TypeWrongArgCount, "modifier %q expects %d argument(s), got %d", mc.Name.Name, len(md.Params), len(mc.Args))
			continue
		}
		for i, a := range mc.Args {
			at := c.typeOf(a, fnScope, owner)
			if !types.Compat(md.Params[i].Type, at) {
				c.errorAt(a.Pos(), TypeMismatch, "modifier %q argument %d: expected %s, found %s", mc.Name.Name, i+1, md.Params[i].Type, at)
			}
		}
	}

	var rets []*types.Type
	for _, r := range v.Returns {
		rets = append(rets, c.resolveType(r.Type))
	}

	if v.Body != nil {
		c.checkBlock(v.Body, fnScope, rets, owner)
	}
}

func (c *Checker) checkBlock(b *ast.Block, parent *Scope, rets []*types.Type, owner *types.ContractDef) {
	blockScope := newScope(ScopeBlock, parent)
	for _, s := range b.Stmts {
		c.checkStmt(s, blockScope, rets, owner)
	}
}
