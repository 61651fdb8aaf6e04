package checker

import (
	"github.com/cryptuon/solscript/internal/ast"
	"github.com/cryptuon/solscript/internal/types"
)

func (c *Checker) checkStmt(s ast.Stmt, scope *Scope, rets []*types.Type, owner *types.ContractDef) {
	switch v := s.(type) {
	case *ast.VarDeclStmt:
		t := c.resolveType(v.Type)
		if v.Init != nil {
			it := c.typeOf(v.Init, scope, owner)
			if !types.Compat(t, it) {
				c.errorAt(v.Init.Pos(), TypeMismatch, "cannot initialize %s with %s", t, it)
			}
		}
		scope.Define(v.Name.Name, t)

	case *ast.ExprStmt:
		c.typeOf(v.X, scope, owner)

	case *ast.IfStmt:
		cond := c.typeOf(v.Cond, scope, owner)
		if !types.IsBool(cond) && cond.Kind != types.KError && cond.Kind != types.KVar {
			c.errorAt(v.Cond.Pos(), TypeMismatch, "if condition must be bool, found %s", cond)
		}
		c.checkBlock(v.Then, scope, rets, owner)
		if v.Else != nil {
			c.checkStmt(v.Else, scope, rets, owner)
		}

	case *ast.Block:
		c.checkBlock(v, scope, rets, owner)

	case *ast.WhileStmt:
		cond := c.typeOf(v.Cond, scope, owner)
		if !types.IsBool(cond) && cond.Kind != types.KError && cond.Kind != types.KVar {
			c.errorAt(v.Cond.Pos(), TypeMismatch, "while condition must be bool, found %s", cond)
		}
		c.checkBlock(v.Body, scope, rets, owner)

	case *ast.ForStmt:
		forScope := newScope(ScopeBlock, scope)
		if v.Init != nil {
			c.checkStmt(v.Init, forScope, rets, owner)
		}
		if v.Cond != nil {
			cond := c.typeOf(v.Cond, forScope, owner)
			if !types.IsBool(cond) && cond.Kind != types.KError && cond.Kind != types.KVar {
				c.errorAt(v.Cond.Pos(), TypeMismatch, "for condition must be bool, found %s", cond)
			}
		}
		if v.Post != nil {
			c.checkStmt(v.Post, forScope, rets, owner)
		}
		c.checkBlock(v.Body, forScope, rets, owner)

	case *ast.ReturnStmt:
		if v.Value == nil {
			return
		}
		vt := c.typeOf(v.Value, scope, owner)
		if len(rets) == 0 {
			c.errorAt(v.Span, TypeMismatch, "return value in function with no declared return type")
		} else if len(rets) == 1 {
			if !types.Compat(rets[0], vt) {
				c.errorAt(v.Value.Pos(), TypeMismatch, "return type mismatch: expected %s, found %s", rets[0], vt)
			}
		} else if vt.Kind == types.KTuple && len(vt.Elems) == len(rets) {
			for i := range rets {
				if !types.Compat(rets[i], vt.Elems[i]) {
					c.errorAt(v.Value.Pos(), TypeMismatch, "return tuple element %d: expected %s, found %s", i+1, rets[i], vt.Elems[i])
				}
			}
		} else {
			c.errorAt(v.Value.Pos(), TypeMismatch, "expected tuple of %d return values", len(rets))
		}

	case *ast.EmitStmt:
		var ed *types.EventDef
		var ok bool
		if owner != nil {
			ed, ok = owner.Events[v.Event.Name]
		}
		if !ok {
			if ed2, ok2 := c.reg.Events[v.Event.Name]; ok2 {
				ed = ed2
				ok = true
			}
		}
		if !ok {
			c.errorAt(v.Span, TypeUndefinedEvent, "undefined event %q", v.Event.Name)
			break
		}
		c.checkArgTypesEvent(v.Span, ed, v.Args, scope, owner)

	case *ast.RequireStmt:
		cond := c.typeOf(v.Cond, scope, owner)
		if !types.IsBool(cond) && cond.Kind != types.KError && cond.Kind != types.KVar {
			c.errorAt(v.Cond.Pos(), TypeMismatch, "require condition must be bool, found %s", cond)
		}
		if v.Message != nil {
			c.typeOf(v.Message, scope, owner)
		}

	case *ast.RevertStmt:
		if v.Error != nil {
			var ed *types.ErrorDef
			var ok bool
			if owner != nil {
				ed, ok = owner.Errors[v.Error.Name]
			}
			if !ok {
				if ed2, ok2 := c.reg.Errors[v.Error.Name]; ok2 {
					ed = ed2
					ok = true
				}
			}
			if !ok {
				c.errorAt(v.Span, TypeUndefinedError, "undefined error %q", v.Error.Name)
				break
			}
			if len(v.Args) != len(ed.Params) {
				c.errorAt(v.Span, TypeWrongArgCount, "error %q expects %d argument(s), got %d", v.Error.Name, len(ed.Params), len(v.Args))
				break
			}
			for i, a := range v.Args {
				at := c.typeOf(a, scope, owner)
				if !types.Compat(ed.Params[i].Type, at) {
					c.errorAt(a.Pos(), TypeMismatch, "error %q argument %d: expected %s, found %s", v.Error.Name, i+1, ed.Params[i].Type, at)
				}
			}
		} else if v.Message != nil {
			c.typeOf(v.Message, scope, owner)
		}

	case *ast.DeleteStmt:
		c.typeOf(v.Target, scope, owner)

	case *ast.SelfdestructStmt:
		rt := c.typeOf(v.Recipient, scope, owner)
		if !types.Compat(types.Prim(types.PAddress), rt) {
			c.errorAt(v.Recipient.Pos(), TypeMismatch, "selfdestruct recipient must be address, found %s", rt)
		}

	case *ast.PlaceholderStmt:
		// Nothing to type here. Neither the checker nor the lowerer checks
		// that `_` appears only inside a modifier body or how often.
	}
}

func (c *Checker) checkArgTypesEvent(span ast.Span, ed *types.EventDef, args []ast.Expr, scope *Scope, owner *types.ContractDef) {
	if len(args) != len(ed.Params) {
		c.errorAt(span, TypeWrongArgCount, "event %q expects %d argument(s), got %d", ed.Name, len(ed.Params), len(args))
		return
	}
	for i, a := range args {
		at := c.typeOf(a, scope, owner)
		if !types.Compat(ed.Params[i].Type, at) {
			c.errorAt(a.Pos(), TypeMismatch, "event %q argument %d: expected %s, found %s", ed.Name, i+1, ed.Params[i].Type, at)
		}
	}
}
