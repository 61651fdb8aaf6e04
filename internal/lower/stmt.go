package lower

import (
	"github.com/cryptuon/solscript/internal/ast"
	"github.com/cryptuon/solscript/internal/ir"
)

func (c *ctx) lowerBlock(b *ast.Block) []ir.Stmt {
	if b == nil {
		return nil
	}
	out := make([]ir.Stmt, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		out = append(out, c.lowerStmt(s))
	}
	return out
}

func (c *ctx) lowerStmt(s ast.Stmt) ir.Stmt {
	switch v := s.(type) {
	case *ast.VarDeclStmt:
		st := ir.Stmt{Kind: ir.SkVarDecl, Name: v.Name.Name, Type: solanaType(resolveType(c.reg, v.Type))}
		if v.Init != nil {
			st.Init = c.lowerExpr(v.Init)
		}
		return st

	case *ast.ExprStmt:
		return ir.Stmt{Kind: ir.SkExpr, X: c.lowerExpr(v.X)}

	case *ast.IfStmt:
		st := ir.Stmt{Kind: ir.SkIf, Cond: c.lowerExpr(v.Cond), Then: c.lowerBlock(v.Then)}
		switch els := v.Else.(type) {
		case nil:
			// no else branch
		case *ast.Block:
			st.Else = c.lowerBlock(els)
		case *ast.IfStmt:
			// else-if: a single nested If statement standing in for Else.
			st.Else = []ir.Stmt{c.lowerStmt(els)}
		}
		return st

	case *ast.Block:
		return ir.Stmt{Kind: ir.SkBlock, Body: c.lowerBlock(v)}

	case *ast.WhileStmt:
		return ir.Stmt{Kind: ir.SkWhile, Cond: c.lowerExpr(v.Cond), Body: c.lowerBlock(v.Body)}

	case *ast.ForStmt:
		st := ir.Stmt{Kind: ir.SkFor, Body: c.lowerBlock(v.Body)}
		if v.Init != nil {
			init := c.lowerStmt(v.Init)
			st.ForInit = &init
		}
		if v.Cond != nil {
			st.Cond = c.lowerExpr(v.Cond)
		}
		if v.Post != nil {
			post := c.lowerStmt(v.Post)
			st.ForPost = &post
		}
		return st

	case *ast.ReturnStmt:
		st := ir.Stmt{Kind: ir.SkReturn}
		if v.Value != nil {
			st.Value = c.lowerExpr(v.Value)
		}
		return st

	case *ast.EmitStmt:
		return ir.Stmt{Kind: ir.SkEmit, EventName: v.Event.Name, Args: c.lowerExprList(v.Args)}

	case *ast.RequireStmt:
		st := ir.Stmt{Kind: ir.SkRequire, Cond: c.lowerExpr(v.Cond)}
		if v.Message != nil {
			st.Message = c.lowerExpr(v.Message)
		}
		return st

	case *ast.RevertStmt:
		st := ir.Stmt{Kind: ir.SkRevert}
		if v.Error != nil {
			st.ErrorName = v.Error.Name
			st.Args = c.lowerExprList(v.Args)
		} else if v.Message != nil {
			st.Message = c.lowerExpr(v.Message)
		}
		return st

	case *ast.DeleteStmt:
		if idx, ok := v.Target.(*ast.IndexExpr); ok {
			if ma, ok := c.tryLowerMappingChain(idx, true); ok {
				for _, acc := range c.mappingAccesses {
					if acc.AccountName == ma.AccountName {
						acc.ShouldClose = true
					}
				}
				return ir.Stmt{Kind: ir.SkDelete, X: ma}
			}
		}
		return ir.Stmt{Kind: ir.SkDelete, X: c.lowerExpr(v.Target)}

	case *ast.SelfdestructStmt:
		return ir.Stmt{Kind: ir.SkSelfdestruct, X: c.lowerExpr(v.Recipient)}

	case *ast.PlaceholderStmt:
		return ir.Stmt{Kind: ir.SkPlaceholder}

	default:
		return ir.Stmt{Kind: ir.SkExpr, X: &ir.Expr{Kind: ir.EkLiteralBool, Bool: true}}
	}
}

// containsSelfdestruct reports whether body reachably contains a
// Selfdestruct statement, looking inside nested If/While/For bodies —
// the rule that sets Instruction.ClosesState.
func containsSelfdestruct(body []ir.Stmt) bool {
	for _, s := range body {
		switch s.Kind {
		case ir.SkSelfdestruct:
			return true
		case ir.SkIf:
			if containsSelfdestruct(s.Then) || containsSelfdestruct(s.Else) {
				return true
			}
		case ir.SkWhile, ir.SkFor:
			if containsSelfdestruct(s.Body) {
				return true
			}
		case ir.SkBlock:
			if containsSelfdestruct(s.Body) {
				return true
			}
		}
	}
	return false
}
