package parser

import (
	"github.com/cryptuon/solscript/internal/ast"
	"github.com/cryptuon/solscript/internal/lexer"
)

func (p *parser) parseBlock() *ast.Block {
	start := p.cur
	p.expect(lexer.LBRACE)
	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.cur.End
	p.expect(lexer.RBRACE)
	return &ast.Block{Stmts: stmts, Span: span(start, end)}
}

// savePoint snapshots enough parser state to backtrack a speculative parse.
// Lexer is copied by value; its fields are private to internal/lexer but a
// whole-struct assignment across packages is legal in Go.
type savePoint struct {
	lex  lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
}

func (p *parser) save() savePoint {
	return savePoint{lex: *p.l, cur: p.cur, peek: p.peek}
}

func (p *parser) restore(sp savePoint) {
	*p.l = sp.lex
	p.cur = sp.cur
	p.peek = sp.peek
}

// looksLikeVarDecl disambiguates `Type name = ...;` from a bare expression
// statement (e.g. `balances[msg.sender] += x;`) by speculatively parsing a
// type expression followed by an identifier and rolling back on failure.
// Solidity's own grammar carries the same ambiguity at statement position.
func (p *parser) looksLikeVarDecl() bool {
	if p.cur.Kind != lexer.MAPPING && p.cur.Kind != lexer.IDENT {
		return false
	}
	sp := p.save()
	ok := p.tryParseTypeThenIdent()
	p.restore(sp)
	return ok
}

func (p *parser) tryParseTypeThenIdent() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseErr := r.(*ParseError); isParseErr {
				ok = false
				return
			}
			panic(r)
		}
	}()
	p.parseType()
	return p.cur.Kind == lexer.IDENT
}

func (p *parser) parseStmt() ast.Stmt {
	start := p.cur
	switch p.cur.Kind {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.RETURN:
		p.next()
		if p.at(lexer.SEMI) {
			end := p.cur.End
			p.next()
			return &ast.ReturnStmt{Span: span(start, end)}
		}
		v := p.parseExpr(precLowest)
		end := p.cur.End
		p.expect(lexer.SEMI)
		return &ast.ReturnStmt{Value: v, Span: span(start, end)}
	case lexer.EMIT:
		p.next()
		name := p.ident()
		p.expect(lexer.LPAREN)
		args := p.parseArgs()
		p.expect(lexer.RPAREN)
		end := p.cur.End
		p.expect(lexer.SEMI)
		return &ast.EmitStmt{Event: name, Args: args, Span: span(start, end)}
	case lexer.REQUIRE:
		p.next()
		p.expect(lexer.LPAREN)
		cond := p.parseExpr(precAssign)
		var msg ast.Expr
		if p.accept(lexer.COMMA) {
			msg = p.parseExpr(precAssign)
		}
		p.expect(lexer.RPAREN)
		end := p.cur.End
		p.expect(lexer.SEMI)
		return &ast.RequireStmt{Cond: cond, Message: msg, Span: span(start, end)}
	case lexer.REVERT:
		return p.parseRevertStmt(start)
	case lexer.DELETE:
		p.next()
		target := p.parseExpr(precAssign)
		end := p.cur.End
		p.expect(lexer.SEMI)
		return &ast.DeleteStmt{Target: target, Span: span(start, end)}
	case lexer.SELFDESTRUCT:
		p.next()
		p.expect(lexer.LPAREN)
		recipient := p.parseExpr(precAssign)
		p.expect(lexer.RPAREN)
		end := p.cur.End
		p.expect(lexer.SEMI)
		return &ast.SelfdestructStmt{Recipient: recipient, Span: span(start, end)}
	case lexer.UNDERSCORE:
		p.next()
		end := p.cur.End
		p.expect(lexer.SEMI)
		return &ast.PlaceholderStmt{Span: span(start, end)}
	default:
		if p.looksLikeVarDecl() {
			return p.parseVarDeclStmt()
		}
		e := p.parseExpr(precLowest)
		end := p.cur.End
		p.expect(lexer.SEMI)
		return &ast.ExprStmt{X: e, Span: span(start, end)}
	}
}

func (p *parser) parseVarDeclStmt() ast.Stmt {
	start := p.cur
	typ := p.parseType()
	name := p.ident()
	var init ast.Expr
	if p.accept(lexer.ASSIGN) {
		init = p.parseExpr(precAssign)
	}
	end := p.cur.End
	p.expect(lexer.SEMI)
	return &ast.VarDeclStmt{Name: name, Type: typ, Init: init, Span: span(start, end)}
}

func (p *parser) parseRevertStmt(start lexer.Token) ast.Stmt {
	p.expect(lexer.REVERT)
	if p.at(lexer.LPAREN) {
		p.next()
		msg := p.parseExpr(precAssign)
		p.expect(lexer.RPAREN)
		end := p.cur.End
		p.expect(lexer.SEMI)
		return &ast.RevertStmt{Message: msg, Span: span(start, end)}
	}
	name := p.ident()
	p.expect(lexer.LPAREN)
	args := p.parseArgs()
	p.expect(lexer.RPAREN)
	end := p.cur.End
	p.expect(lexer.SEMI)
	return &ast.RevertStmt{Error: name, Args: args, Span: span(start, end)}
}

func (p *parser) parseIfStmt() ast.Stmt {
	start := p.cur
	p.expect(lexer.IF)
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(precLowest)
	p.expect(lexer.RPAREN)
	then := p.parseBlock()
	var els ast.Stmt
	end := then.Span.End
	if p.accept(lexer.ELSE) {
		if p.at(lexer.IF) {
			els = p.parseIfStmt()
		} else {
			els = p.parseBlock()
		}
		end = els.Pos().End
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, Span: span(start, end)}
}

func (p *parser) parseWhileStmt() ast.Stmt {
	start := p.cur
	p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	cond := p.parseExpr(precLowest)
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStmt{Cond: cond, Body: body, Span: span(start, body.Span.End)}
}

func (p *parser) parseForStmt() ast.Stmt {
	start := p.cur
	p.expect(lexer.FOR)
	p.expect(lexer.LPAREN)
	var init ast.Stmt
	if !p.at(lexer.SEMI) {
		if p.looksLikeVarDecl() {
			init = p.parseVarDeclStmt()
		} else {
			istart := p.cur
			e := p.parseExpr(precLowest)
			p.expect(lexer.SEMI)
			init = &ast.ExprStmt{X: e, Span: span(istart, e.Pos().End)}
		}
	} else {
		p.expect(lexer.SEMI)
	}
	var cond ast.Expr
	if !p.at(lexer.SEMI) {
		cond = p.parseExpr(precLowest)
	}
	p.expect(lexer.SEMI)
	var post ast.Stmt
	if !p.at(lexer.RPAREN) {
		pstart := p.cur
		e := p.parseExpr(precLowest)
		post = &ast.ExprStmt{X: e, Span: span(pstart, e.Pos().End)}
	}
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body, Span: span(start, body.Span.End)}
}
