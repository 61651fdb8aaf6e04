package parser

import (
	"github.com/cryptuon/solscript/internal/ast"
	solerr "github.com/cryptuon/solscript/internal/errors"
	"github.com/cryptuon/solscript/internal/lexer"
)

// Precedence levels, low to high, matching Solidity.
const (
	precLowest = iota
	precAssign    // = += -= *= /= %= &= |= ^= <<= >>=
	precTernary   // ?:
	precOr        // ||
	precAnd       // &&
	precBitOr     // |
	precBitXor    // ^
	precBitAnd    // &
	precEquality  // == !=
	precOrdering  // < > <= >=
	precShift     // << >>
	precAdditive  // + -
	precMultiplicative // * / %
	precExponent  // ** (right-assoc)
	precUnary
	precPostfix
)

var binPrec = map[lexer.Kind]int{
	lexer.OR:      precOr,
	lexer.AND:     precAnd,
	lexer.BITOR:   precBitOr,
	lexer.BITXOR:  precBitXor,
	lexer.BITAND:  precBitAnd,
	lexer.EQ:      precEquality,
	lexer.NEQ:     precEquality,
	lexer.LT:      precOrdering,
	lexer.GT:      precOrdering,
	lexer.LE:      precOrdering,
	lexer.GE:      precOrdering,
	lexer.SHL:     precShift,
	lexer.SHR:     precShift,
	lexer.PLUS:    precAdditive,
	lexer.MINUS:   precAdditive,
	lexer.STAR:    precMultiplicative,
	lexer.SLASH:   precMultiplicative,
	lexer.PERCENT: precMultiplicative,
	lexer.STARSTAR: precExponent,
}

var assignOps = map[lexer.Kind]bool{
	lexer.ASSIGN: true, lexer.PLUSEQ: true, lexer.MINUSEQ: true, lexer.STAREQ: true,
	lexer.SLASHEQ: true, lexer.PERCENTEQ: true, lexer.BITANDEQ: true, lexer.BITOREQ: true,
	lexer.BITXOREQ: true, lexer.SHLEQ: true, lexer.SHREQ: true,
}

func (p *parser) parseExpr(minPrec int) ast.Expr {
	left := p.parseUnary()

	for {
		if minPrec <= precAssign && assignOps[p.cur.Kind] {
			op := p.cur.Literal
			p.next()
			right := p.parseExpr(precAssign) // right-associative
			left = &ast.AssignExpr{Op: op, Left: left, Right: right, Span: left.Pos().Merge(right.Pos())}
			continue
		}
		if minPrec <= precTernary && p.at(lexer.QUESTION) {
			p.next()
			then := p.parseExpr(precAssign)
			p.expect(lexer.COLON)
			els := p.parseExpr(precTernary)
			left = &ast.TernaryExpr{Cond: left, Then: then, Else: els, Span: left.Pos().Merge(els.Pos())}
			continue
		}
		prec, ok := binPrec[p.cur.Kind]
		if !ok || prec < minPrec {
			break
		}
		op := p.cur.Literal
		opKind := p.cur.Kind
		p.next()
		nextMin := prec + 1
		if opKind == lexer.STARSTAR {
			nextMin = prec // right-associative
		}
		right := p.parseExpr(nextMin)
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: left.Pos().Merge(right.Pos())}
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	switch p.cur.Kind {
	case lexer.MINUS, lexer.NOT, lexer.BITNOT, lexer.PLUSPLUS, lexer.MINUSMINUS:
		start := p.cur
		op := p.cur.Literal
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: op, Operand: operand, Span: span(start, operand.Pos().End)}
	default:
		return p.parsePostfix()
	}
}

func (p *parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		switch p.cur.Kind {
		case lexer.DOT:
			p.next()
			name := p.ident()
			if p.at(lexer.LPAREN) {
				p.next()
				args := p.parseArgs()
				end := p.cur.End
				p.expect(lexer.RPAREN)
				e = &ast.MethodCallExpr{Receiver: e, Method: name, Args: args, Span: span2(e, end)}
			} else {
				e = &ast.FieldAccessExpr{Receiver: e, Field: name, Span: span2(e, name.Span.End)}
			}
		case lexer.LBRACKET:
			p.next()
			idx := p.parseExpr(precLowest)
			end := p.cur.End
			p.expect(lexer.RBRACKET)
			e = &ast.IndexExpr{Base: e, Index: idx, Span: span2(e, end)}
		case lexer.LPAREN:
			p.next()
			args := p.parseArgs()
			end := p.cur.End
			p.expect(lexer.RPAREN)
			e = &ast.CallExpr{Callee: e, Args: args, Span: span2(e, end)}
		case lexer.PLUSPLUS, lexer.MINUSMINUS:
			op := p.cur.Literal
			end := p.cur.End
			p.next()
			e = &ast.UnaryExpr{Op: op, Operand: e, Postfix: true, Span: span2(e, end)}
		default:
			return e
		}
	}
}

func span2(e ast.Expr, end int) ast.Span {
	return ast.Span{Start: e.Pos().Start, End: end}
}

func (p *parser) parseArgs() []ast.Expr {
	var args []ast.Expr
	for !p.at(lexer.RPAREN) {
		args = append(args, p.parseExpr(precAssign))
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	return args
}

func (p *parser) parsePrimary() ast.Expr {
	start := p.cur
	switch p.cur.Kind {
	case lexer.INT:
		p.next()
		return &ast.Literal{Kind: ast.IntLiteral, Text: start.Literal, Span: span(start, start.End)}
	case lexer.HEX:
		p.next()
		return &ast.Literal{Kind: ast.HexLiteral, Text: start.Literal, Span: span(start, start.End)}
	case lexer.ADDRESS:
		p.next()
		return &ast.Literal{Kind: ast.AddressLiteral, Text: start.Literal, Span: span(start, start.End)}
	case lexer.STRING:
		p.next()
		return &ast.Literal{Kind: ast.StringLiteral, Str: start.Literal, Span: span(start, start.End)}
	case lexer.HEXSTRING:
		p.next()
		return &ast.Literal{Kind: ast.HexStringLiteral, Text: start.Literal, Span: span(start, start.End)}
	case lexer.TRUE:
		p.next()
		return &ast.Literal{Kind: ast.BoolLiteral, Bool: true, Span: span(start, start.End)}
	case lexer.FALSE:
		p.next()
		return &ast.Literal{Kind: ast.BoolLiteral, Bool: false, Span: span(start, start.End)}
	case lexer.IDENT:
		name := p.ident()
		return &ast.IdentExpr{Name: name, Span: name.Span}
	case lexer.NEW:
		p.next()
		typ := p.parseType()
		p.expect(lexer.LPAREN)
		args := p.parseArgs()
		end := p.cur.End
		p.expect(lexer.RPAREN)
		return &ast.NewExpr{Type: typ, Args: args, Span: span(start, end)}
	case lexer.IF:
		p.next()
		p.expect(lexer.LPAREN)
		cond := p.parseExpr(precLowest)
		p.expect(lexer.RPAREN)
		then := p.parseExpr(precAssign)
		p.expect(lexer.ELSE)
		els := p.parseExpr(precAssign)
		return &ast.IfExpr{Cond: cond, Then: then, Else: els, Span: span(start, els.Pos().End)}
	case lexer.LBRACKET:
		p.next()
		var elems []ast.Expr
		for !p.at(lexer.RBRACKET) {
			elems = append(elems, p.parseExpr(precAssign))
			if !p.accept(lexer.COMMA) {
				break
			}
		}
		end := p.cur.End
		p.expect(lexer.RBRACKET)
		return &ast.ArrayExpr{Elements: elems, Span: span(start, end)}
	case lexer.LPAREN:
		p.next()
		first := p.parseExpr(precLowest)
		if p.at(lexer.COMMA) {
			elems := []ast.Expr{first}
			for p.accept(lexer.COMMA) {
				elems = append(elems, p.parseExpr(precAssign))
			}
			end := p.cur.End
			p.expect(lexer.RPAREN)
			return &ast.TupleExpr{Elements: elems, Span: span(start, end)}
		}
		end := p.cur.End
		p.expect(lexer.RPAREN)
		return &ast.ParenExpr{Inner: first, Span: span(start, end)}
	default:
		p.fail(solerr.ParseUnexpectedToken, "expected expression, found %s %q", p.cur.Kind, p.cur.Literal)
		return nil
	}
}
