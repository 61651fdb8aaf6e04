// Package parser turns a token stream from internal/lexer into an
// internal/ast.Program using recursive descent with Pratt-style expression
// parsing. Precedence follows Solidity: assignment is right-associative and
// lowest, then `? :`, `||`, `&&`, bitwise or/xor/and, equality, ordering,
// shifts, additive, multiplicative, `**` (right-assoc), unary, postfix.
package parser

import (
	"fmt"

	"github.com/cryptuon/solscript/internal/ast"
	solerr "github.com/cryptuon/solscript/internal/errors"
	"github.com/cryptuon/solscript/internal/lexer"
)

// ParseError is the single error type returned by Parse; it wraps the first
// diagnostic encountered (the parser does not try to recover and continue).
type ParseError struct {
	Report *solerr.Report
}

func (e *ParseError) Error() string {
	return e.Report.Message
}

func (e *ParseError) Unwrap() error {
	return solerr.WrapReport(e.Report)
}

type parser struct {
	l       *lexer.Lexer
	cur     lexer.Token
	peek    lexer.Token
	source  string
}

// Parse tokenizes and parses a complete SolScript source file.
func Parse(source string) (prog *ast.Program, err error) {
	p := &parser{l: lexer.New(source), source: source}
	p.next()
	p.next()

	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				prog = nil
				err = pe
				return
			}
			panic(r)
		}
	}()

	items := []ast.Item{}
	start := p.cur.Start
	for p.cur.Kind != lexer.EOF {
		items = append(items, p.parseItem())
	}
	end := p.cur.End

	return &ast.Program{Items: items, Span: ast.Span{Start: start, End: end}}, nil
}

func (p *parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *parser) fail(code string, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	span := ast.Span{Start: p.cur.Start, End: p.cur.End}
	panic(&ParseError{Report: &solerr.Report{
		Schema:  "solscript.error/v1",
		Code:    code,
		Phase:   "parser",
		Message: msg,
		Span:    &span,
		Data: map[string]any{
			"line":   p.cur.Line,
			"column": p.cur.Column,
		},
	}})
}

func (p *parser) expect(k lexer.Kind) lexer.Token {
	if p.cur.Kind != k {
		p.fail(solerr.ParseUnexpectedToken, "expected %s, found %s %q", k, p.cur.Kind, p.cur.Literal)
	}
	tok := p.cur
	p.next()
	return tok
}

func (p *parser) at(k lexer.Kind) bool { return p.cur.Kind == k }

func (p *parser) accept(k lexer.Kind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

func (p *parser) ident() *ast.Ident {
	tok := p.expect(lexer.IDENT)
	return &ast.Ident{Name: tok.Literal, Span: ast.Span{Start: tok.Start, End: tok.End}}
}

func span(startTok lexer.Token, endPos int) ast.Span {
	return ast.Span{Start: startTok.Start, End: endPos}
}

// ---------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------

func (p *parser) parseItem() ast.Item {
	switch p.cur.Kind {
	case lexer.IMPORT:
		return p.parseImport()
	case lexer.ABSTRACT:
		return p.parseContract(true)
	case lexer.CONTRACT:
		return p.parseContract(false)
	case lexer.INTERFACE:
		return p.parseInterface()
	case lexer.STRUCT:
		return p.parseStruct()
	case lexer.ENUM:
		return p.parseEnum()
	case lexer.EVENT:
		return p.parseEventDecl()
	case lexer.ERROR:
		return p.parseErrorDecl()
	case lexer.FUNCTION:
		return p.parseFreeFunction()
	default:
		p.fail(solerr.ParseUnexpectedToken, "expected item, found %s %q", p.cur.Kind, p.cur.Literal)
		return nil
	}
}

func (p *parser) parseImport() ast.Item {
	start := p.cur
	p.expect(lexer.IMPORT)
	p.expect(lexer.LBRACE)
	var syms []*ast.Ident
	for {
		syms = append(syms, p.ident())
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	p.expect(lexer.FROM)
	pathTok := p.expect(lexer.STRING)
	end := p.cur.End
	p.expect(lexer.SEMI)
	return &ast.ImportItem{Symbols: syms, Path: pathTok.Literal, Span: span(start, end)}
}

func (p *parser) parseBases() []*ast.Ident {
	var bases []*ast.Ident
	if p.accept(lexer.IS) {
		for {
			bases = append(bases, p.ident())
			if !p.accept(lexer.COMMA) {
				break
			}
		}
	}
	return bases
}

func (p *parser) parseContract(isAbstract bool) ast.Item {
	start := p.cur
	if isAbstract {
		p.expect(lexer.ABSTRACT)
	}
	p.expect(lexer.CONTRACT)
	name := p.ident()
	bases := p.parseBases()
	p.expect(lexer.LBRACE)
	var members []ast.ContractMember
	for !p.at(lexer.RBRACE) {
		members = append(members, p.parseMember())
	}
	end := p.cur.End
	p.expect(lexer.RBRACE)
	return &ast.Contract{Name: name, IsAbstract: isAbstract, Bases: bases, Members: members, Span: span(start, end)}
}

func (p *parser) parseMember() ast.ContractMember {
	attrs := p.parseAttributes()
	switch p.cur.Kind {
	case lexer.CONSTRUCTOR:
		return p.parseFunction(true, attrs)
	case lexer.FUNCTION:
		return p.parseFunction(false, attrs)
	case lexer.MODIFIER:
		return p.parseModifierDecl()
	case lexer.EVENT:
		return p.parseEventDecl().(*ast.EventDecl)
	case lexer.ERROR:
		return p.parseErrorDecl().(*ast.ErrorDecl)
	case lexer.STRUCT:
		return p.parseStruct().(*ast.StructDecl)
	case lexer.ENUM:
		return p.parseEnum().(*ast.EnumDecl)
	default:
		return p.parseStateVar()
	}
}

func (p *parser) parseAttributes() []*ast.Attribute {
	var attrs []*ast.Attribute
	for p.at(lexer.HASH) {
		start := p.cur
		p.next()
		p.expect(lexer.LBRACKET)
		name := p.ident()
		var args []string
		if p.accept(lexer.LPAREN) {
			for !p.at(lexer.RPAREN) {
				tok := p.expect(lexer.STRING)
				args = append(args, tok.Literal)
				if !p.accept(lexer.COMMA) {
					break
				}
			}
			p.expect(lexer.RPAREN)
		}
		end := p.cur.End
		p.expect(lexer.RBRACKET)
		attrs = append(attrs, &ast.Attribute{Name: name.Name, Args: args, Span: span(start, end)})
	}
	return attrs
}

func (p *parser) parseVisibility() ast.Visibility {
	switch p.cur.Kind {
	case lexer.PUBLIC:
		p.next()
		return ast.VisibilityPublic
	case lexer.PRIVATE:
		p.next()
		return ast.VisibilityPrivate
	case lexer.INTERNAL:
		p.next()
		return ast.VisibilityInternal
	case lexer.EXTERNAL:
		p.next()
		return ast.VisibilityExternal
	default:
		return ast.VisibilityDefault
	}
}

func isVisibilityTok(k lexer.Kind) bool {
	switch k {
	case lexer.PUBLIC, lexer.PRIVATE, lexer.INTERNAL, lexer.EXTERNAL:
		return true
	}
	return false
}

func (p *parser) parseStateVar() ast.ContractMember {
	start := p.cur
	typ := p.parseType()
	vis := p.parseVisibility()
	name := p.ident()
	var init ast.Expr
	if p.accept(lexer.ASSIGN) {
		init = p.parseExpr(precAssign)
	}
	end := p.cur.End
	p.expect(lexer.SEMI)
	return &ast.StateVar{Name: name, Type: typ, Visibility: vis, Init: init, Span: span(start, end)}
}

func (p *parser) parseModifierDecl() *ast.ModifierDecl {
	start := p.cur
	p.expect(lexer.MODIFIER)
	name := p.ident()
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.ModifierDecl{Name: name, Params: params, Body: body, Span: span(start, body.Span.End)}
}

func (p *parser) parseFunction(isCtor bool, attrs []*ast.Attribute) *ast.FuncDecl {
	start := p.cur
	var name *ast.Ident
	if isCtor {
		p.expect(lexer.CONSTRUCTOR)
	} else {
		p.expect(lexer.FUNCTION)
		name = p.ident()
	}
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)

	vis := ast.VisibilityDefault
	var muts []ast.Mutability
	var mods []*ast.ModifierCall
loop:
	for {
		switch p.cur.Kind {
		case lexer.PUBLIC, lexer.PRIVATE, lexer.INTERNAL, lexer.EXTERNAL:
			vis = p.parseVisibility()
		case lexer.VIEW:
			p.next()
			muts = append(muts, ast.MutabilityView)
		case lexer.PURE:
			p.next()
			muts = append(muts, ast.MutabilityPure)
		case lexer.PAYABLE:
			p.next()
			muts = append(muts, ast.MutabilityPayable)
		case lexer.IDENT:
			mods = append(mods, p.parseModifierCall())
		default:
			break loop
		}
	}

	var returns []*ast.Param
	if p.accept(lexer.RETURNS) {
		p.expect(lexer.LPAREN)
		returns = p.parseParamList()
		p.expect(lexer.RPAREN)
	}

	var body *ast.Block
	end := p.cur.End
	if p.at(lexer.SEMI) {
		p.next()
	} else {
		body = p.parseBlock()
		end = body.Span.End
	}

	return &ast.FuncDecl{
		Name: name, IsConstructor: isCtor, Params: params, Returns: returns,
		Visibility: vis, Mutability: muts, Modifiers: mods, Attrs: attrs,
		Body: body, Span: span(start, end),
	}
}

func (p *parser) parseModifierCall() *ast.ModifierCall {
	name := p.ident()
	var args []ast.Expr
	end := name.Span.End
	if p.accept(lexer.LPAREN) {
		for !p.at(lexer.RPAREN) {
			args = append(args, p.parseExpr(precAssign))
			if !p.accept(lexer.COMMA) {
				break
			}
		}
		end = p.cur.End
		p.expect(lexer.RPAREN)
	}
	return &ast.ModifierCall{Name: name, Args: args, Span: ast.Span{Start: name.Span.Start, End: end}}
}

func (p *parser) parseFreeFunction() ast.Item {
	return p.parseFunction(false, nil)
}

func (p *parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	for !p.at(lexer.RPAREN) {
		start := p.cur
		typ := p.parseType()
		var name *ast.Ident
		if p.at(lexer.IDENT) {
			name = p.ident()
		}
		end := p.cur.End
		if name != nil {
			end = name.Span.End
		} else {
			end = typ.Pos().End
		}
		params = append(params, &ast.Param{Name: name, Type: typ, Span: span(start, end)})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	return params
}

func (p *parser) parseInterface() ast.Item {
	start := p.cur
	p.expect(lexer.INTERFACE)
	name := p.ident()
	bases := p.parseBases()
	p.expect(lexer.LBRACE)
	var methods []*ast.FuncDecl
	for !p.at(lexer.RBRACE) {
		methods = append(methods, p.parseFunction(false, nil))
	}
	end := p.cur.End
	p.expect(lexer.RBRACE)
	return &ast.Interface{Name: name, Bases: bases, Members: methods, Span: span(start, end)}
}

func (p *parser) parseStruct() ast.Item {
	start := p.cur
	p.expect(lexer.STRUCT)
	name := p.ident()
	p.expect(lexer.LBRACE)
	var fields []*ast.FieldDecl
	for !p.at(lexer.RBRACE) {
		fstart := p.cur
		typ := p.parseType()
		fname := p.ident()
		end := p.cur.End
		p.expect(lexer.SEMI)
		fields = append(fields, &ast.FieldDecl{Name: fname, Type: typ, Span: span(fstart, end)})
	}
	end := p.cur.End
	p.expect(lexer.RBRACE)
	return &ast.StructDecl{Name: name, Fields: fields, Span: span(start, end)}
}

func (p *parser) parseEnum() ast.Item {
	start := p.cur
	p.expect(lexer.ENUM)
	name := p.ident()
	p.expect(lexer.LBRACE)
	var variants []*ast.Ident
	for !p.at(lexer.RBRACE) {
		variants = append(variants, p.ident())
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	end := p.cur.End
	p.expect(lexer.RBRACE)
	return &ast.EnumDecl{Name: name, Variants: variants, Span: span(start, end)}
}

func (p *parser) parseEventDecl() ast.Item {
	start := p.cur
	p.expect(lexer.EVENT)
	name := p.ident()
	p.expect(lexer.LPAREN)
	var params []*ast.EventParam
	for !p.at(lexer.RPAREN) {
		typ := p.parseType()
		indexed := p.accept(lexer.INDEXED)
		pname := p.ident()
		params = append(params, &ast.EventParam{Name: pname, Type: typ, Indexed: indexed})
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN)
	end := p.cur.End
	p.expect(lexer.SEMI)
	return &ast.EventDecl{Name: name, Params: params, Span: span(start, end)}
}

func (p *parser) parseErrorDecl() ast.Item {
	start := p.cur
	p.expect(lexer.ERROR)
	name := p.ident()
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)
	end := p.cur.End
	p.expect(lexer.SEMI)
	return &ast.ErrorDecl{Name: name, Params: params, Span: span(start, end)}
}

// ---------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------

func (p *parser) parseType() ast.TypeExpr {
	if p.at(lexer.MAPPING) {
		return p.parseMappingType()
	}
	if p.at(lexer.LPAREN) {
		return p.parseTupleType()
	}
	return p.parsePathOrArrayType()
}

func (p *parser) parseMappingType() ast.TypeExpr {
	start := p.cur
	p.expect(lexer.MAPPING)
	p.expect(lexer.LPAREN)
	key := p.parseType()
	p.expect(lexer.FARROW)
	val := p.parseType()
	end := p.cur.End
	p.expect(lexer.RPAREN)
	return &ast.MappingType{Key: key, Value: val, Span: span(start, end)}
}

func (p *parser) parseTupleType() ast.TypeExpr {
	start := p.cur
	p.expect(lexer.LPAREN)
	var elems []ast.TypeExpr
	for !p.at(lexer.RPAREN) {
		elems = append(elems, p.parseType())
		if !p.accept(lexer.COMMA) {
			break
		}
	}
	end := p.cur.End
	p.expect(lexer.RPAREN)
	return &ast.TupleType{Elements: elems, Span: span(start, end)}
}

func (p *parser) parsePathOrArrayType() ast.TypeExpr {
	start := p.cur
	var segs []*ast.Ident
	segs = append(segs, p.ident())
	for p.accept(lexer.DOT) {
		segs = append(segs, p.ident())
	}
	end := segs[len(segs)-1].Span.End
	var generics []ast.TypeExpr
	if p.accept(lexer.LT) {
		for !p.at(lexer.GT) {
			generics = append(generics, p.parseType())
			if !p.accept(lexer.COMMA) {
				break
			}
		}
		end = p.cur.End
		p.expect(lexer.GT)
	}
	var base ast.TypeExpr = &ast.TypePath{Segments: segs, GenericArgs: generics, Span: span(start, end)}

	for p.at(lexer.LBRACKET) {
		bstart := p.cur
		p.next()
		var size *uint64
		if !p.at(lexer.RBRACKET) {
			tok := p.expect(lexer.INT)
			n := parseUintLiteral(tok.Literal)
			size = &n
		}
		end := p.cur.End
		p.expect(lexer.RBRACKET)
		base = &ast.ArrayType{Element: base, Sizes: []*uint64{size}, Span: span(bstart, end)}
	}
	return base
}

func parseUintLiteral(s string) uint64 {
	var n uint64
	for i := 0; i < len(s); i++ {
		n = n*10 + uint64(s[i]-'0')
	}
	return n
}
