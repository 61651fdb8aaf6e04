package lexer

import "testing"

func TestNextTokenBasics(t *testing.T) {
	input := `contract Counter is Ownable {
    uint256 public count;

    constructor() {
        count = 0;
    }

    function increment(uint256 by) public onlyOwner returns (uint256) {
        count += by;
        return count;
    }

    // a comment
    /* block comment */
    modifier onlyOwner() {
        require(msg.sender == owner, "not owner");
        _;
    }
}
`

	tests := []struct {
		kind    Kind
		literal string
	}{
		{CONTRACT, "contract"},
		{IDENT, "Counter"},
		{IS, "is"},
		{IDENT, "Ownable"},
		{LBRACE, "{"},
		{IDENT, "uint256"},
		{PUBLIC, "public"},
		{IDENT, "count"},
		{SEMI, ";"},
		{CONSTRUCTOR, "constructor"},
		{LPAREN, "("},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{IDENT, "count"},
		{ASSIGN, "="},
		{INT, "0"},
		{SEMI, ";"},
		{RBRACE, "}"},
		{FUNCTION, "function"},
		{IDENT, "increment"},
		{LPAREN, "("},
		{IDENT, "uint256"},
		{IDENT, "by"},
		{RPAREN, ")"},
		{PUBLIC, "public"},
		{IDENT, "onlyOwner"},
		{RETURNS, "returns"},
		{LPAREN, "("},
		{IDENT, "uint256"},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{IDENT, "count"},
		{PLUSEQ, "+="},
		{IDENT, "by"},
		{SEMI, ";"},
		{RETURN, "return"},
		{IDENT, "count"},
		{SEMI, ";"},
		{RBRACE, "}"},
		{MODIFIER, "modifier"},
		{IDENT, "onlyOwner"},
		{LPAREN, "("},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{REQUIRE, "require"},
		{LPAREN, "("},
		{IDENT, "msg"},
		{DOT, "."},
		{IDENT, "sender"},
		{EQ, "=="},
		{IDENT, "owner"},
		{COMMA, ","},
		{STRING, "not owner"},
		{RPAREN, ")"},
		{SEMI, ";"},
		{UNDERSCORE, "_"},
		{SEMI, ";"},
		{RBRACE, "}"},
		{RBRACE, "}"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("test[%d] - wrong kind. expected=%s, got=%s (literal %q)", i, tt.kind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("test[%d] - wrong literal. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
	}
}

func TestNextTokenAddressVsHex(t *testing.T) {
	l := New(`0x0000000000000000000000000000000000000001 0xFF`)
	tok := l.NextToken()
	if tok.Kind != ADDRESS {
		t.Fatalf("expected ADDRESS, got %s", tok.Kind)
	}
	tok = l.NextToken()
	if tok.Kind != HEX {
		t.Fatalf("expected HEX, got %s", tok.Kind)
	}
}

func TestNextTokenHexString(t *testing.T) {
	l := New(`hex"deadbeef"`)
	tok := l.NextToken()
	if tok.Kind != HEXSTRING {
		t.Fatalf("expected HEXSTRING, got %s", tok.Kind)
	}
	if tok.Literal != "deadbeef" {
		t.Fatalf("expected deadbeef, got %q", tok.Literal)
	}
}

func TestNextTokenOperators(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{"**", STARSTAR},
		{"<<=", SHLEQ},
		{">>=", SHREQ},
		{"<<", SHL},
		{">>", SHR},
		{"&&", AND},
		{"||", OR},
		{"=>", FARROW},
		{"->", ARROW},
	}
	for _, c := range cases {
		l := New(c.src)
		tok := l.NextToken()
		if tok.Kind != c.kind {
			t.Fatalf("%q: expected %s, got %s", c.src, c.kind, tok.Kind)
		}
	}
}
