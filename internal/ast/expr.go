package ast

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// LiteralKind distinguishes literal forms that need different default-type
// handling in the checker.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	HexLiteral
	AddressLiteral
	StringLiteral
	HexStringLiteral
	BoolLiteral
)

// Literal is any constant value written in source.
type Literal struct {
	Kind  LiteralKind
	Text  string // original source text, for integers/addresses/hex
	Str   string // decoded value for string literals
	Bool  bool
	Span  Span
}

func (l *Literal) Pos() Span { return l.Span }
func (l *Literal) exprNode() {}

// IdentExpr is a bare name used as a value.
type IdentExpr struct {
	Name *Ident
	Span Span
}

func (i *IdentExpr) Pos() Span { return i.Span }
func (i *IdentExpr) exprNode() {}

// BinaryExpr is `lhs OP rhs`.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	Span  Span
}

func (b *BinaryExpr) Pos() Span { return b.Span }
func (b *BinaryExpr) exprNode() {}

// UnaryExpr is a prefix operator (`-x`, `!x`, `~x`, `++x`, `--x`) or, with
// Postfix set, a postfix `x++` / `x--`.
type UnaryExpr struct {
	Op      string
	Operand Expr
	Postfix bool
	Span    Span
}

func (u *UnaryExpr) Pos() Span { return u.Span }
func (u *UnaryExpr) exprNode() {}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Span   Span
}

func (c *CallExpr) Pos() Span { return c.Span }
func (c *CallExpr) exprNode() {}

// MethodCallExpr is `receiver.method(args...)`.
type MethodCallExpr struct {
	Receiver Expr
	Method   *Ident
	Args     []Expr
	Span     Span
}

func (m *MethodCallExpr) Pos() Span { return m.Span }
func (m *MethodCallExpr) exprNode() {}

// FieldAccessExpr is `receiver.field`.
type FieldAccessExpr struct {
	Receiver Expr
	Field    *Ident
	Span     Span
}

func (f *FieldAccessExpr) Pos() Span { return f.Span }
func (f *FieldAccessExpr) exprNode() {}

// IndexExpr is `base[index]`.
type IndexExpr struct {
	Base  Expr
	Index Expr
	Span  Span
}

func (i *IndexExpr) Pos() Span { return i.Span }
func (i *IndexExpr) exprNode() {}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Span Span
}

func (t *TernaryExpr) Pos() Span { return t.Span }
func (t *TernaryExpr) exprNode() {}

// AssignExpr is `lhs = rhs` or a compound form (`+=`, `-=`, ...).
type AssignExpr struct {
	Op    string // "=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>="
	Left  Expr
	Right Expr
	Span  Span
}

func (a *AssignExpr) Pos() Span { return a.Span }
func (a *AssignExpr) exprNode() {}

// ArrayExpr is an array literal `[a, b, c]`.
type ArrayExpr struct {
	Elements []Expr
	Span     Span
}

func (a *ArrayExpr) Pos() Span { return a.Span }
func (a *ArrayExpr) exprNode() {}

// TupleExpr is a tuple literal `(a, b)`.
type TupleExpr struct {
	Elements []Expr
	Span     Span
}

func (t *TupleExpr) Pos() Span { return t.Span }
func (t *TupleExpr) exprNode() {}

// ParenExpr is a parenthesized expression kept distinct so pretty-printing
// stays lossless.
type ParenExpr struct {
	Inner Expr
	Span  Span
}

func (p *ParenExpr) Pos() Span { return p.Span }
func (p *ParenExpr) exprNode() {}

// IfExpr is an expression-position `if` (rare; statement `if` is the common
// form, see Stmt).
type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Span Span
}

func (i *IfExpr) Pos() Span { return i.Span }
func (i *IfExpr) exprNode() {}

// NewExpr is `new TypeName(args...)`.
type NewExpr struct {
	Type TypeExpr
	Args []Expr
	Span Span
}

func (n *NewExpr) Pos() Span { return n.Span }
func (n *NewExpr) exprNode() {}
