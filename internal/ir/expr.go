package ir

// ExprKind discriminates the lowered expression forms. Most are a direct
// translation of one ast.Expr variant; the rest (from StateAccess onward)
// are IR-only and exist precisely because the account model has no source
// equivalent — msg.sender, a mapping index, an interface cast, and so on.
type ExprKind int

const (
	EkLiteralInt ExprKind = iota
	EkLiteralString
	EkLiteralBytes
	EkLiteralBool
	EkLiteralAddress
	EkVar
	EkStateAccess
	EkFieldAccess
	EkMappingAccess
	EkMsgSender
	EkUnsupportedBuiltin // msg.value, msg.data, tx.gasprice: no target analogue
	EkBlockTimestamp
	EkClockSlot
	EkClockEpoch
	EkClockUnixTimestamp
	EkRentMinimumBalance
	EkRentIsExempt
	EkInterfaceCast
	EkCpiCall
	EkTokenTransfer
	EkTokenMint
	EkTokenBurn
	EkSolTransfer
	EkGetATA
	EkZeroAddress
	EkZeroBytes
	EkAssertCall // assert/assertEq/assertNe/assertGt/assertGe/assertLt/assertLe
	EkBinary
	EkUnary
	EkIndex
	EkTernary
	EkAssign // folds plain `=` and unfolded compound ops into target/value
	EkArray
	EkTuple
	EkCall   // ordinary call that didn't match any built-in pattern
	EkCast   // primitive(x) / intN(x) / uintN(x) / bytesN(x)
	EkNew
)

// Expr is the IR's tagged-union expression node. Only the fields relevant
// to Kind are populated; the rest stay zero.
type Expr struct {
	Kind ExprKind

	// Literal forms.
	IntText string
	Str     string
	Bool    bool

	// EkVar / EkStateAccess / EkFieldAccess (field name) / EkAssertCall
	// (macro name, reusing Name).
	Name string

	// EkFieldAccess receiver.
	Receiver *Expr

	// EkMappingAccess.
	MappingName string
	Keys        []*Expr
	AccountName string
	IsWrite     bool

	// EkRentMinimumBalance / EkRentIsExempt / EkGetATA / EkTokenTransfer /
	// EkTokenMint / EkTokenBurn / EkSolTransfer / EkCall / EkCast /
	// EkAssertCall.
	Args []*Expr

	// EkInterfaceCast / EkCpiCall.
	InterfaceName string
	ProgramIDExpr *Expr
	Method        string

	// EkCall generic fallback: Receiver nil ⇒ free/top-level call identified
	// by Name; Receiver set ⇒ a method call (Method holds the method name,
	// reusing the field above) on a struct/contract/array value.

	// EkBinary / EkAssign (compound-op already unfolded by the lowerer, so
	// Assign's Op is always "=").
	Op    string
	Left  *Expr
	Right *Expr

	// EkUnary.
	Operand *Expr
	Postfix bool

	// EkIndex.
	Base  *Expr
	Index *Expr

	// EkTernary.
	Cond *Expr
	Then *Expr
	Else *Expr

	// EkArray / EkTuple.
	Elems []*Expr

	// EkZeroBytes.
	Size uint64

	// EkCast target type name ("address", "uint128", "bytes32", ...) or
	// EkNew's type name.
	TypeName string
}
