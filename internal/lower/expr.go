package lower

import (
	"github.com/cryptuon/solscript/internal/ast"
	solerr "github.com/cryptuon/solscript/internal/errors"
	"github.com/cryptuon/solscript/internal/ir"
)

var assertMacroNames = map[string]bool{
	"assert": true, "assertEq": true, "assertNe": true,
	"assertGt": true, "assertGe": true, "assertLt": true, "assertLe": true,
}

var rentMethods = map[string]bool{"minimumBalance": true, "isExempt": true}
var tokenMethods = map[string]bool{"transfer": true, "mint": true, "burn": true, "getATA": true}

func (c *ctx) lowerExpr(e ast.Expr) *ir.Expr {
	switch v := e.(type) {
	case *ast.Literal:
		return c.lowerLiteral(v)
	case *ast.ParenExpr:
		return c.lowerExpr(v.Inner)
	case *ast.IdentExpr:
		if _, ok := c.stateFields[v.Name.Name]; ok {
			return &ir.Expr{Kind: ir.EkStateAccess, Name: v.Name.Name}
		}
		return &ir.Expr{Kind: ir.EkVar, Name: v.Name.Name}
	case *ast.BinaryExpr:
		op := v.Op
		if op == "**" {
			// Design note: exponent has no direct target instruction;
			// lowered to multiplication as an explicit placeholder.
			op = "*"
		}
		return &ir.Expr{Kind: ir.EkBinary, Op: op, Left: c.lowerExpr(v.Left), Right: c.lowerExpr(v.Right)}
	case *ast.UnaryExpr:
		return &ir.Expr{Kind: ir.EkUnary, Op: v.Op, Operand: c.lowerExpr(v.Operand), Postfix: v.Postfix}
	case *ast.TernaryExpr:
		return &ir.Expr{Kind: ir.EkTernary, Cond: c.lowerExpr(v.Cond), Then: c.lowerExpr(v.Then), Else: c.lowerExpr(v.Else)}
	case *ast.IfExpr:
		return &ir.Expr{Kind: ir.EkTernary, Cond: c.lowerExpr(v.Cond), Then: c.lowerExpr(v.Then), Else: c.lowerExpr(v.Else)}
	case *ast.ArrayExpr:
		return &ir.Expr{Kind: ir.EkArray, Elems: c.lowerExprList(v.Elements)}
	case *ast.TupleExpr:
		return &ir.Expr{Kind: ir.EkTuple, Elems: c.lowerExprList(v.Elements)}
	case *ast.NewExpr:
		return &ir.Expr{Kind: ir.EkNew, TypeName: v.Type.Name(), Args: c.lowerExprList(v.Args)}
	case *ast.IndexExpr:
		if ma, ok := c.tryLowerMappingChain(v, false); ok {
			return ma
		}
		return &ir.Expr{Kind: ir.EkIndex, Base: c.lowerExpr(v.Base), Index: c.lowerExpr(v.Index)}
	case *ast.FieldAccessExpr:
		return c.lowerFieldAccess(v)
	case *ast.CallExpr:
		return c.lowerCall(v)
	case *ast.MethodCallExpr:
		return c.lowerMethodCall(v)
	case *ast.AssignExpr:
		return c.lowerAssign(v)
	default:
		c.fail(solerr.LowerUnsupportedConstruct, "unsupported expression form %T", e)
		return &ir.Expr{Kind: ir.EkLiteralInt, IntText: "0"}
	}
}

func (c *ctx) lowerExprList(es []ast.Expr) []*ir.Expr {
	out := make([]*ir.Expr, len(es))
	for i, e := range es {
		out[i] = c.lowerExpr(e)
	}
	return out
}

func (c *ctx) lowerLiteral(v *ast.Literal) *ir.Expr {
	switch v.Kind {
	case ast.IntLiteral, ast.HexLiteral:
		return &ir.Expr{Kind: ir.EkLiteralInt, IntText: v.Text}
	case ast.StringLiteral:
		return &ir.Expr{Kind: ir.EkLiteralString, Str: v.Str}
	case ast.HexStringLiteral:
		return &ir.Expr{Kind: ir.EkLiteralBytes, Str: v.Text}
	case ast.AddressLiteral:
		return &ir.Expr{Kind: ir.EkLiteralAddress, Str: v.Text}
	case ast.BoolLiteral:
		return &ir.Expr{Kind: ir.EkLiteralBool, Bool: v.Bool}
	default:
		return &ir.Expr{Kind: ir.EkLiteralInt, IntText: "0"}
	}
}

// tryLowerMappingChain detects `m[k1][k2]...[kn]` where m resolves to a
// known mapping name, walking from the outermost IndexExpr down to the
// root identifier and collecting keys in source (left-to-right) order.
func (c *ctx) tryLowerMappingChain(e *ast.IndexExpr, isWrite bool) (*ir.Expr, bool) {
	root, astKeys, ok := collectMappingKeys(e)
	if !ok {
		return nil, false
	}
	if _, known := c.mappingNames[root.Name.Name]; !known {
		return nil, false
	}
	keys := make([]*ir.Expr, len(astKeys))
	for i, k := range astKeys {
		keys[i] = c.lowerExpr(k)
	}
	access := &ir.MappingAccess{
		MappingName: root.Name.Name,
		Keys:        keys,
		IsWrite:     isWrite,
		AccountName: c.collector.next(root.Name.Name),
	}
	c.mappingAccesses = append(c.mappingAccesses, access)
	return &ir.Expr{
		Kind:        ir.EkMappingAccess,
		MappingName: access.MappingName,
		Keys:        keys,
		AccountName: access.AccountName,
		IsWrite:     isWrite,
	}, true
}

func collectMappingKeys(e ast.Expr) (*ast.IdentExpr, []ast.Expr, bool) {
	switch v := e.(type) {
	case *ast.IndexExpr:
		root, keys, ok := collectMappingKeys(v.Base)
		if !ok {
			return nil, nil, false
		}
		return root, append(keys, v.Index), true
	case *ast.IdentExpr:
		return v, nil, true
	default:
		return nil, nil, false
	}
}

func (c *ctx) lowerFieldAccess(v *ast.FieldAccessExpr) *ir.Expr {
	if id, ok := v.Receiver.(*ast.IdentExpr); ok {
		if _, shadowed := c.stateFields[id.Name.Name]; !shadowed {
			switch id.Name.Name {
			case "msg":
				switch v.Field.Name {
				case "sender":
					return &ir.Expr{Kind: ir.EkMsgSender}
				case "value", "data":
					c.fail(solerr.LowerUnsupportedConstruct, "msg.%s has no Solana analogue; emitting a placeholder", v.Field.Name)
					return &ir.Expr{Kind: ir.EkUnsupportedBuiltin, Name: "msg." + v.Field.Name}
				}
			case "block":
				switch v.Field.Name {
				case "timestamp":
					return &ir.Expr{Kind: ir.EkBlockTimestamp}
				case "number":
					return &ir.Expr{Kind: ir.EkClockSlot}
				}
			case "tx":
				switch v.Field.Name {
				case "origin":
					return &ir.Expr{Kind: ir.EkMsgSender}
				case "gasprice":
					c.fail(solerr.LowerUnsupportedConstruct, "tx.gasprice has no Solana analogue; emitting a placeholder")
					return &ir.Expr{Kind: ir.EkUnsupportedBuiltin, Name: "tx.gasprice"}
				}
			case "clock":
				switch v.Field.Name {
				case "slot":
					return &ir.Expr{Kind: ir.EkClockSlot}
				case "epoch":
					return &ir.Expr{Kind: ir.EkClockEpoch}
				case "unix_timestamp", "timestamp":
					return &ir.Expr{Kind: ir.EkClockUnixTimestamp}
				}
			}
		}
	}

	recv := c.lowerExpr(v.Receiver)
	return &ir.Expr{Kind: ir.EkFieldAccess, Receiver: recv, Name: v.Field.Name}
}

func (c *ctx) lowerCall(v *ast.CallExpr) *ir.Expr {
	if id, ok := v.Callee.(*ast.IdentExpr); ok {
		if assertMacroNames[id.Name.Name] {
			return &ir.Expr{Kind: ir.EkAssertCall, Name: id.Name.Name, Args: c.lowerExprList(v.Args)}
		}
		if id.Name.Name == "transfer" && len(v.Args) == 2 {
			c.usesSolTransfer = true
			return &ir.Expr{Kind: ir.EkSolTransfer, Args: c.lowerExprList(v.Args)}
		}
		if isCastTarget(id.Name.Name) {
			if len(v.Args) == 1 {
				if lit, ok := v.Args[0].(*ast.Literal); ok && (lit.Kind == ast.IntLiteral || lit.Kind == ast.HexLiteral) && isZeroLiteral(lit) {
					if id.Name.Name == "address" {
						return &ir.Expr{Kind: ir.EkZeroAddress}
					}
					if n, ok := bytesNWidth(id.Name.Name); ok {
						return &ir.Expr{Kind: ir.EkZeroBytes, Size: n}
					}
				}
			}
			return &ir.Expr{Kind: ir.EkCast, TypeName: id.Name.Name, Args: c.lowerExprList(v.Args)}
		}
		if c.interfaceNames[id.Name.Name] && len(v.Args) == 1 {
			return &ir.Expr{Kind: ir.EkInterfaceCast, InterfaceName: id.Name.Name, ProgramIDExpr: c.lowerExpr(v.Args[0])}
		}
		return &ir.Expr{Kind: ir.EkCall, Name: id.Name.Name, Args: c.lowerExprList(v.Args)}
	}
	callee := c.lowerExpr(v.Callee)
	return &ir.Expr{Kind: ir.EkCall, Receiver: callee, Args: c.lowerExprList(v.Args)}
}

func (c *ctx) lowerMethodCall(v *ast.MethodCallExpr) *ir.Expr {
	if id, ok := v.Receiver.(*ast.IdentExpr); ok {
		if _, shadowed := c.stateFields[id.Name.Name]; !shadowed {
			switch id.Name.Name {
			case "rent":
				if rentMethods[v.Method.Name] {
					args := c.lowerExprList(v.Args)
					if v.Method.Name == "minimumBalance" {
						return &ir.Expr{Kind: ir.EkRentMinimumBalance, Args: args}
					}
					return &ir.Expr{Kind: ir.EkRentIsExempt, Args: args}
				}
			case "token":
				if tokenMethods[v.Method.Name] {
					args := c.lowerExprList(v.Args)
					switch v.Method.Name {
					case "transfer":
						c.usesTokenProgram = true
						return &ir.Expr{Kind: ir.EkTokenTransfer, Args: args}
					case "mint":
						c.usesTokenProgram = true
						return &ir.Expr{Kind: ir.EkTokenMint, Args: args}
					case "burn":
						c.usesTokenProgram = true
						return &ir.Expr{Kind: ir.EkTokenBurn, Args: args}
					case "getATA":
						return &ir.Expr{Kind: ir.EkGetATA, Args: args}
					}
				}
			}
		}
	}

	// Interface CPI: `IERC20(p).transfer(to, a)` — the receiver itself
	// lowers to an InterfaceCast.
	recv := c.lowerExpr(v.Receiver)
	if recv.Kind == ir.EkInterfaceCast {
		return &ir.Expr{
			Kind:          ir.EkCpiCall,
			InterfaceName: recv.InterfaceName,
			ProgramIDExpr: recv.ProgramIDExpr,
			Method:        v.Method.Name,
			Args:          c.lowerExprList(v.Args),
		}
	}

	return &ir.Expr{Kind: ir.EkCall, Receiver: recv, Method: v.Method.Name, Args: c.lowerExprList(v.Args)}
}

func (c *ctx) lowerAssign(v *ast.AssignExpr) *ir.Expr {
	if v.Op == "=" {
		left := c.lowerAssignTarget(v.Left, true)
		right := c.lowerExpr(v.Right)
		return &ir.Expr{Kind: ir.EkAssign, Op: "=", Left: left, Right: right}
	}
	// Compound-assignment unfolds to `target = target OP value`, reusing
	// one lowered target node for both the write and the embedded read so
	// a mapping target synthesizes exactly one account, not two.
	baseOp := v.Op[:len(v.Op)-1]
	target := c.lowerAssignTarget(v.Left, true)
	value := c.lowerExpr(v.Right)
	return &ir.Expr{
		Kind: ir.EkAssign,
		Op:   "=",
		Left: target,
		Right: &ir.Expr{
			Kind:  ir.EkBinary,
			Op:    baseOp,
			Left:  target,
			Right: value,
		},
	}
}

// lowerAssignTarget lowers an lvalue, routing mapping-index targets
// through the same mapping-access synthesis as reads (marked IsWrite).
func (c *ctx) lowerAssignTarget(e ast.Expr, isWrite bool) *ir.Expr {
	if idx, ok := e.(*ast.IndexExpr); ok {
		if ma, ok := c.tryLowerMappingChain(idx, isWrite); ok {
			return ma
		}
	}
	return c.lowerExpr(e)
}

func isCastTarget(name string) bool {
	switch name {
	case "address", "bytes", "bytes1", "bytes2", "bytes4", "bytes8", "bytes16", "bytes32",
		"uint8", "uint16", "uint24", "uint32", "uint64", "uint128", "uint256",
		"int8", "int16", "int24", "int32", "int64", "int128", "int256":
		return true
	}
	return false
}

func bytesNWidth(name string) (uint64, bool) {
	switch name {
	case "bytes1":
		return 1, true
	case "bytes2":
		return 2, true
	case "bytes4":
		return 4, true
	case "bytes8":
		return 8, true
	case "bytes16":
		return 16, true
	case "bytes32":
		return 32, true
	}
	return 0, false
}

func isZeroLiteral(lit *ast.Literal) bool {
	text := lit.Text
	for _, ch := range text {
		if ch != '0' && ch != 'x' && ch != 'X' {
			return false
		}
	}
	return true
}
