package checker

import (
	"strings"

	"github.com/cryptuon/solscript/internal/ast"
	"github.com/cryptuon/solscript/internal/types"
)

var arithOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}
var cmpOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true}
var eqOps = map[string]bool{"==": true, "!=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}
var bitwiseOps = map[string]bool{"&": true, "|": true, "^": true, "<<": true, ">>": true}

var assertMacros = map[string]bool{
	"assert": true, "assertEq": true, "assertNe": true,
	"assertGt": true, "assertGe": true, "assertLt": true, "assertLe": true,
}

// typeOf computes and returns the Type of e, reporting any diagnostics
// along the way. It never panics: unresolvable expressions type as
// types.Err so the caller can keep checking.
func (c *Checker) typeOf(e ast.Expr, scope *Scope, owner *types.ContractDef) *types.Type {
	switch v := e.(type) {
	case *ast.Literal:
		return c.typeOfLiteral(v)

	case *ast.IdentExpr:
		return c.typeOfIdent(v, scope)

	case *ast.ParenExpr:
		return c.typeOf(v.Inner, scope, owner)

	case *ast.BinaryExpr:
		return c.typeOfBinary(v, scope, owner)

	case *ast.UnaryExpr:
		return c.typeOfUnary(v, scope, owner)

	case *ast.CallExpr:
		return c.typeOfCall(v, scope, owner)

	case *ast.MethodCallExpr:
		return c.typeOfMethodCall(v, scope, owner)

	case *ast.FieldAccessExpr:
		return c.typeOfFieldAccess(v, scope, owner)

	case *ast.IndexExpr:
		return c.typeOfIndex(v, scope, owner)

	case *ast.AssignExpr:
		return c.typeOfAssign(v, scope, owner)

	case *ast.TernaryExpr:
		cond := c.typeOf(v.Cond, scope, owner)
		if !types.IsBool(cond) && cond.Kind != types.KError && cond.Kind != types.KVar {
			c.errorAt(v.Cond.Pos(), TypeMismatch, "ternary condition must be bool, found %s", cond)
		}
		then := c.typeOf(v.Then, scope, owner)
		els := c.typeOf(v.Else, scope, owner)
		if !types.Compat(then, els) {
			c.errorAt(v.Span, TypeMismatch, "ternary branches must be compatible: %s vs %s", then, els)
		}
		return then

	case *ast.ArrayExpr:
		if len(v.Elements) == 0 {
			return types.DynamicArray(types.Var("elem"))
		}
		elem := c.typeOf(v.Elements[0], scope, owner)
		for _, el := range v.Elements[1:] {
			c.typeOf(el, scope, owner)
		}
		return types.Array(elem, uint64(len(v.Elements)))

	case *ast.TupleExpr:
		elems := make([]*types.Type, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = c.typeOf(el, scope, owner)
		}
		return types.TupleOf(elems...)

	case *ast.NewExpr:
		for _, a := range v.Args {
			c.typeOf(a, scope, owner)
		}
		return c.resolveType(v.Type)

	case *ast.IfExpr:
		cond := c.typeOf(v.Cond, scope, owner)
		if !types.IsBool(cond) && cond.Kind != types.KError {
			c.errorAt(v.Cond.Pos(), TypeMismatch, "if-expression condition must be bool, found %s", cond)
		}
		then := c.typeOf(v.Then, scope, owner)
		c.typeOf(v.Else, scope, owner)
		return then

	default:
		return types.Err
	}
}

func (c *Checker) typeOfLiteral(v *ast.Literal) *types.Type {
	switch v.Kind {
	case ast.IntLiteral, ast.HexLiteral:
		return types.Prim(types.PUint256)
	case ast.StringLiteral:
		return types.Prim(types.PString)
	case ast.HexStringLiteral:
		return types.Prim(types.PBytes)
	case ast.AddressLiteral:
		return types.Prim(types.PAddress)
	case ast.BoolLiteral:
		return types.Prim(types.PBool)
	default:
		return types.Err
	}
}

func (c *Checker) typeOfIdent(v *ast.IdentExpr, scope *Scope) *types.Type {
	name := v.Name.Name
	if t, ok := scope.Lookup(name); ok {
		return t
	}
	if IsBuiltinNamespace(name) {
		return types.Named(name)
	}
	c.errorAt(v.Span, TypeUndefinedVar, "undefined variable %q", name)
	return types.Err
}

func (c *Checker) typeOfBinary(v *ast.BinaryExpr, scope *Scope, owner *types.ContractDef) *types.Type {
	lt := c.typeOf(v.Left, scope, owner)
	rt := c.typeOf(v.Right, scope, owner)
	if lt.Kind == types.KError || rt.Kind == types.KError {
		return types.Err
	}

	switch {
	case arithOps[v.Op]:
		if !types.IsInteger(lt) || !types.IsInteger(rt) || !types.Compat(lt, rt) {
			c.errorAt(v.Span, TypeInvalidBinaryOp, "operator %q requires two compatible integer operands, found %s and %s", v.Op, lt, rt)
			return types.Err
		}
		return lt
	case cmpOps[v.Op]:
		if !types.Compat(lt, rt) {
			c.errorAt(v.Span, TypeInvalidBinaryOp, "operator %q requires compatible operands, found %s and %s", v.Op, lt, rt)
		}
		return types.Prim(types.PBool)
	case eqOps[v.Op]:
		if !types.Compat(lt, rt) {
			c.errorAt(v.Span, TypeInvalidBinaryOp, "operator %q requires compatible operands, found %s and %s", v.Op, lt, rt)
		}
		return types.Prim(types.PBool)
	case logicalOps[v.Op]:
		if !types.IsBool(lt) || !types.IsBool(rt) {
			c.errorAt(v.Span, TypeInvalidBinaryOp, "operator %q requires bool operands, found %s and %s", v.Op, lt, rt)
		}
		return types.Prim(types.PBool)
	case bitwiseOps[v.Op]:
		if !types.IsInteger(lt) || !types.IsInteger(rt) {
			c.errorAt(v.Span, TypeInvalidBinaryOp, "operator %q requires integer operands, found %s and %s", v.Op, lt, rt)
			return types.Err
		}
		return lt
	default:
		c.errorAt(v.Span, TypeInvalidBinaryOp, "unknown operator %q", v.Op)
		return types.Err
	}
}

func (c *Checker) typeOfUnary(v *ast.UnaryExpr, scope *Scope, owner *types.ContractDef) *types.Type {
	ot := c.typeOf(v.Operand, scope, owner)
	switch v.Op {
	case "-", "~":
		if !types.IsInteger(ot) {
			c.errorAt(v.Span, TypeInvalidUnaryOp, "operator %q requires an integer operand, found %s", v.Op, ot)
			return types.Err
		}
		return ot
	case "!":
		if !types.IsBool(ot) {
			c.errorAt(v.Span, TypeInvalidUnaryOp, "operator %q requires a bool operand, found %s", v.Op, ot)
			return types.Err
		}
		return ot
	case "++", "--":
		if !types.IsInteger(ot) {
			c.errorAt(v.Span, TypeInvalidUnaryOp, "operator %q requires an integer lvalue, found %s", v.Op, ot)
			return types.Err
		}
		return ot
	default:
		return types.Err
	}
}

func (c *Checker) typeOfAssign(v *ast.AssignExpr, scope *Scope, owner *types.ContractDef) *types.Type {
	lt := c.typeOf(v.Left, scope, owner)
	rt := c.typeOf(v.Right, scope, owner)
	if v.Op == "=" {
		if !types.Compat(lt, rt) {
			c.errorAt(v.Span, TypeMismatch, "cannot assign %s to %s", rt, lt)
		}
		return lt
	}
	if strings.HasSuffix(v.Op, "=") && bitwiseOps[strings.TrimSuffix(v.Op, "=")] {
		if !types.IsInteger(lt) || !types.IsInteger(rt) {
			c.errorAt(v.Span, TypeInvalidBinaryOp, "compound operator %q requires integer operands", v.Op)
		}
		return lt
	}
	// Compound numeric ops: += -= *= /= %=
	if !types.IsInteger(lt) || !types.IsInteger(rt) || !types.Compat(lt, rt) {
		c.errorAt(v.Span, TypeInvalidBinaryOp, "compound operator %q requires compatible integer operands, found %s and %s", v.Op, lt, rt)
	}
	return lt
}

func (c *Checker) typeOfIndex(v *ast.IndexExpr, scope *Scope, owner *types.ContractDef) *types.Type {
	bt := c.typeOf(v.Base, scope, owner)
	it := c.typeOf(v.Index, scope, owner)
	switch bt.Kind {
	case types.KArray, types.KDynamicArray:
		if !types.IsInteger(it) {
			c.errorAt(v.Index.Pos(), TypeMismatch, "array index must be integer, found %s", it)
		}
		return bt.Elem
	case types.KMapping:
		if !types.Compat(bt.Key, it) {
			c.errorAt(v.Index.Pos(), TypeMismatch, "mapping key must be %s, found %s", bt.Key, it)
		}
		return bt.Value
	case types.KError:
		return types.Err
	default:
		c.errorAt(v.Span, TypeNotIndexable, "type %s is not indexable", bt)
		return types.Err
	}
}

func (c *Checker) typeOfCall(v *ast.CallExpr, scope *Scope, owner *types.ContractDef) *types.Type {
	// 1. Built-in test macros.
	if id, ok := v.Callee.(*ast.IdentExpr); ok && assertMacros[id.Name.Name] {
		return c.typeOfAssertMacro(id.Name.Name, v, scope, owner)
	}

	// 2. Built-in direct lamport transfer.
	if id, ok := v.Callee.(*ast.IdentExpr); ok && id.Name.Name == "transfer" {
		if len(v.Args) != 2 {
			c.errorAt(v.Span, TypeWrongArgCount, "transfer expects 2 arguments, got %d", len(v.Args))
			return types.Unit
		}
		at := c.typeOf(v.Args[0], scope, owner)
		amt := c.typeOf(v.Args[1], scope, owner)
		if !types.Compat(types.Prim(types.PAddress), at) {
			c.errorAt(v.Args[0].Pos(), TypeMismatch, "transfer recipient must be address, found %s", at)
		}
		if !types.IsInteger(amt) {
			c.errorAt(v.Args[1].Pos(), TypeMismatch, "transfer amount must be integer, found %s", amt)
		}
		return types.Unit
	}

	// 3. Type cast: primitive(x) or InterfaceName(x).
	if id, ok := v.Callee.(*ast.IdentExpr); ok {
		if p, ok := types.LookupPrimitive(id.Name.Name); ok {
			if len(v.Args) != 1 {
				c.errorAt(v.Span, TypeWrongArgCount, "cast %s(...) expects exactly 1 argument", id.Name.Name)
			} else {
				c.typeOf(v.Args[0], scope, owner)
			}
			return types.Prim(p)
		}
		if _, ok := c.reg.Interfaces[id.Name.Name]; ok {
			if len(v.Args) != 1 {
				c.errorAt(v.Span, TypeWrongArgCount, "interface cast %s(...) expects exactly 1 argument", id.Name.Name)
			} else {
				at := c.typeOf(v.Args[0], scope, owner)
				if !types.Compat(types.Prim(types.PAddress), at) {
					c.errorAt(v.Args[0].Pos(), TypeMismatch, "interface cast argument must be address, found %s", at)
				}
			}
			return types.Named(id.Name.Name)
		}
	}

	// 4. Ordinary call: callee must resolve to a Function type, or a
	// contract/free-function method name.
	if id, ok := v.Callee.(*ast.IdentExpr); ok {
		if owner != nil {
			if m, ok := owner.Methods[id.Name.Name]; ok {
				c.checkArgsAgainstMethod(v.Span, m, v.Args, scope, owner)
				return returnTypeOf(m)
			}
		}
	}
	ct := c.typeOf(v.Callee, scope, owner)
	if ct.Kind == types.KFunction {
		if len(v.Args) != len(ct.Params) {
			c.errorAt(v.Span, TypeWrongArgCount, "expected %d argument(s), got %d", len(ct.Params), len(v.Args))
		} else {
			for i, a := range v.Args {
				at := c.typeOf(a, scope, owner)
				if !types.Compat(ct.Params[i], at) {
					c.errorAt(a.Pos(), TypeMismatch, "argument %d: expected %s, found %s", i+1, ct.Params[i], at)
				}
			}
		}
		if ct.Ret != nil {
			return ct.Ret
		}
		return types.Unit
	}
	if ct.Kind != types.KError {
		c.errorAt(v.Span, TypeNotCallable, "expression of type %s is not callable", ct)
	}
	for _, a := range v.Args {
		c.typeOf(a, scope, owner)
	}
	return types.Err
}

func returnTypeOf(m *types.MethodDef) *types.Type {
	if len(m.Returns) == 0 {
		return types.Unit
	}
	if len(m.Returns) == 1 {
		return m.Returns[0]
	}
	return types.TupleOf(m.Returns...)
}

func (c *Checker) checkArgsAgainstMethod(span ast.Span, m *types.MethodDef, args []ast.Expr, scope *Scope, owner *types.ContractDef) {
	if len(args) != len(m.Params) {
		c.errorAt(span, TypeWrongArgCount, "%q expects %d argument(s), got %d", m.Name, len(m.Params), len(args))
		return
	}
	for i, a := range args {
		at := c.typeOf(a, scope, owner)
		if !types.Compat(m.Params[i].Type, at) {
			c.errorAt(a.Pos(), TypeMismatch, "argument %d of %q: expected %s, found %s", i+1, m.Name, m.Params[i].Type, at)
		}
	}
}

// typeOfFieldAccess handles `receiver.field`: builtin namespace members,
// struct fields, contract state variables, and the universal `.length` on
// arrays.
func (c *Checker) typeOfFieldAccess(v *ast.FieldAccessExpr, scope *Scope, owner *types.ContractDef) *types.Type {
	if id, ok := v.Receiver.(*ast.IdentExpr); ok && IsBuiltinNamespace(id.Name.Name) {
		if _, local := scope.Lookup(id.Name.Name); !local {
			m, ok := lookupBuiltinMember(id.Name.Name, v.Field.Name)
			if !ok {
				c.errorAt(v.Span, TypeUndefinedField, "undefined member %q on %q", v.Field.Name, id.Name.Name)
				return types.Err
			}
			if m.Params != nil {
				c.errorAt(v.Span, TypeNotCallable, "%s.%s is a function; call it", id.Name.Name, v.Field.Name)
			}
			return m.Result
		}
	}

	rt := c.typeOf(v.Receiver, scope, owner)
	if rt.Kind == types.KError {
		return types.Err
	}

	if (rt.Kind == types.KArray || rt.Kind == types.KDynamicArray) && v.Field.Name == "length" {
		return types.Prim(types.PUint256)
	}

	if rt.Kind == types.KNamed {
		if sd, ok := c.reg.Structs[rt.Name]; ok {
			for _, f := range sd.Fields {
				if f.Name == v.Field.Name {
					return f.Type
				}
			}
			c.errorAt(v.Span, TypeUndefinedField, "struct %q has no field %q", rt.Name, v.Field.Name)
			return types.Err
		}
		if cd, ok := c.reg.Contracts[rt.Name]; ok {
			flat := c.flattenContract(cd.Name)
			for _, sv := range flat.StateVars {
				if sv.Name == v.Field.Name {
					return sv.Type
				}
			}
			c.errorAt(v.Span, TypeUndefinedField, "contract %q has no state variable %q", rt.Name, v.Field.Name)
			return types.Err
		}
	}

	// Field access on the contract's own implicit receiver (`this`-less
	// state reference), e.g. plain state var access already resolves via
	// identifier lookup; this branch covers `owner.field` shaped accesses
	// where the receiver itself names the current contract.
	if owner != nil {
		for _, sv := range owner.StateVars {
			if sv.Name == v.Field.Name {
				return sv.Type
			}
		}
	}

	c.errorAt(v.Span, TypeUndefinedField, "type %s has no field %q", rt, v.Field.Name)
	return types.Err
}

// typeOfMethodCall handles `receiver.method(args...)`: builtin namespace
// calls, declared contract/interface methods (including inherited ones),
// and the two built-in dynamic-array methods push/pop.
func (c *Checker) typeOfMethodCall(v *ast.MethodCallExpr, scope *Scope, owner *types.ContractDef) *types.Type {
	if id, ok := v.Receiver.(*ast.IdentExpr); ok && IsBuiltinNamespace(id.Name.Name) {
		if _, local := scope.Lookup(id.Name.Name); !local {
			m, ok := lookupBuiltinMember(id.Name.Name, v.Method.Name)
			if !ok {
				c.errorAt(v.Span, TypeUndefinedMethod, "undefined method %q on %q", v.Method.Name, id.Name.Name)
				return types.Err
			}
			if len(v.Args) != len(m.Params) {
				c.errorAt(v.Span, TypeWrongArgCount, "%s.%s expects %d argument(s), got %d", id.Name.Name, v.Method.Name, len(m.Params), len(v.Args))
			} else {
				for i, a := range v.Args {
					at := c.typeOf(a, scope, owner)
					if !types.Compat(m.Params[i], at) {
						c.errorAt(a.Pos(), TypeMismatch, "argument %d of %s.%s: expected %s, found %s", i+1, id.Name.Name, v.Method.Name, m.Params[i], at)
					}
				}
			}
			return m.Result
		}
	}

	rt := c.typeOf(v.Receiver, scope, owner)
	if rt.Kind == types.KError {
		for _, a := range v.Args {
			c.typeOf(a, scope, owner)
		}
		return types.Err
	}

	if rt.Kind == types.KDynamicArray {
		switch v.Method.Name {
		case "push":
			if len(v.Args) != 1 {
				c.errorAt(v.Span, TypeWrongArgCount, "push expects 1 argument, got %d", len(v.Args))
			} else {
				at := c.typeOf(v.Args[0], scope, owner)
				if !types.Compat(rt.Elem, at) {
					c.errorAt(v.Args[0].Pos(), TypeMismatch, "push argument: expected %s, found %s", rt.Elem, at)
				}
			}
			return types.Unit
		case "pop":
			if len(v.Args) != 0 {
				c.errorAt(v.Span, TypeWrongArgCount, "pop expects no arguments, got %d", len(v.Args))
			}
			return rt.Elem
		}
	}

	if rt.Kind == types.KNamed {
		if cd, ok := c.reg.Contracts[rt.Name]; ok {
			flat := c.flattenContract(cd.Name)
			if m, ok := flat.Methods[v.Method.Name]; ok {
				c.checkArgsAgainstMethod(v.Span, m, v.Args, scope, owner)
				return returnTypeOf(m)
			}
			c.errorAt(v.Span, TypeUndefinedMethod, "contract %q has no method %q", rt.Name, v.Method.Name)
			for _, a := range v.Args {
				c.typeOf(a, scope, owner)
			}
			return types.Err
		}
		if idef, ok := c.reg.Interfaces[rt.Name]; ok {
			if m, ok := idef.Methods[v.Method.Name]; ok {
				c.checkArgsAgainstMethod(v.Span, m, v.Args, scope, owner)
				return returnTypeOf(m)
			}
			c.errorAt(v.Span, TypeUndefinedMethod, "interface %q has no method %q", rt.Name, v.Method.Name)
			for _, a := range v.Args {
				c.typeOf(a, scope, owner)
			}
			return types.Err
		}
	}

	c.errorAt(v.Span, TypeUndefinedMethod, "type %s has no method %q", rt, v.Method.Name)
	for _, a := range v.Args {
		c.typeOf(a, scope, owner)
	}
	return types.Err
}

func (c *Checker) typeOfAssertMacro(name string, v *ast.CallExpr, scope *Scope, owner *types.ContractDef) *types.Type {
	args := v.Args
	var trailingMsg ast.Expr
	if len(args) > 0 {
		if lit, ok := args[len(args)-1].(*ast.Literal); ok && lit.Kind == ast.StringLiteral {
			trailingMsg = args[len(args)-1]
			args = args[:len(args)-1]
		}
	}
	_ = trailingMsg

	switch name {
	case "assert":
		if len(args) != 1 {
			c.errorAt(v.Span, TypeWrongArgCount, "assert expects 1 argument, got %d", len(args))
			break
		}
		t := c.typeOf(args[0], scope, owner)
		if !types.IsBool(t) {
			c.errorAt(args[0].Pos(), TypeMismatch, "assert requires a bool operand, found %s", t)
		}
	case "assertEq", "assertNe":
		if len(args) != 2 {
			c.errorAt(v.Span, TypeWrongArgCount, "%s expects 2 arguments, got %d", name, len(args))
			break
		}
		a0 := c.typeOf(args[0], scope, owner)
		a1 := c.typeOf(args[1], scope, owner)
		if !types.Compat(a0, a1) {
			c.errorAt(v.Span, TypeMismatch, "%s requires compatible operands, found %s and %s", name, a0, a1)
		}
	case "assertGt", "assertGe", "assertLt", "assertLe":
		if len(args) != 2 {
			c.errorAt(v.Span, TypeWrongArgCount, "%s expects 2 arguments, got %d", name, len(args))
			break
		}
		a0 := c.typeOf(args[0], scope, owner)
		a1 := c.typeOf(args[1], scope, owner)
		if !types.IsInteger(a0) || !types.IsInteger(a1) {
			c.errorAt(v.Span, TypeMismatch, "%s requires integer operands, found %s and %s", name, a0, a1)
		}
	}
	return types.Unit
}
