package checker

import "github.com/cryptuon/solscript/internal/types"

// namespaceKind marks a field access or call as resolving against one of the
// closed built-in sentinels instead of a user-defined value. The namespaces
// are never first-class: there is no Type variant for "msg" itself, only
// this dispatch table consulted by Call/MethodCall/FieldAccess typing.
var builtinNamespaces = map[string]bool{
	"msg": true, "block": true, "tx": true, "clock": true, "rent": true, "token": true,
}

// IsBuiltinNamespace reports whether name is one of the closed sentinel
// receivers (msg, block, tx, clock, rent, token).
func IsBuiltinNamespace(name string) bool {
	return builtinNamespaces[name]
}

// builtinMember is one resolvable (namespace, member) pair: its result type
// when read as a field, and — for members that are also callable — the
// parameter types expected.
type builtinMember struct {
	Result *Type
	Params []*Type // nil for field-only members
}

// The built-in member table, with its Type and Params slices, is built by
// builtinTable, which constructs a fresh map on every call.
type Type = types.Type

func builtinTable() map[string]map[string]builtinMember {
	addr := types.Prim(types.PAddress)
	u256 := types.Prim(types.PUint256)
	u64 := types.Prim(types.PUint64)
	i64 := types.Prim(types.PInt64)
	boolT := types.Prim(types.PBool)
	bytesT := types.Prim(types.PBytes)

	return map[string]map[string]builtinMember{
		"msg": {
			"sender": {Result: addr},
			"value":  {Result: u256},
			"data":   {Result: bytesT},
		},
		"block": {
			"timestamp": {Result: u256},
			"number":    {Result: u256},
		},
		"tx": {
			"origin":   {Result: addr},
			"gasprice": {Result: u256},
		},
		"clock": {
			"unix_timestamp": {Result: i64},
			"timestamp":      {Result: i64},
			"slot":           {Result: u64},
			"epoch":          {Result: u64},
		},
		"rent": {
			"minimumBalance": {Result: u64, Params: []*Type{u64}},
			"isExempt":       {Result: boolT, Params: []*Type{u64, u64}},
		},
		"token": {
			"transfer": {Result: types.Unit, Params: []*Type{addr, addr, addr, u64}},
			"mint":     {Result: types.Unit, Params: []*Type{addr, addr, addr, u64}},
			"burn":     {Result: types.Unit, Params: []*Type{addr, addr, addr, u64}},
			"getATA":   {Result: addr, Params: []*Type{addr, addr}},
		},
	}
}

// lookupBuiltinMember resolves namespace.member, returning its type info and
// whether it exists.
func lookupBuiltinMember(namespace, member string) (builtinMember, bool) {
	ns, ok := builtinTable()[namespace]
	if !ok {
		return builtinMember{}, false
	}
	m, ok := ns[member]
	return m, ok
}
