package lower

import (
	"github.com/cryptuon/solscript/internal/ir"
	"github.com/cryptuon/solscript/internal/types"
)

// solanaType projects a checked source Type onto the IR's target-native
// SolanaType. Unrepresentable shapes (Tuple, Mapping outside state,
// Function, TypeVar) fall back to STBytes and are the caller's
// responsibility to diagnose via LowerUnsupportedConstruct.
func solanaType(t *types.Type) *ir.SolanaType {
	if t == nil {
		return ir.Prim(ir.STBytes)
	}
	switch t.Kind {
	case types.KPrimitive:
		return solanaPrimitive(t.Prim)
	case types.KNamed:
		return ir.Named(t.Name)
	case types.KArray:
		return ir.ArrayOf(solanaType(t.Elem), t.Size)
	case types.KDynamicArray:
		return ir.VecOf(solanaType(t.Elem))
	default:
		return ir.Prim(ir.STBytes)
	}
}

func solanaPrimitive(p types.Primitive) *ir.SolanaType {
	switch p {
	case types.PBool:
		return ir.Prim(ir.STBool)
	case types.PAddress, types.PSigner:
		return ir.Prim(ir.STPubkey)
	case types.PString:
		return ir.Prim(ir.STString)
	case types.PBytes:
		return ir.Prim(ir.STBytes)
	case types.PBytes1:
		return ir.BytesN(1)
	case types.PBytes2:
		return ir.BytesN(2)
	case types.PBytes4:
		return ir.BytesN(4)
	case types.PBytes8:
		return ir.BytesN(8)
	case types.PBytes16:
		return ir.BytesN(16)
	case types.PBytes32:
		return ir.BytesN(32)
	case types.PUint8:
		return ir.Prim(ir.STU8)
	case types.PUint16, types.PUint24:
		return ir.Prim(ir.STU16)
	case types.PUint32:
		return ir.Prim(ir.STU32)
	case types.PUint64:
		return ir.Prim(ir.STU64)
	case types.PUint128, types.PUint256:
		// uint256 has no native 128-bit-plus counterpart on the target;
		// collapsed to u128, a known lossy mapping (see DESIGN.md).
		return ir.Prim(ir.STU128)
	case types.PInt8:
		return ir.Prim(ir.STI8)
	case types.PInt16, types.PInt24:
		return ir.Prim(ir.STI16)
	case types.PInt32:
		return ir.Prim(ir.STI32)
	case types.PInt64:
		return ir.Prim(ir.STI64)
	case types.PInt128, types.PInt256:
		return ir.Prim(ir.STI128)
	default:
		return ir.Prim(ir.STBytes)
	}
}
