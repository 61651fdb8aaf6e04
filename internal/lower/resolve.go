package lower

import (
	"github.com/cryptuon/solscript/internal/ast"
	"github.com/cryptuon/solscript/internal/types"
)

// resolveType re-derives a semantic Type from syntax, the same way the
// checker does. By the time a program reaches lowering it has already
// type-checked successfully, so unlike checker.resolveType this never
// needs to report a diagnostic for an unknown name — it falls back to
// types.Err, which solanaType renders as opaque bytes.
func resolveType(reg *types.Registry, te ast.TypeExpr) *types.Type {
	switch v := te.(type) {
	case *ast.TypePath:
		if v.IsSimple() {
			name := v.Last()
			if p, ok := types.LookupPrimitive(name); ok {
				return types.Prim(p)
			}
			if _, ok := reg.Structs[name]; ok {
				return types.Named(name)
			}
			if _, ok := reg.Enums[name]; ok {
				return types.Named(name)
			}
			if _, ok := reg.Contracts[name]; ok {
				return types.Named(name)
			}
			if _, ok := reg.Interfaces[name]; ok {
				return types.Named(name)
			}
			return types.Err
		}
		args := make([]*types.Type, len(v.GenericArgs))
		for i, a := range v.GenericArgs {
			args[i] = resolveType(reg, a)
		}
		return types.Named(v.Name(), args...)
	case *ast.MappingType:
		return types.MappingOf(resolveType(reg, v.Key), resolveType(reg, v.Value))
	case *ast.ArrayType:
		elem := resolveType(reg, v.Element)
		for _, sz := range v.Sizes {
			if sz == nil {
				elem = types.DynamicArray(elem)
			} else {
				elem = types.Array(elem, *sz)
			}
		}
		return elem
	case *ast.TupleType:
		elems := make([]*types.Type, len(v.Elements))
		for i, e := range v.Elements {
			elems[i] = resolveType(reg, e)
		}
		return types.TupleOf(elems...)
	default:
		return types.Err
	}
}
