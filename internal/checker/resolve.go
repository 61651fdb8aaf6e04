package checker

import (
	"github.com/cryptuon/solscript/internal/ast"
	"github.com/cryptuon/solscript/internal/types"
)

// resolveType converts a parsed ast.TypeExpr into a semantic types.Type,
// consulting the registry for named (struct/enum/contract/interface) types.
// Unknown names resolve to types.Err so the caller can keep checking the
// rest of the program instead of aborting (the checker never short-circuits
// on a single bad type).
func (c *Checker) resolveType(te ast.TypeExpr) *types.Type {
	switch v := te.(type) {
	case *ast.TypePath:
		if v.IsSimple() {
			name := v.Last()
			if p, ok := types.LookupPrimitive(name); ok {
				return types.Prim(p)
			}
			if _, ok := c.reg.Structs[name]; ok {
				return types.Named(name)
			}
			if _, ok := c.reg.Enums[name]; ok {
				return types.Named(name)
			}
			if _, ok := c.reg.Contracts[name]; ok {
				return types.Named(name)
			}
			if _, ok := c.reg.Interfaces[name]; ok {
				return types.Named(name)
			}
			c.errorAt(te.Pos(), TypeUndefinedType, "undefined type %q", name)
			return types.Err
		}
		args := make([]*types.Type, len(v.GenericArgs))
		for i, a := range v.GenericArgs {
			args[i] = c.resolveType(a)
		}
		return types.Named(v.Name(), args...)
	case *ast.MappingType:
		return types.MappingOf(c.resolveType(v.Key), c.resolveType(v.Value))
	case *ast.ArrayType:
		elem := c.resolveType(v.Element)
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
			elems[i] = c.resolveType(e)
		}
		return types.TupleOf(elems...)
	default:
		return types.Err
	}
}
