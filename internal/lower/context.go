package lower

import (
	"fmt"

	"github.com/cryptuon/solscript/internal/ast"
	solerr "github.com/cryptuon/solscript/internal/errors"
	"github.com/cryptuon/solscript/internal/ir"
	"github.com/cryptuon/solscript/internal/types"
)

// ctx is the lowering context threaded through one contract's translation:
// the sets the spec calls out ("Lowering context maintained during
// expression translation") plus the diagnostics sink and the per-function
// mapping-access collector, reset at the start of each instruction.
type ctx struct {
	reg            *types.Registry
	contracts      map[string]*ast.Contract
	contractName   string
	stateFields    map[string]*types.Type
	mappingNames   map[string]*types.Type // mapping var name -> its Mapping(K,V) type
	interfaceNames map[string]bool
	diags          []*solerr.Report

	// reset per instruction:
	collector        *mappingAccessCollector
	usesTokenProgram bool
	usesSolTransfer  bool
	mappingAccesses  []*ir.MappingAccess
}

func (c *ctx) fail(code, format string, args ...any) {
	c.diags = append(c.diags, &solerr.Report{
		Schema:  "solscript.error/v1",
		Code:    code,
		Phase:   "lower",
		Message: fmt.Sprintf(format, args...),
	})
}
