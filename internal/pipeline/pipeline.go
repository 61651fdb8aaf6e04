// Package pipeline exposes SolScript's stable core API: parse, typecheck,
// and generate, each a pure function over its predecessor's output. This is
// the "core" boundary referenced throughout the spec — callers (the CLI,
// tests, any future LSP) sit entirely outside it.
package pipeline

import (
	"github.com/cryptuon/solscript/internal/ast"
	"github.com/cryptuon/solscript/internal/checker"
	"github.com/cryptuon/solscript/internal/codegen"
	solerr "github.com/cryptuon/solscript/internal/errors"
	"github.com/cryptuon/solscript/internal/ir"
	"github.com/cryptuon/solscript/internal/lower"
	"github.com/cryptuon/solscript/internal/parser"
	"github.com/cryptuon/solscript/internal/projectcfg"
	"github.com/cryptuon/solscript/internal/types"
)

// Parse parses source text into a Program. Parse errors are reported as a
// *solerr.Report wrapped as an error (see solerr.WrapReport), carrying a
// message and a source span.
func Parse(source string) (*ast.Program, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// Typecheck checks a parsed Program, returning its type registry and any
// diagnostics. An empty diagnostics slice means the program is clean;
// Typecheck never short-circuits on the first error — see checker.Check.
func Typecheck(prog *ast.Program) (*types.Registry, []*solerr.Report) {
	return checker.Check(prog)
}

// Generate lowers a checked Program and renders the full Anchor workspace
// bundle. Generate assumes prog has already been type-checked cleanly;
// lowering may panic on structural assumptions (e.g. an undefined type) if
// called on a program with outstanding checker diagnostics, per the
// pipeline's error-accumulation policy.
func Generate(prog *ast.Program, reg *types.Registry, manifest *projectcfg.ProjectManifest) (*codegen.GeneratedProject, []*solerr.Report, error) {
	progs, diags := lower.Lower(prog, reg)
	gp, err := codegen.Generate(progs, manifest)
	if err != nil {
		return nil, diags, err
	}
	return gp, diags, nil
}

// Compile runs the full parse -> typecheck -> lower -> generate pipeline as
// a single atomic call, the shape most callers (the CLI, integration
// tests) actually want. It stops at the first phase that reports
// diagnostics, returning them without proceeding to the next phase.
func Compile(source string, manifest *projectcfg.ProjectManifest) (*codegen.GeneratedProject, []*solerr.Report, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, nil, err
	}
	reg, diags := Typecheck(prog)
	if len(diags) > 0 {
		return nil, diags, nil
	}
	progs, ldiags := lower.Lower(prog, reg)
	if len(ldiags) > 0 {
		return nil, ldiags, nil
	}
	gp, err := codegen.Generate(progs, manifest)
	if err != nil {
		return nil, nil, err
	}
	return gp, nil, nil
}

// LowerOnly exposes the IR stage directly, for callers (tests, tooling)
// that want the lowered programs without running codegen.
func LowerOnly(prog *ast.Program, reg *types.Registry) ([]*ir.SolanaProgram, []*solerr.Report) {
	return lower.Lower(prog, reg)
}
