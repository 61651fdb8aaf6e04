package codegen

import (
	"fmt"
	"strings"

	"github.com/cryptuon/solscript/internal/ir"
)

// genErrorRs renders error.rs: an Anchor #[error_code] enum beginning with
// RequireFailed (6000), then each user error in declaration order (6001+).
func genErrorRs(prog *ir.SolanaProgram) string {
	var sb strings.Builder
	sb.WriteString("use anchor_lang::prelude::*;\n\n#[error_code]\npub enum ErrorCode {\n")
	sb.WriteString("    #[msg(\"require condition failed\")]\n    RequireFailed,\n")
	for _, e := range prog.Errors {
		msg := e.Name
		if len(e.Params) > 0 {
			names := make([]string, len(e.Params))
			for i, p := range e.Params {
				names[i] = p.Name
			}
			msg = fmt.Sprintf("%s(%s)", e.Name, strings.Join(names, ", "))
		}
		fmt.Fprintf(&sb, "    #[msg(\"%s\")]\n    %s,\n", msg, e.Name)
	}
	sb.WriteString("}\n")
	return sb.String()
}

// errorCode returns the IDL numeric error code for a declared error name,
// starting user errors at 6001 (6000 is reserved for RequireFailed).
func errorCode(prog *ir.SolanaProgram, name string) int {
	if name == "RequireFailed" {
		return 6000
	}
	for i, e := range prog.Errors {
		if e.Name == name {
			return 6001 + i
		}
	}
	return 6000
}
