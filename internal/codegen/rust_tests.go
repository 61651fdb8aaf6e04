package codegen

import (
	"fmt"
	"strings"

	"github.com/cryptuon/solscript/internal/ir"
)

// genTestsRs renders the Rust test scaffold, only called when the program
// carries at least one test function. should_fail("msg") becomes
// #[should_panic(expected = "msg")]; an empty should_fail becomes a bare
// #[should_panic]. Bodies render in standalone (non-state) mode: there is
// no Anchor ctx here, so state/mapping accesses are bare local bindings.
func genTestsRs(prog *ir.SolanaProgram) string {
	var sb strings.Builder
	sb.WriteString("use super::*;\n\n")

	r := &exprRenderer{mode: modeStandalone, eventNames: eventFieldIndex(prog)}
	for _, tf := range prog.Tests {
		sb.WriteString("#[test]\n")
		if tf.ShouldFail {
			if tf.FailMessage != "" {
				fmt.Fprintf(&sb, "#[should_panic(expected = %q)]\n", tf.FailMessage)
			} else {
				sb.WriteString("#[should_panic]\n")
			}
		}
		fmt.Fprintf(&sb, "fn %s() {\n", tf.Name)
		sb.WriteString(r.stmts(tf.Body, 1))
		sb.WriteString("}\n\n")
	}
	return sb.String()
}
