package codegen

import (
	"fmt"
	"strings"

	"github.com/cryptuon/solscript/internal/ir"
)

// genEventsRs renders events.rs: a Rust struct per Event. The source
// `indexed` flag has no Anchor equivalent at the event-struct level (it only
// affects the IDL's `index` boolean), so it's discarded here.
func genEventsRs(prog *ir.SolanaProgram) string {
	var sb strings.Builder
	sb.WriteString("use anchor_lang::prelude::*;\n\n")
	for _, e := range prog.Events {
		fmt.Fprintf(&sb, "#[event]\npub struct %s {\n", e.Name)
		for i, p := range e.Params {
			name := p.Name
			if name == "" {
				name = fmt.Sprintf("field%d", i)
			}
			fmt.Fprintf(&sb, "    pub %s: %s,\n", name, rustType(p.Type))
		}
		sb.WriteString("}\n\n")
	}
	return sb.String()
}
