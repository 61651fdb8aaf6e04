package codegen

import (
	"fmt"
	"strings"

	"github.com/cryptuon/solscript/internal/ir"
)

// genStateRs renders state.rs: enums, user structs, the main program-state
// account, and one {Mapping}Entry account per MappingDef.
func genStateRs(prog *ir.SolanaProgram) string {
	var sb strings.Builder
	sb.WriteString("use anchor_lang::prelude::*;\n\n")

	for _, e := range prog.Enums {
		writeEnum(&sb, e)
	}
	for _, s := range prog.Structs {
		writeStruct(&sb, s)
	}

	writeAccountStruct(&sb, prog.Name+"State", prog.State.Fields)

	for _, m := range prog.Mappings {
		writeAccountStruct(&sb, mappingEntryName(m.Name), []ir.FieldDef{
			{Name: "value", Type: m.Value},
		})
	}

	return sb.String()
}

func writeEnum(sb *strings.Builder, e *ir.EnumDef) {
	fmt.Fprintf(sb, "#[derive(AnchorSerialize, AnchorDeserialize, Clone, Copy, PartialEq, Eq, InitSpace)]\npub enum %s {\n", e.Name)
	for i, v := range e.Variants {
		if i == 0 {
			fmt.Fprintf(sb, "    #[default]\n")
		}
		fmt.Fprintf(sb, "    %s,\n", v)
	}
	sb.WriteString("}\n\n")
}

func writeStruct(sb *strings.Builder, s *ir.StructDef) {
	fmt.Fprintf(sb, "#[derive(AnchorSerialize, AnchorDeserialize, Clone, InitSpace)]\npub struct %s {\n", s.Name)
	for _, f := range s.Fields {
		fmt.Fprintf(sb, "    %spub %s: %s,\n", initSpaceAttr(f.Type), f.Name, rustType(f.Type))
	}
	sb.WriteString("}\n\n")
}

func writeAccountStruct(sb *strings.Builder, name string, fields []ir.FieldDef) {
	fmt.Fprintf(sb, "#[account]\n#[derive(InitSpace)]\npub struct %s {\n", name)
	for _, f := range fields {
		fmt.Fprintf(sb, "    %spub %s: %s,\n", initSpaceAttr(f.Type), f.Name, rustType(f.Type))
	}
	sb.WriteString("}\n\n")
}
