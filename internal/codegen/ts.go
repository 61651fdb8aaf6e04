package codegen

import (
	"fmt"
	"strings"

	"github.com/cryptuon/solscript/internal/ir"
)

// genTsClient renders the TypeScript client: a class per program exposing a
// method per public instruction, building account-metas from the same
// rules the generated Accounts context uses.
func genTsClient(prog *ir.SolanaProgram) string {
	var sb strings.Builder
	sb.WriteString("import { PublicKey, SystemProgram, TransactionInstruction } from \"@solana/web3.js\";\n")
	sb.WriteString("import { Program, BN } from \"@coral-xyz/anchor\";\n")
	if usesAnyTokenProgram(prog) {
		sb.WriteString("import { TOKEN_PROGRAM_ID } from \"@solana/spl-token\";\n")
	}
	sb.WriteString("\n")

	mappingByName := map[string]*ir.MappingDef{}
	for _, m := range prog.Mappings {
		mappingByName[m.Name] = m
	}

	fmt.Fprintf(&sb, "export class %sClient {\n", prog.Name)
	sb.WriteString("  constructor(private program: Program, private statePda: PublicKey) {}\n\n")

	for _, inst := range prog.Instructions {
		if !inst.IsPublic {
			continue
		}
		writeTsMethod(&sb, inst, mappingByName)
	}
	sb.WriteString("}\n")
	return sb.String()
}

func writeTsMethod(sb *strings.Builder, inst *ir.Instruction, mappings map[string]*ir.MappingDef) {
	args := make([]string, 0, len(inst.Params))
	for _, p := range inst.Params {
		args = append(args, fmt.Sprintf("%s: %s", p.Name, tsType(p.Type)))
	}
	fmt.Fprintf(sb, "  async %s(%s): Promise<TransactionInstruction> {\n", inst.Name, strings.Join(args, ", "))

	sb.WriteString("    const accounts: Record<string, PublicKey> = {\n")
	sb.WriteString("      state: this.statePda,\n")
	sb.WriteString("      signer: this.program.provider.publicKey!,\n")
	for _, p := range inst.Params {
		if p.IsSigner {
			fmt.Fprintf(sb, "      %s: %s,\n", p.Name, p.Name)
		}
	}
	for _, acc := range inst.MappingAccesses {
		seeds := make([]string, 0, len(acc.Keys)+1)
		seeds = append(seeds, fmt.Sprintf("Buffer.from(%q)", acc.MappingName))
		for _, k := range acc.Keys {
			seeds = append(seeds, tsSeedFragment(k, mappings[acc.MappingName]))
		}
		fmt.Fprintf(sb, "      %s: PublicKey.findProgramAddressSync([%s], this.program.programId)[0],\n",
			acc.AccountName, strings.Join(seeds, ", "))
	}
	if needsSystemProgram(inst) {
		sb.WriteString("      systemProgram: SystemProgram.programId,\n")
	}
	if inst.UsesTokenProgram {
		sb.WriteString("      tokenProgram: TOKEN_PROGRAM_ID,\n")
	}
	sb.WriteString("    };\n")

	callArgs := make([]string, len(inst.Params))
	for i, p := range inst.Params {
		callArgs[i] = p.Name
	}
	fmt.Fprintf(sb, "    return this.program.methods.%s(%s).accounts(accounts).instruction();\n", inst.Name, strings.Join(callArgs, ", "))
	sb.WriteString("  }\n\n")
}

func tsSeedFragment(key *ir.Expr, m *ir.MappingDef) string {
	name := "key"
	if key.Kind == ir.EkVar {
		name = key.Name
	} else if key.Kind == ir.EkMsgSender {
		name = "this.program.provider.publicKey!"
	}
	if m != nil && m.Key != nil && m.Key.Kind == ir.STPubkey {
		return fmt.Sprintf("%s.toBuffer()", name)
	}
	width := 8
	if m != nil && m.Key != nil {
		switch m.Key.Kind {
		case ir.STU8, ir.STI8:
			width = 1
		case ir.STU16, ir.STI16:
			width = 2
		case ir.STU32, ir.STI32:
			width = 4
		case ir.STU128, ir.STI128:
			width = 16
		}
	}
	return fmt.Sprintf("new BN(%s).toArrayLike(Buffer, \"le\", %d)", name, width)
}
