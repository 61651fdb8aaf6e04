package codegen

import (
	"fmt"
	"strings"

	"github.com/cryptuon/solscript/internal/ir"
)

// genInstructionsRs renders instructions.rs: one Anchor context struct per
// public instruction plus the instruction's handler body (inlined into
// lib.rs's program module separately — this file only holds the Accounts
// structs, matching Anchor's conventional file split).
func genInstructionsRs(prog *ir.SolanaProgram) string {
	var sb strings.Builder
	sb.WriteString("use anchor_lang::prelude::*;\n")
	if usesAnyTokenProgram(prog) {
		sb.WriteString("use anchor_spl::token::{self, Token, TokenAccount};\n")
	}
	sb.WriteString("use crate::state::*;\n\n")

	mappingByName := map[string]*ir.MappingDef{}
	for _, m := range prog.Mappings {
		mappingByName[m.Name] = m
	}

	for _, inst := range prog.Instructions {
		if !inst.IsPublic {
			continue
		}
		writeAccountsStruct(&sb, prog, inst, mappingByName)
	}
	return sb.String()
}

func usesAnyTokenProgram(prog *ir.SolanaProgram) bool {
	for _, inst := range prog.Instructions {
		if inst.UsesTokenProgram {
			return true
		}
	}
	return false
}

func writeAccountsStruct(sb *strings.Builder, prog *ir.SolanaProgram, inst *ir.Instruction, mappings map[string]*ir.MappingDef) {
	ctxName := pascalCase(inst.Name)

	// #[instruction(...)] header, naming instruction params referenced by a
	// mapping-seed expression, in order of first use.
	instrParams := seedReferencedParams(inst)
	if len(instrParams) > 0 {
		parts := make([]string, len(instrParams))
		for i, p := range instrParams {
			parts[i] = fmt.Sprintf("%s: %s", p.Name, rustType(p.Type))
		}
		fmt.Fprintf(sb, "#[derive(Accounts)]\n#[instruction(%s)]\npub struct %s<'info> {\n", strings.Join(parts, ", "), ctxName)
	} else {
		fmt.Fprintf(sb, "#[derive(Accounts)]\npub struct %s<'info> {\n", ctxName)
	}

	// state account
	switch {
	case inst.Name == "initialize":
		fmt.Fprintf(sb, "    #[account(init, payer = signer, space = 8 + %sState::INIT_SPACE)]\n    pub state: Account<'info, %sState>,\n", prog.Name, prog.Name)
	case inst.IsView:
		fmt.Fprintf(sb, "    pub state: Account<'info, %sState>,\n", prog.Name)
	case inst.ClosesState:
		fmt.Fprintf(sb, "    #[account(mut, close = signer)]\n    pub state: Account<'info, %sState>,\n", prog.Name)
	default:
		fmt.Fprintf(sb, "    #[account(mut)]\n    pub state: Account<'info, %sState>,\n", prog.Name)
	}

	fmt.Fprintf(sb, "    #[account(mut)]\n    pub signer: Signer<'info>,\n")

	for _, p := range inst.Params {
		if p.IsSigner {
			fmt.Fprintf(sb, "    pub %s: Signer<'info>,\n", p.Name)
		}
	}

	for _, acc := range inst.MappingAccesses {
		writeEntryAccount(sb, acc, mappings[acc.MappingName])
	}

	if needsSystemProgram(inst) {
		sb.WriteString("    pub system_program: Program<'info, System>,\n")
	}
	if inst.UsesTokenProgram {
		sb.WriteString("    pub token_program: Program<'info, Token>,\n")
	}

	sb.WriteString("}\n\n")
}

func needsSystemProgram(inst *ir.Instruction) bool {
	if inst.Name == "initialize" || inst.IsPayable {
		return true
	}
	for _, acc := range inst.MappingAccesses {
		if acc.IsWrite {
			return true
		}
	}
	return false
}

func writeEntryAccount(sb *strings.Builder, acc *ir.MappingAccess, m *ir.MappingDef) {
	seeds := make([]string, 0, len(acc.Keys)+1)
	seeds = append(seeds, fmt.Sprintf("b%q", acc.MappingName))
	r := &exprRenderer{mode: modeInstruction}
	for _, k := range acc.Keys {
		seeds = append(seeds, seedFragment(r, k, m))
	}
	constraint := "mut, seeds = [" + strings.Join(seeds, ", ") + "], bump"
	if acc.IsWrite {
		entryType := "0"
		if m != nil {
			entryType = fmt.Sprintf("8 + %s::INIT_SPACE", mappingEntryName(m.Name))
		}
		constraint = fmt.Sprintf("init_if_needed, payer = signer, space = %s, seeds = [%s], bump", entryType, strings.Join(seeds, ", "))
	}
	entryName := mappingEntryName(acc.MappingName)
	if acc.ShouldClose {
		constraint += ", close = signer"
	}
	fmt.Fprintf(sb, "    #[account(%s)]\n    pub %s: Account<'info, %s>,\n", constraint, acc.AccountName, entryName)
}

// seedFragment renders one mapping-key expression as a PDA seed fragment.
// Pubkey-shaped keys seed on their raw bytes; everything else seeds on its
// little-endian byte representation.
func seedFragment(r *exprRenderer, key *ir.Expr, m *ir.MappingDef) string {
	expr := r.expr(key)
	if m != nil && m.Key != nil && m.Key.Kind == ir.STPubkey {
		return expr + ".as_ref()"
	}
	return expr + ".to_le_bytes().as_ref()"
}

// seedReferencedParams returns the instruction's own parameters that are
// referenced (by name) inside any mapping-seed key expression, in order of
// first use — these must be named in the Accounts struct's
// #[instruction(...)] header so Anchor can resolve the seeds before the
// accounts are deserialized.
func seedReferencedParams(inst *ir.Instruction) []ir.Param {
	byName := map[string]ir.Param{}
	for _, p := range inst.Params {
		byName[p.Name] = p
	}
	var out []ir.Param
	seen := map[string]bool{}
	var walk func(e *ir.Expr)
	walk = func(e *ir.Expr) {
		if e == nil {
			return
		}
		if e.Kind == ir.EkVar {
			if p, ok := byName[e.Name]; ok && !seen[e.Name] {
				seen[e.Name] = true
				out = append(out, p)
			}
		}
	}
	for _, acc := range inst.MappingAccesses {
		for _, k := range acc.Keys {
			walk(k)
		}
	}
	return out
}
