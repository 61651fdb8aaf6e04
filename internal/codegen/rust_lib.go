package codegen

import (
	"fmt"
	"strings"

	"github.com/cryptuon/solscript/internal/ir"
)

// genLibRs renders lib.rs: module re-exports, declare_id!, free-function
// helpers for non-public instructions, and the #[program] module with one
// pub fn per public instruction.
func genLibRs(prog *ir.SolanaProgram, programID string) string {
	var sb strings.Builder
	sb.WriteString("use anchor_lang::prelude::*;\n\n")
	sb.WriteString("pub mod state;\npub mod instructions;\npub mod error;\npub mod events;\n")
	if len(prog.Tests) > 0 {
		sb.WriteString("#[cfg(test)]\nmod tests;\n")
	}
	sb.WriteString("\npub use state::*;\npub use instructions::*;\npub use error::*;\npub use events::*;\n\n")
	fmt.Fprintf(&sb, "declare_id!(%q);\n\n", programID)

	defs := map[string]*ir.ModifierDefinition{}
	for _, m := range prog.Modifiers {
		defs[m.Name] = m
	}

	renderer := &exprRenderer{mode: modeInstruction, eventNames: eventFieldIndex(prog)}

	for _, inst := range prog.Instructions {
		if inst.IsPublic {
			continue
		}
		writeHelperFunction(&sb, inst, defs, renderer)
	}

	fmt.Fprintf(&sb, "#[program]\npub mod %s {\n    use super::*;\n\n", snakeCase(prog.Name))
	for _, inst := range prog.Instructions {
		if !inst.IsPublic {
			continue
		}
		writeInstructionFn(&sb, inst, defs, renderer)
	}
	sb.WriteString("}\n")

	return sb.String()
}

func eventFieldIndex(prog *ir.SolanaProgram) map[string][]string {
	out := map[string][]string{}
	for _, e := range prog.Events {
		names := make([]string, len(e.Params))
		for i, p := range e.Params {
			names[i] = p.Name
		}
		out[e.Name] = names
	}
	return out
}

func writeHelperFunction(sb *strings.Builder, inst *ir.Instruction, defs map[string]*ir.ModifierDefinition, r *exprRenderer) {
	sig := make([]string, len(inst.Params))
	for i, p := range inst.Params {
		sig[i] = fmt.Sprintf("%s: %s", p.Name, rustType(p.Type))
	}
	ret := "()"
	if inst.Ret != nil {
		ret = rustType(inst.Ret)
	}
	fmt.Fprintf(sb, "fn %s(%s) -> Result<%s> {\n", inst.Name, strings.Join(sig, ", "), ret)
	body := inlineModifiers(inst, defs)
	sb.WriteString(r.stmts(body, 1))
	if inst.Ret == nil {
		sb.WriteString("    Ok(())\n")
	}
	sb.WriteString("}\n\n")
}

func writeInstructionFn(sb *strings.Builder, inst *ir.Instruction, defs map[string]*ir.ModifierDefinition, r *exprRenderer) {
	ctxName := pascalCase(inst.Name)
	sig := make([]string, 0, len(inst.Params)+1)
	sig = append(sig, fmt.Sprintf("ctx: Context<%s>", ctxName))
	for _, p := range inst.Params {
		sig = append(sig, fmt.Sprintf("%s: %s", p.Name, rustType(p.Type)))
	}
	ret := "()"
	if inst.Ret != nil {
		ret = rustType(inst.Ret)
	}
	fmt.Fprintf(sb, "    pub fn %s(%s) -> Result<%s> {\n", inst.Name, strings.Join(sig, ", "), ret)
	body := inlineModifiers(inst, defs)
	sb.WriteString(r.stmts(body, 2))
	if inst.Ret == nil && !endsWithReturn(body) {
		sb.WriteString("        Ok(())\n")
	}
	sb.WriteString("    }\n\n")
}

func endsWithReturn(body []ir.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	return body[len(body)-1].Kind == ir.SkReturn
}
