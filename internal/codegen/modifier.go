package codegen

import "github.com/cryptuon/solscript/internal/ir"

// inlineModifiers substitutes each of an instruction's modifier calls into
// its body: a modifier's own body stands in for the call, with its
// Placeholder statement(s) replaced by the (progressively wrapped) inner
// body. The first modifier in declaration order ends up outermost, each
// subsequent one nested inside it, and the instruction's original body sits
// innermost — "nest them in textual order" per the generator's modifier
// inlining rule.
func inlineModifiers(inst *ir.Instruction, defs map[string]*ir.ModifierDefinition) []ir.Stmt {
	body := inst.Body
	for i := len(inst.Modifiers) - 1; i >= 0; i-- {
		call := inst.Modifiers[i]
		def, ok := defs[call.Name]
		if !ok {
			continue
		}
		body = substituteModifier(def, call, body)
	}
	return body
}

// substituteModifier binds a modifier's declared parameters to the call's
// arguments (as local let bindings) and splices replacement in place of the
// modifier body's Placeholder statement(s), recursing into nested blocks so
// a `_;` inside an `if`/`while`/`for` is found too.
func substituteModifier(def *ir.ModifierDefinition, call ir.ModifierCallRef, replacement []ir.Stmt) []ir.Stmt {
	var out []ir.Stmt
	for i, p := range def.Params {
		if i >= len(call.Args) {
			break
		}
		out = append(out, ir.Stmt{Kind: ir.SkVarDecl, Name: p.Name, Type: p.Type, Init: call.Args[i]})
	}
	out = append(out, spliceBody(def.Body, replacement)...)
	return out
}

func spliceBody(body, replacement []ir.Stmt) []ir.Stmt {
	out := make([]ir.Stmt, 0, len(body))
	for _, s := range body {
		if s.Kind == ir.SkPlaceholder {
			out = append(out, replacement...)
			continue
		}
		out = append(out, spliceStmt(s, replacement))
	}
	return out
}

func spliceStmt(s ir.Stmt, replacement []ir.Stmt) ir.Stmt {
	switch s.Kind {
	case ir.SkIf:
		s.Then = spliceBody(s.Then, replacement)
		s.Else = spliceBody(s.Else, replacement)
	case ir.SkWhile, ir.SkFor, ir.SkBlock:
		s.Body = spliceBody(s.Body, replacement)
	}
	return s
}
