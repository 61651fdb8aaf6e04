package codegen

import (
	"fmt"
	"strings"

	"github.com/cryptuon/solscript/internal/ir"
)

// renderMode controls whether state/mapping accesses render against an
// Anchor `ctx.accounts.*` context (instruction bodies) or as bare local
// bindings (the standalone test scaffold, which has no account context).
type renderMode int

const (
	modeInstruction renderMode = iota
	modeStandalone
)

type exprRenderer struct {
	mode       renderMode
	eventNames map[string][]string // event name -> ordered field names, for SkEmit rendering
}

func (r *exprRenderer) expr(e *ir.Expr) string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case ir.EkLiteralInt:
		return e.IntText
	case ir.EkLiteralString:
		return fmt.Sprintf("%q.to_string()", e.Str)
	case ir.EkLiteralBytes:
		return fmt.Sprintf("%q.as_bytes()", e.Str)
	case ir.EkLiteralBool:
		if e.Bool {
			return "true"
		}
		return "false"
	case ir.EkLiteralAddress:
		return fmt.Sprintf("Pubkey::from_str(%q).unwrap()", e.Str)
	case ir.EkVar:
		return e.Name
	case ir.EkStateAccess:
		if r.mode == modeStandalone {
			return e.Name
		}
		return "ctx.accounts.state." + e.Name
	case ir.EkFieldAccess:
		return r.expr(e.Receiver) + "." + e.Name
	case ir.EkMappingAccess:
		if r.mode == modeStandalone {
			return e.AccountName
		}
		return "ctx.accounts." + e.AccountName + ".value"
	case ir.EkMsgSender:
		if r.mode == modeStandalone {
			return "signer_key"
		}
		return "ctx.accounts.signer.key()"
	case ir.EkUnsupportedBuiltin:
		return "/* unsupported: no Solana analogue */ Default::default()"
	case ir.EkBlockTimestamp:
		return "Clock::get()?.unix_timestamp"
	case ir.EkClockSlot:
		return "Clock::get()?.slot"
	case ir.EkClockEpoch:
		return "Clock::get()?.epoch"
	case ir.EkClockUnixTimestamp:
		return "Clock::get()?.unix_timestamp"
	case ir.EkRentMinimumBalance:
		return fmt.Sprintf("Rent::get()?.minimum_balance(%s)", r.args(e.Args))
	case ir.EkRentIsExempt:
		return fmt.Sprintf("Rent::get()?.is_exempt(%s)", r.args(e.Args))
	case ir.EkInterfaceCast:
		return fmt.Sprintf("/* %s */ %s", e.InterfaceName, r.expr(e.ProgramIDExpr))
	case ir.EkCpiCall:
		return r.renderCpiCall(e)
	case ir.EkTokenTransfer:
		return fmt.Sprintf("token::transfer(%s)", r.args(e.Args))
	case ir.EkTokenMint:
		return fmt.Sprintf("token::mint_to(%s)", r.args(e.Args))
	case ir.EkTokenBurn:
		return fmt.Sprintf("token::burn(%s)", r.args(e.Args))
	case ir.EkSolTransfer:
		return fmt.Sprintf("anchor_lang::system_program::transfer(%s)", r.args(e.Args))
	case ir.EkGetATA:
		return fmt.Sprintf("get_associated_token_address(%s)", r.args(e.Args))
	case ir.EkZeroAddress:
		return "Pubkey::default()"
	case ir.EkZeroBytes:
		return fmt.Sprintf("[0u8; %d]", e.Size)
	case ir.EkAssertCall:
		return fmt.Sprintf("%s!(%s)", e.Name, r.args(e.Args))
	case ir.EkBinary:
		return fmt.Sprintf("(%s %s %s)", r.expr(e.Left), e.Op, r.expr(e.Right))
	case ir.EkUnary:
		if e.Postfix {
			return fmt.Sprintf("%s%s", r.expr(e.Operand), e.Op)
		}
		return fmt.Sprintf("%s%s", e.Op, r.expr(e.Operand))
	case ir.EkIndex:
		return fmt.Sprintf("%s[%s]", r.expr(e.Base), r.expr(e.Index))
	case ir.EkTernary:
		return fmt.Sprintf("(if %s { %s } else { %s })", r.expr(e.Cond), r.expr(e.Then), r.expr(e.Else))
	case ir.EkAssign:
		return fmt.Sprintf("%s = %s", r.expr(e.Left), r.expr(e.Right))
	case ir.EkArray:
		return fmt.Sprintf("vec![%s]", r.args(e.Elems))
	case ir.EkTuple:
		return fmt.Sprintf("(%s)", r.args(e.Elems))
	case ir.EkCall:
		if e.Receiver != nil {
			return fmt.Sprintf("%s.%s(%s)", r.expr(e.Receiver), e.Method, r.args(e.Args))
		}
		return fmt.Sprintf("%s(%s)", e.Name, r.args(e.Args))
	case ir.EkCast:
		return fmt.Sprintf("(%s as %s)", r.args(e.Args), e.TypeName)
	case ir.EkNew:
		return fmt.Sprintf("%s::new(%s)", e.TypeName, r.args(e.Args))
	default:
		return "/* unrecognized expression */"
	}
}

func (r *exprRenderer) args(es []*ir.Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = r.expr(e)
	}
	return strings.Join(parts, ", ")
}

func (r *exprRenderer) stmts(body []ir.Stmt, indent int) string {
	var sb strings.Builder
	for _, s := range body {
		r.stmt(&sb, s, indent)
	}
	return sb.String()
}

func pad(n int) string { return strings.Repeat("    ", n) }

func (r *exprRenderer) stmt(sb *strings.Builder, s ir.Stmt, indent int) {
	p := pad(indent)
	switch s.Kind {
	case ir.SkVarDecl:
		if s.Init != nil {
			fmt.Fprintf(sb, "%slet mut %s: %s = %s;\n", p, s.Name, rustType(s.Type), r.expr(s.Init))
		} else {
			fmt.Fprintf(sb, "%slet mut %s: %s = Default::default();\n", p, s.Name, rustType(s.Type))
		}
	case ir.SkExpr:
		fmt.Fprintf(sb, "%s%s;\n", p, r.expr(s.X))
	case ir.SkIf:
		fmt.Fprintf(sb, "%sif %s {\n", p, r.expr(s.Cond))
		sb.WriteString(r.stmts(s.Then, indent+1))
		if len(s.Else) > 0 {
			fmt.Fprintf(sb, "%s} else {\n", p)
			sb.WriteString(r.stmts(s.Else, indent+1))
		}
		fmt.Fprintf(sb, "%s}\n", p)
	case ir.SkBlock:
		fmt.Fprintf(sb, "%s{\n", p)
		sb.WriteString(r.stmts(s.Body, indent+1))
		fmt.Fprintf(sb, "%s}\n", p)
	case ir.SkWhile:
		fmt.Fprintf(sb, "%swhile %s {\n", p, r.expr(s.Cond))
		sb.WriteString(r.stmts(s.Body, indent+1))
		fmt.Fprintf(sb, "%s}\n", p)
	case ir.SkFor:
		var init, post string
		if s.ForInit != nil {
			init = strings.TrimSuffix(strings.TrimSpace(r.stmts([]ir.Stmt{*s.ForInit}, 0)), ";")
		}
		if s.ForPost != nil {
			post = strings.TrimSuffix(strings.TrimSpace(r.stmts([]ir.Stmt{*s.ForPost}, 0)), ";")
		}
		fmt.Fprintf(sb, "%s{ %s; while %s {\n", p, init, r.expr(s.Cond))
		sb.WriteString(r.stmts(s.Body, indent+1))
		fmt.Fprintf(sb, "%s%s; } }\n", pad(indent+1), post)
	case ir.SkReturn:
		if s.Value != nil {
			fmt.Fprintf(sb, "%sreturn Ok(%s);\n", p, r.expr(s.Value))
		} else {
			fmt.Fprintf(sb, "%sreturn Ok(());\n", p)
		}
	case ir.SkEmit:
		fmt.Fprintf(sb, "%semit!(%s { %s });\n", p, s.EventName, r.eventFields(s.EventName, s.Args))
	case ir.SkRequire:
		msg := "require failed"
		if s.Message != nil {
			msg = r.expr(s.Message)
		}
		fmt.Fprintf(sb, "%srequire!(%s, ErrorCode::RequireFailed /* %v */);\n", p, r.expr(s.Cond), msg)
	case ir.SkRevert:
		if s.ErrorName != "" {
			fmt.Fprintf(sb, "%sreturn Err(error!(ErrorCode::%s));\n", p, s.ErrorName)
		} else {
			fmt.Fprintf(sb, "%sreturn Err(error!(ErrorCode::RequireFailed));\n", p)
		}
	case ir.SkDelete:
		fmt.Fprintf(sb, "%s// delete %s: account closed via `close` constraint\n", p, r.expr(s.X))
	case ir.SkSelfdestruct:
		fmt.Fprintf(sb, "%s// selfdestruct(%s): state account closes, lamports to recipient\n", p, r.expr(s.X))
	case ir.SkPlaceholder:
		fmt.Fprintf(sb, "%s/* _ placeholder: substituted by caller during modifier inlining */\n", p)
	}
}

// renderCpiCall lowers an interface CPI call to a manual cross-program
// invocation: the callee is an arbitrary user-declared interface, not a
// crate with a generated `::cpi` module, so there's no typed client to call
// through. Instead this builds the wire-format `Instruction` by hand —
// Anchor's own discriminator (`sha256("global:<method>")[..8]`) followed by
// each argument Borsh-serialized in order — and invokes it with
// `invoke`, the same shape Anchor's docs show for calling into a
// non-Anchor-aware program.
func (r *exprRenderer) renderCpiCall(e *ir.Expr) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "{ // %s\n", ir.SoliditySelectorComment(e.Method))
	fmt.Fprintf(&sb, "    let mut data: Vec<u8> = vec![%s];\n", discriminatorByteList(ir.AnchorDiscriminator(e.Method)))
	for _, a := range e.Args {
		fmt.Fprintf(&sb, "    data.extend_from_slice(&%s.try_to_vec().unwrap());\n", r.expr(a))
	}
	fmt.Fprintf(&sb, "    anchor_lang::solana_program::program::invoke(\n")
	fmt.Fprintf(&sb, "        &anchor_lang::solana_program::instruction::Instruction {\n")
	fmt.Fprintf(&sb, "            program_id: %s,\n", r.expr(e.ProgramIDExpr))
	sb.WriteString("            accounts: vec![], // caller-supplied account metas for the callee\n")
	sb.WriteString("            data,\n")
	sb.WriteString("        },\n")
	sb.WriteString("        &[],\n")
	sb.WriteString("    )?\n")
	sb.WriteString("}")
	return sb.String()
}

func discriminatorByteList(d [8]byte) string {
	parts := make([]string, len(d))
	for i, b := range d {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return strings.Join(parts, ", ")
}

func (r *exprRenderer) eventFields(eventName string, args []*ir.Expr) string {
	// Event args are positional at the source level; Anchor events are
	// field-named structs, so each positional arg is paired with the
	// event's declared field name in order (falling back to fieldN if the
	// event definition wasn't registered with this renderer).
	names := r.eventNames[eventName]
	parts := make([]string, len(args))
	for i, a := range args {
		name := fmt.Sprintf("field%d", i)
		if i < len(names) {
			name = names[i]
		}
		parts[i] = fmt.Sprintf("%s: %s", name, r.expr(a))
	}
	return strings.Join(parts, ", ")
}
