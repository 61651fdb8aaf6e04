package ast

import (
	"fmt"
	"strings"
)

// Print renders a Program back to source text. It is not guaranteed to
// reproduce the original byte-for-byte, but it is idempotent: printing its
// own output a second time yields the same text (modulo whitespace), which
// is the round-trip property the pipeline relies on for `lower(parse(pretty(parse(S))))`.
func Print(p *Program) string {
	var b strings.Builder
	for _, item := range p.Items {
		printItem(&b, item, 0)
		b.WriteString("\n")
	}
	return b.String()
}

func indent(b *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		b.WriteString("    ")
	}
}

func printItem(b *strings.Builder, it Item, depth int) {
	switch v := it.(type) {
	case *ImportItem:
		b.WriteString("import { ")
		names := make([]string, len(v.Symbols))
		for i, s := range v.Symbols {
			names[i] = s.Name
		}
		b.WriteString(strings.Join(names, ", "))
		fmt.Fprintf(b, " } from \"%s\";\n", v.Path)
	case *Contract:
		if v.IsAbstract {
			b.WriteString("abstract ")
		}
		b.WriteString("contract ")
		b.WriteString(v.Name.Name)
		if len(v.Bases) > 0 {
			bases := make([]string, len(v.Bases))
			for i, base := range v.Bases {
				bases[i] = base.Name
			}
			b.WriteString(" is " + strings.Join(bases, ", "))
		}
		b.WriteString(" {\n")
		for _, m := range v.Members {
			printMember(b, m, depth+1)
		}
		b.WriteString("}\n")
	case *Interface:
		b.WriteString("interface " + v.Name.Name + " {\n")
		for _, fn := range v.Members {
			indent(b, depth+1)
			printFuncSig(b, fn)
			b.WriteString(";\n")
		}
		b.WriteString("}\n")
	case *StructDecl:
		b.WriteString("struct " + v.Name.Name + " {\n")
		for _, f := range v.Fields {
			indent(b, depth+1)
			fmt.Fprintf(b, "%s %s;\n", f.Type.Name(), f.Name.Name)
		}
		b.WriteString("}\n")
	case *EnumDecl:
		names := make([]string, len(v.Variants))
		for i, n := range v.Variants {
			names[i] = n.Name
		}
		fmt.Fprintf(b, "enum %s { %s }\n", v.Name.Name, strings.Join(names, ", "))
	case *EventDecl:
		b.WriteString("event " + v.Name.Name + "(")
		parts := make([]string, len(v.Params))
		for i, p := range v.Params {
			idx := ""
			if p.Indexed {
				idx = "indexed "
			}
			parts[i] = fmt.Sprintf("%s %s%s", p.Type.Name(), idx, p.Name.Name)
		}
		b.WriteString(strings.Join(parts, ", ") + ");\n")
	case *ErrorDecl:
		b.WriteString("error " + v.Name.Name + "(")
		b.WriteString(paramList(v.Params))
		b.WriteString(");\n")
	case *FuncDecl:
		printFuncSig(b, v)
		if v.Body == nil {
			b.WriteString(";\n")
		} else {
			b.WriteString(" ")
			printBlock(b, v.Body, depth)
		}
	}
}

func printMember(b *strings.Builder, m ContractMember, depth int) {
	indent(b, depth)
	switch v := m.(type) {
	case *StateVar:
		vis := v.Visibility.String()
		if vis != "" {
			vis += " "
		}
		fmt.Fprintf(b, "%s %s%s;\n", v.Type.Name(), vis, v.Name.Name)
	case *ModifierDecl:
		b.WriteString("modifier " + v.Name.Name + "(" + paramList(v.Params) + ") ")
		printBlock(b, v.Body, depth)
	case *FuncDecl:
		printFuncSig(b, v)
		if v.Body == nil {
			b.WriteString(";\n")
		} else {
			b.WriteString(" ")
			printBlock(b, v.Body, depth)
		}
	case *EventDecl, *ErrorDecl, *StructDecl, *EnumDecl:
		printItem(b, m.(Item), depth)
	}
}

func printFuncSig(b *strings.Builder, f *FuncDecl) {
	if f.IsConstructor {
		b.WriteString("constructor(")
	} else {
		b.WriteString("function " + f.Name.Name + "(")
	}
	b.WriteString(paramList(f.Params))
	b.WriteString(")")
	if vis := f.Visibility.String(); vis != "" {
		b.WriteString(" " + vis)
	}
	for _, m := range f.Mutability {
		switch m {
		case MutabilityView:
			b.WriteString(" view")
		case MutabilityPure:
			b.WriteString(" pure")
		case MutabilityPayable:
			b.WriteString(" payable")
		}
	}
	for _, mc := range f.Modifiers {
		b.WriteString(" " + mc.Name.Name)
		if len(mc.Args) > 0 {
			b.WriteString("(")
			parts := make([]string, len(mc.Args))
			for i, a := range mc.Args {
				parts[i] = printExpr(a)
			}
			b.WriteString(strings.Join(parts, ", ") + ")")
		}
	}
	if len(f.Returns) > 0 {
		b.WriteString(" returns (" + paramList(f.Returns) + ")")
	}
}

func paramList(params []*Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		name := ""
		if p.Name != nil {
			name = " " + p.Name.Name
		}
		parts[i] = p.Type.Name() + name
	}
	return strings.Join(parts, ", ")
}

func printBlock(b *strings.Builder, blk *Block, depth int) {
	b.WriteString("{\n")
	for _, s := range blk.Stmts {
		printStmt(b, s, depth+1)
	}
	indent(b, depth)
	b.WriteString("}\n")
}

func printStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch v := s.(type) {
	case *VarDeclStmt:
		b.WriteString(v.Type.Name() + " " + v.Name.Name)
		if v.Init != nil {
			b.WriteString(" = " + printExpr(v.Init))
		}
		b.WriteString(";\n")
	case *ExprStmt:
		b.WriteString(printExpr(v.X) + ";\n")
	case *IfStmt:
		printIfChain(b, v, depth)
	case *WhileStmt:
		b.WriteString("while (" + printExpr(v.Cond) + ") ")
		printBlock(b, v.Body, depth)
	case *ForStmt:
		b.WriteString("for (")
		if v.Init != nil {
			b.WriteString(strings.TrimSuffix(printStmtInline(v.Init), ";"))
		}
		b.WriteString("; ")
		if v.Cond != nil {
			b.WriteString(printExpr(v.Cond))
		}
		b.WriteString("; ")
		if v.Post != nil {
			b.WriteString(strings.TrimSuffix(printStmtInline(v.Post), ";"))
		}
		b.WriteString(") ")
		printBlock(b, v.Body, depth)
	case *ReturnStmt:
		if v.Value == nil {
			b.WriteString("return;\n")
		} else {
			b.WriteString("return " + printExpr(v.Value) + ";\n")
		}
	case *EmitStmt:
		b.WriteString("emit " + v.Event.Name + "(" + exprList(v.Args) + ");\n")
	case *RequireStmt:
		b.WriteString("require(" + printExpr(v.Cond))
		if v.Message != nil {
			b.WriteString(", " + printExpr(v.Message))
		}
		b.WriteString(");\n")
	case *RevertStmt:
		if v.Error != nil {
			b.WriteString("revert " + v.Error.Name + "(" + exprList(v.Args) + ");\n")
		} else {
			b.WriteString("revert(" + printExpr(v.Message) + ");\n")
		}
	case *DeleteStmt:
		b.WriteString("delete " + printExpr(v.Target) + ";\n")
	case *SelfdestructStmt:
		b.WriteString("selfdestruct(" + printExpr(v.Recipient) + ");\n")
	case *PlaceholderStmt:
		b.WriteString("_;\n")
	}
}

// printIfChain renders an if/else-if/.../else chain without re-indenting
// the "else" keyword onto its own line, matching common Solidity style.
func printIfChain(b *strings.Builder, v *IfStmt, depth int) {
	b.WriteString("if (" + printExpr(v.Cond) + ") ")
	printBlock(b, v.Then, depth)
	switch e := v.Else.(type) {
	case nil:
		return
	case *IfStmt:
		indent(b, depth)
		b.WriteString("else ")
		printIfChain(b, e, depth)
	case *Block:
		indent(b, depth)
		b.WriteString("else ")
		printBlock(b, e, depth)
	}
}

func printStmtInline(s Stmt) string {
	var b strings.Builder
	printStmt(&b, s, 0)
	return strings.TrimSpace(b.String())
}

func exprList(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = printExpr(e)
	}
	return strings.Join(parts, ", ")
}

func printExpr(e Expr) string {
	switch v := e.(type) {
	case *Literal:
		switch v.Kind {
		case StringLiteral:
			return fmt.Sprintf("%q", v.Str)
		case BoolLiteral:
			if v.Bool {
				return "true"
			}
			return "false"
		default:
			return v.Text
		}
	case *IdentExpr:
		return v.Name.Name
	case *BinaryExpr:
		return printExpr(v.Left) + " " + v.Op + " " + printExpr(v.Right)
	case *UnaryExpr:
		if v.Postfix {
			return printExpr(v.Operand) + v.Op
		}
		return v.Op + printExpr(v.Operand)
	case *CallExpr:
		return printExpr(v.Callee) + "(" + exprList(v.Args) + ")"
	case *MethodCallExpr:
		return printExpr(v.Receiver) + "." + v.Method.Name + "(" + exprList(v.Args) + ")"
	case *FieldAccessExpr:
		return printExpr(v.Receiver) + "." + v.Field.Name
	case *IndexExpr:
		return printExpr(v.Base) + "[" + printExpr(v.Index) + "]"
	case *TernaryExpr:
		return printExpr(v.Cond) + " ? " + printExpr(v.Then) + " : " + printExpr(v.Else)
	case *AssignExpr:
		return printExpr(v.Left) + " " + v.Op + " " + printExpr(v.Right)
	case *ArrayExpr:
		return "[" + exprList(v.Elements) + "]"
	case *TupleExpr:
		return "(" + exprList(v.Elements) + ")"
	case *ParenExpr:
		return "(" + printExpr(v.Inner) + ")"
	case *IfExpr:
		return "if (" + printExpr(v.Cond) + ") " + printExpr(v.Then) + " else " + printExpr(v.Else)
	case *NewExpr:
		return "new " + v.Type.Name() + "(" + exprList(v.Args) + ")"
	default:
		return ""
	}
}
