// Package codegen renders a lowered *ir.SolanaProgram into the five Rust
// source files, an Anchor IDL document, a TypeScript client, and (when the
// program carries test functions) a Rust test scaffold.
package codegen

import (
	"fmt"

	"github.com/cryptuon/solscript/internal/ir"
)

// rustType renders a SolanaType as the Rust type Anchor expects in an
// account-state or instruction-arg position.
func rustType(t *ir.SolanaType) string {
	if t == nil {
		return "()"
	}
	switch t.Kind {
	case ir.STBool:
		return "bool"
	case ir.STPubkey:
		return "Pubkey"
	case ir.STString:
		return "String"
	case ir.STBytes:
		return "Vec<u8>"
	case ir.STU8:
		return "u8"
	case ir.STU16:
		return "u16"
	case ir.STU32:
		return "u32"
	case ir.STU64:
		return "u64"
	case ir.STU128:
		return "u128"
	case ir.STI8:
		return "i8"
	case ir.STI16:
		return "i16"
	case ir.STI32:
		return "i32"
	case ir.STI64:
		return "i64"
	case ir.STI128:
		return "i128"
	case ir.STByteArray:
		return fmt.Sprintf("[u8; %d]", t.Size)
	case ir.STArray:
		return fmt.Sprintf("[%s; %d]", rustType(t.Elem), t.Size)
	case ir.STVec:
		return fmt.Sprintf("Vec<%s>", rustType(t.Elem))
	case ir.STNamed:
		return t.Name
	default:
		return "()"
	}
}

// initSpaceAttr renders the #[max_len(...)] attribute a dynamic field needs
// for Anchor's #[derive(InitSpace)], composing outer+inner caps for a
// string or bytes element nested inside a Vec. Fixed-size fields get "".
func initSpaceAttr(t *ir.SolanaType) string {
	switch t.Kind {
	case ir.STString, ir.STBytes:
		return fmt.Sprintf("#[max_len(%d)]\n    ", t.MaxLen())
	case ir.STVec:
		if t.Elem != nil && (t.Elem.Kind == ir.STString || t.Elem.Kind == ir.STBytes) {
			return fmt.Sprintf("#[max_len(%d, %d)]\n    ", t.MaxLen(), t.Elem.MaxLen())
		}
		return fmt.Sprintf("#[max_len(%d)]\n    ", t.MaxLen())
	default:
		return ""
	}
}

// idlType renders a SolanaType as an Anchor IDL type value: either a bare
// string ("u64", "publicKey", ...) or a {"array":[elemType,N]} /
// {"vec":elemType}/{"defined":Name} object.
func idlType(t *ir.SolanaType) any {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case ir.STBool:
		return "bool"
	case ir.STPubkey:
		return "publicKey"
	case ir.STString:
		return "string"
	case ir.STBytes:
		return "bytes"
	case ir.STU8:
		return "u8"
	case ir.STU16:
		return "u16"
	case ir.STU32:
		return "u32"
	case ir.STU64:
		return "u64"
	case ir.STU128:
		return "u128"
	case ir.STI8:
		return "i8"
	case ir.STI16:
		return "i16"
	case ir.STI32:
		return "i32"
	case ir.STI64:
		return "i64"
	case ir.STI128:
		return "i128"
	case ir.STByteArray:
		return map[string]any{"array": []any{"u8", t.Size}}
	case ir.STArray:
		return map[string]any{"array": []any{idlType(t.Elem), t.Size}}
	case ir.STVec:
		return map[string]any{"vec": idlType(t.Elem)}
	case ir.STNamed:
		return map[string]any{"defined": t.Name}
	default:
		return "bytes"
	}
}

// tsType renders a SolanaType as a TypeScript type annotation for the
// generated client.
func tsType(t *ir.SolanaType) string {
	if t == nil {
		return "void"
	}
	switch t.Kind {
	case ir.STBool:
		return "boolean"
	case ir.STPubkey:
		return "PublicKey"
	case ir.STString:
		return "string"
	case ir.STBytes, ir.STByteArray:
		return "Buffer"
	case ir.STU8, ir.STU16, ir.STU32, ir.STI8, ir.STI16, ir.STI32:
		return "number"
	case ir.STU64, ir.STU128, ir.STI64, ir.STI128:
		return "BN"
	case ir.STArray, ir.STVec:
		return tsType(t.Elem) + "[]"
	case ir.STNamed:
		return t.Name
	default:
		return "unknown"
	}
}

// mappingEntryName is the Anchor account-struct name synthesized for one
// MappingDef, e.g. "balances" -> "BalancesEntry".
func mappingEntryName(mappingName string) string {
	return pascalCase(mappingName) + "Entry"
}

func pascalCase(s string) string {
	out := make([]rune, 0, len(s))
	upperNext := true
	for _, r := range s {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			out = append(out, toUpper(r))
			upperNext = false
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

func snakeCase(s string) string {
	var out []rune
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			out = append(out, r-('A'-'a'))
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}
