// Package errors: centralized diagnostic code definitions for SolScript.
// Codes follow a `phase::kind` taxonomy so the CLI and any downstream tooling
// can group and filter diagnostics without parsing the message text.
package errors

const (
	// ------------------------------------------------------------------
	// Parser
	// ------------------------------------------------------------------

	ParseUnexpectedToken = "parse::unexpected_token"
	ParseUnterminated    = "parse::unterminated"
	ParseInvalidLiteral  = "parse::invalid_literal"
	ParseExpectedType    = "parse::expected_type"

	// ------------------------------------------------------------------
	// Type checking
	// ------------------------------------------------------------------

	TypeMismatch          = "typeck::mismatch"
	TypeUndefinedVar      = "typeck::undefined_var"
	TypeUndefinedMethod   = "typeck::undefined_method"
	TypeWrongArgCount     = "typeck::wrong_arg_count"
	TypeUndefinedEvent    = "typeck::undefined_event"
	TypeUndefinedModifier = "typeck::undefined_modifier"
	TypeUndefinedError    = "typeck::undefined_error"
	TypeDuplicate         = "typeck::duplicate"
	TypeNotCallable       = "typeck::not_callable"
	TypeNotIndexable      = "typeck::not_indexable"
	TypeInvalidUnaryOp    = "typeck::invalid_unary_op"
	TypeInvalidBinaryOp   = "typeck::invalid_binary_op"
	TypeUndefinedType     = "typeck::undefined_type"
	TypeUndefinedField    = "typeck::undefined_field"

	// ------------------------------------------------------------------
	// IR lowering
	// ------------------------------------------------------------------

	LowerUnsupportedConstruct = "lower::unsupported_construct"
	LowerAmbiguousMapping     = "lower::ambiguous_mapping_access"
	LowerNoConstructor        = "lower::no_constructor"
	LowerInternal             = "lower::internal"

	// ------------------------------------------------------------------
	// Code generation
	// ------------------------------------------------------------------

	CodegenUnsupportedType  = "codegen::unsupported_type"
	CodegenWriteFailed      = "codegen::write_failed"
	CodegenTemplateFailure  = "codegen::template_failure"
)

// Info carries a code's owning phase and a human-readable label.
type Info struct {
	Code  string
	Phase string
	Label string
}

// Registry maps every known code to its Info.
var Registry = map[string]Info{
	ParseUnexpectedToken: {ParseUnexpectedToken, "parser", "unexpected token"},
	ParseUnterminated:    {ParseUnterminated, "parser", "unterminated literal"},
	ParseInvalidLiteral:  {ParseInvalidLiteral, "parser", "invalid literal"},
	ParseExpectedType:    {ParseExpectedType, "parser", "expected type expression"},

	TypeMismatch:          {TypeMismatch, "typecheck", "type mismatch"},
	TypeUndefinedVar:      {TypeUndefinedVar, "typecheck", "undefined variable"},
	TypeUndefinedMethod:   {TypeUndefinedMethod, "typecheck", "undefined method"},
	TypeWrongArgCount:     {TypeWrongArgCount, "typecheck", "wrong argument count"},
	TypeUndefinedEvent:    {TypeUndefinedEvent, "typecheck", "undefined event"},
	TypeUndefinedModifier: {TypeUndefinedModifier, "typecheck", "undefined modifier"},
	TypeUndefinedError:    {TypeUndefinedError, "typecheck", "undefined error"},
	TypeDuplicate:         {TypeDuplicate, "typecheck", "duplicate definition"},
	TypeNotCallable:       {TypeNotCallable, "typecheck", "not callable"},
	TypeNotIndexable:      {TypeNotIndexable, "typecheck", "not indexable"},
	TypeInvalidUnaryOp:    {TypeInvalidUnaryOp, "typecheck", "invalid unary operator"},
	TypeInvalidBinaryOp:   {TypeInvalidBinaryOp, "typecheck", "invalid binary operator"},
	TypeUndefinedType:     {TypeUndefinedType, "typecheck", "undefined type"},
	TypeUndefinedField:    {TypeUndefinedField, "typecheck", "undefined field"},

	LowerUnsupportedConstruct: {LowerUnsupportedConstruct, "lowering", "unsupported construct"},
	LowerAmbiguousMapping:     {LowerAmbiguousMapping, "lowering", "ambiguous mapping access"},
	LowerNoConstructor:        {LowerNoConstructor, "lowering", "missing constructor"},
	LowerInternal:             {LowerInternal, "lowering", "internal lowering error"},

	CodegenUnsupportedType: {CodegenUnsupportedType, "codegen", "unsupported type for target"},
	CodegenWriteFailed:     {CodegenWriteFailed, "codegen", "failed writing generated output"},
	CodegenTemplateFailure: {CodegenTemplateFailure, "codegen", "template rendering failure"},
}

// Lookup returns the Info for a code, if known.
func Lookup(code string) (Info, bool) {
	info, ok := Registry[code]
	return info, ok
}

// IsParserCode reports whether code belongs to the parser phase.
func IsParserCode(code string) bool {
	info, ok := Lookup(code)
	return ok && info.Phase == "parser"
}

// IsTypeckCode reports whether code belongs to the typecheck phase.
func IsTypeckCode(code string) bool {
	info, ok := Lookup(code)
	return ok && info.Phase == "typecheck"
}
