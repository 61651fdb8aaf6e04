// Package errors provides the structured diagnostic type shared by every
// compiler phase: parser, typechecker, lowerer, and code generators.
package errors

import (
	"encoding/json"
	"errors"

	"github.com/cryptuon/solscript/internal/ast"
)

// Fix is a suggested remediation attached to a Report. It is advisory only;
// nothing in the pipeline applies it automatically.
type Fix struct {
	Description string `json:"description"`
	Replacement string `json:"replacement,omitempty"`
}

// Report is the canonical structured diagnostic emitted by every compiler
// phase. All error builders return *Report, which is wrapped as a
// *ReportError so it survives errors.As() unwrapping.
type Report struct {
	Schema  string         `json:"schema"`         // always "solscript.error/v1"
	Code    string         `json:"code"`           // e.g. "typeck::mismatch"
	Phase   string         `json:"phase"`          // "parser", "typecheck", "lower", "codegen"
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// ReportError wraps a Report as an error so structured reports survive
// errors.As() unwrapping through ordinary Go error plumbing.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if one is present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error. Call sites return WrapReport(r) to
// preserve structure through ordinary error returns.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON renders a Report as JSON, optionally compact.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewGeneric wraps a plain Go error as a Report when no more specific code
// applies (e.g. an I/O failure while writing generated output to disk).
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  "solscript.error/v1",
		Code:    "internal",
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}
