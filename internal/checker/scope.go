package checker

import "github.com/cryptuon/solscript/internal/types"

// ScopeKind distinguishes the four nesting levels the checker tracks.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeContract
	ScopeFunction
	ScopeBlock
)

// Scope is one entry in the checker's scope stack: a flat symbol table plus
// a parent pointer for lexical lookup.
type Scope struct {
	Kind    ScopeKind
	Symbols map[string]*types.Type
	Parent  *Scope
}

func newScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Symbols: map[string]*types.Type{}, Parent: parent}
}

// Define binds name to t in this scope, shadowing any outer binding.
func (s *Scope) Define(name string, t *types.Type) {
	s.Symbols[name] = t
}

// Lookup searches this scope and its ancestors for name.
func (s *Scope) Lookup(name string) (*types.Type, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if t, ok := sc.Symbols[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// LookupLocal searches only this scope, not its ancestors.
func (s *Scope) LookupLocal(name string) (*types.Type, bool) {
	t, ok := s.Symbols[name]
	return t, ok
}

// InFunction reports whether this scope or an ancestor is a function scope,
// i.e. whether a `return` is currently legal.
func (s *Scope) InFunction() bool {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.Kind == ScopeFunction {
			return true
		}
	}
	return false
}
