// Package ir is SolScript's post-lowering intermediate representation: the
// Solana-shaped view of a program that the code generators consume. Unlike
// the AST, IR nodes carry no spans — by the time a program reaches here,
// diagnostics are the checker's job, and lowering itself assumes a
// successfully-checked program.
package ir

// SolanaTypeKind discriminates the variants of SolanaType.
type SolanaTypeKind int

const (
	STBool SolanaTypeKind = iota
	STPubkey
	STString
	STBytes
	STU8
	STU16
	STU32
	STU64
	STU128
	STI8
	STI16
	STI32
	STI64
	STI128
	STByteArray // bytesN, fixed
	STArray     // [T; N]
	STVec       // Vec<T>
	STNamed     // user struct/enum by name
)

// SolanaType is the target-native type assigned to every IR field, param,
// and return slot.
type SolanaType struct {
	Kind SolanaTypeKind
	Name string      // STNamed
	Elem *SolanaType // STArray / STVec
	Size uint64       // STArray / STByteArray element count
}

func Prim(k SolanaTypeKind) *SolanaType { return &SolanaType{Kind: k} }
func Named(name string) *SolanaType     { return &SolanaType{Kind: STNamed, Name: name} }
func ArrayOf(elem *SolanaType, size uint64) *SolanaType {
	return &SolanaType{Kind: STArray, Elem: elem, Size: size}
}
func VecOf(elem *SolanaType) *SolanaType { return &SolanaType{Kind: STVec, Elem: elem} }
func BytesN(n uint64) *SolanaType        { return &SolanaType{Kind: STByteArray, Size: n} }

// MaxLen is the heuristic Anchor InitSpace cap for a dynamic field: strings
// default to 200 bytes, byte vectors to 1000, and element vectors to 100
// entries (the cap applies to the outer Vec; an inner dynamic element gets
// its own cap too).
func (t *SolanaType) MaxLen() int {
	switch t.Kind {
	case STString:
		return 200
	case STBytes:
		return 1000
	case STVec:
		return 100
	default:
		return 0
	}
}

// FieldDef is one named, typed struct field or program-state field.
type FieldDef struct {
	Name string
	Type *SolanaType
}

// StructDef is a user struct, carried through lowering unchanged in shape.
type StructDef struct {
	Name   string
	Fields []FieldDef
}

// EnumDef is a user enum; the first variant is Anchor's implicit default.
type EnumDef struct {
	Name     string
	Variants []string
}

// EventParamDef is one event field, retaining the source `indexed` flag
// purely for IDL emission (Anchor itself has no topic-indexing concept).
type EventParamDef struct {
	Name    string
	Type    *SolanaType
	Indexed bool
}

// EventDef is a source event translated to a plain data-carrying struct.
type EventDef struct {
	Name   string
	Params []EventParamDef
}

// ProgramError is one user-declared custom error, numbered at codegen time
// starting from 6001 (6000 is reserved for the synthetic RequireFailed).
type ProgramError struct {
	Name   string
	Params []FieldDef
}

// ProgramState is the flattened, non-mapping state of one contract: the
// single on-chain account every instruction's Context threads through.
type ProgramState struct {
	Fields []FieldDef
}

// MappingDef is one source `mapping(K => V)` state variable, realized as a
// family of PDA-addressed Entry accounts rather than an inline field.
type MappingDef struct {
	Name  string
	Key   *SolanaType
	Value *SolanaType
}

// MappingAccess records one `m[k1][k2]...[kn]` access site resolved during
// lowering: its full key chain (outermost key first) and a synthesized,
// instruction-unique PDA account name.
type MappingAccess struct {
	MappingName string
	Keys        []*Expr
	IsWrite     bool
	ShouldClose bool
	AccountName string
}

// ModifierCallRef is one modifier invocation attached to an instruction,
// in declaration order (outermost-first at codegen inlining time).
type ModifierCallRef struct {
	Name string
	Args []*Expr
}

// ModifierDefinition keeps a modifier's parameters and body available for
// substitution-based inlining at codegen.
type ModifierDefinition struct {
	Name   string
	Params []FieldDef
	Body   []Stmt
}

// Param is one instruction parameter; IsSigner marks source `signer`-typed
// parameters that need their own Signer account in the generated context.
type Param struct {
	Name     string
	Type     *SolanaType
	IsSigner bool
}

// Instruction is one emitted Anchor instruction: either the synthesized
// `initialize` (from a constructor) or a lowered public/helper function.
type Instruction struct {
	Name             string
	Params           []Param
	Ret              *SolanaType // nil ⇒ no return value
	Body             []Stmt
	IsPublic         bool
	IsView           bool
	IsPayable        bool
	UsesTokenProgram bool
	UsesSolTransfer  bool
	Modifiers        []ModifierCallRef
	MappingAccesses  []*MappingAccess
	ClosesState      bool
}

// TestFunction is a `#[test]`-tagged free function extracted for the Rust
// test scaffold generator.
type TestFunction struct {
	Name        string
	ShouldFail  bool
	FailMessage string
	Body        []Stmt
}

// SolanaProgram is the complete lowered form of one non-abstract contract.
type SolanaProgram struct {
	Name         string
	State        ProgramState
	Mappings     []*MappingDef
	Instructions []*Instruction
	Events       []*EventDef
	Errors       []*ProgramError
	Structs      []*StructDef
	Enums        []*EnumDef
	Modifiers    []*ModifierDefinition
	Tests        []*TestFunction
}
