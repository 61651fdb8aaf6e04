package codegen

import (
	"encoding/json"

	"github.com/cryptuon/solscript/internal/ir"
)

type idlField struct {
	Name string `json:"name"`
	Type any    `json:"type"`
}

type idlArg struct {
	Name string `json:"name"`
	Type any    `json:"type"`
}

type idlAccountRef struct {
	Name     string `json:"name"`
	IsMut    bool   `json:"isMut"`
	IsSigner bool   `json:"isSigner"`
}

type idlInstruction struct {
	Name          string          `json:"name"`
	Discriminator []int           `json:"discriminator"`
	Accounts      []idlAccountRef `json:"accounts"`
	Args          []idlArg        `json:"args"`
	Returns       any             `json:"returns,omitempty"`
}

type idlAccountType struct {
	Kind   string     `json:"kind"`
	Fields []idlField `json:"fields"`
}

type idlAccount struct {
	Name          string         `json:"name"`
	Discriminator []int          `json:"discriminator"`
	Type          idlAccountType `json:"type"`
}

// discriminatorInts renders an 8-byte Anchor discriminator as the plain
// JSON integer array the IDL format expects (Anchor 0.30+'s explicit
// "discriminator" field, rather than leaving clients to recompute the hash
// themselves).
func discriminatorInts(d [8]byte) []int {
	out := make([]int, len(d))
	for i, b := range d {
		out[i] = int(b)
	}
	return out
}

type idlEnumVariant struct {
	Name string `json:"name"`
}

type idlTypeDef struct {
	Name string `json:"name"`
	Type struct {
		Kind     string           `json:"kind"`
		Fields   []idlField       `json:"fields,omitempty"`
		Variants []idlEnumVariant `json:"variants,omitempty"`
	} `json:"type"`
}

type idlEventField struct {
	Name  string `json:"name"`
	Type  any    `json:"type"`
	Index bool   `json:"index"`
}

type idlEvent struct {
	Name   string          `json:"name"`
	Fields []idlEventField `json:"fields"`
}

type idlErrorEntry struct {
	Code int    `json:"code"`
	Name string `json:"name"`
	Msg  string `json:"msg"`
}

type idlMetadata struct {
	Address string `json:"address"`
}

type idlDocument struct {
	Version      string           `json:"version"`
	Name         string           `json:"name"`
	Instructions []idlInstruction `json:"instructions"`
	Accounts     []idlAccount     `json:"accounts"`
	Types        []idlTypeDef     `json:"types"`
	Events       []idlEvent       `json:"events"`
	Errors       []idlErrorEntry  `json:"errors"`
	Metadata     idlMetadata      `json:"metadata"`
}

// buildIDL assembles the Anchor-compatible IDL document for a lowered
// program, per spec: snake-cased name, ordered instructions with accounts
// and args, the state account plus every mapping Entry account, structs and
// enums as types, events with the propagated `indexed` -> `index` flag, and
// errors numbered from 6000.
func buildIDL(prog *ir.SolanaProgram) *idlDocument {
	doc := &idlDocument{
		Version: "0.1.0",
		Name:    snakeCase(prog.Name),
	}

	for _, inst := range prog.Instructions {
		if !inst.IsPublic {
			continue
		}
		doc.Instructions = append(doc.Instructions, buildIDLInstruction(inst))
	}

	stateName := prog.Name + "State"
	doc.Accounts = append(doc.Accounts, idlAccount{
		Name:          stateName,
		Discriminator: discriminatorInts(ir.AnchorAccountDiscriminator(stateName)),
		Type:          idlAccountType{Kind: "struct", Fields: fieldDefsToIDL(prog.State.Fields)},
	})
	for _, m := range prog.Mappings {
		entryName := mappingEntryName(m.Name)
		doc.Accounts = append(doc.Accounts, idlAccount{
			Name:          entryName,
			Discriminator: discriminatorInts(ir.AnchorAccountDiscriminator(entryName)),
			Type:          idlAccountType{Kind: "struct", Fields: []idlField{{Name: "value", Type: idlType(m.Value)}}},
		})
	}

	for _, s := range prog.Structs {
		td := idlTypeDef{Name: s.Name}
		td.Type.Kind = "struct"
		td.Type.Fields = fieldDefsToIDL(s.Fields)
		doc.Types = append(doc.Types, td)
	}
	for _, e := range prog.Enums {
		td := idlTypeDef{Name: e.Name}
		td.Type.Kind = "enum"
		for _, v := range e.Variants {
			td.Type.Variants = append(td.Type.Variants, idlEnumVariant{Name: v})
		}
		doc.Types = append(doc.Types, td)
	}

	for _, e := range prog.Events {
		ev := idlEvent{Name: e.Name}
		for _, p := range e.Params {
			ev.Fields = append(ev.Fields, idlEventField{Name: p.Name, Type: idlType(p.Type), Index: p.Indexed})
		}
		doc.Events = append(doc.Events, ev)
	}

	doc.Errors = append(doc.Errors, idlErrorEntry{Code: errorCode(prog, "RequireFailed"), Name: "RequireFailed", Msg: "require condition failed"})
	for _, e := range prog.Errors {
		doc.Errors = append(doc.Errors, idlErrorEntry{Code: errorCode(prog, e.Name), Name: e.Name, Msg: e.Name})
	}

	doc.Metadata = idlMetadata{Address: "11111111111111111111111111111111"}
	return doc
}

func fieldDefsToIDL(fields []ir.FieldDef) []idlField {
	out := make([]idlField, len(fields))
	for i, f := range fields {
		out[i] = idlField{Name: f.Name, Type: idlType(f.Type)}
	}
	return out
}

func buildIDLInstruction(inst *ir.Instruction) idlInstruction {
	idlInst := idlInstruction{
		Name:          inst.Name,
		Discriminator: discriminatorInts(ir.AnchorDiscriminator(inst.Name)),
	}

	stateIsMut := inst.Name == "initialize" || inst.ClosesState || !inst.IsView
	idlInst.Accounts = append(idlInst.Accounts, idlAccountRef{Name: "state", IsMut: stateIsMut})
	idlInst.Accounts = append(idlInst.Accounts, idlAccountRef{Name: "signer", IsMut: true, IsSigner: true})

	for _, p := range inst.Params {
		if p.IsSigner {
			idlInst.Accounts = append(idlInst.Accounts, idlAccountRef{Name: p.Name, IsSigner: true})
		}
	}
	for _, acc := range inst.MappingAccesses {
		idlInst.Accounts = append(idlInst.Accounts, idlAccountRef{Name: acc.AccountName, IsMut: true})
	}
	if needsSystemProgram(inst) {
		idlInst.Accounts = append(idlInst.Accounts, idlAccountRef{Name: "system_program"})
	}
	if inst.UsesTokenProgram {
		idlInst.Accounts = append(idlInst.Accounts, idlAccountRef{Name: "token_program"})
	}

	for _, p := range inst.Params {
		idlInst.Args = append(idlInst.Args, idlArg{Name: p.Name, Type: idlType(p.Type)})
	}
	if inst.Ret != nil {
		idlInst.Returns = idlType(inst.Ret)
	}
	return idlInst
}

// renderIDL renders the document as pretty-printed JSON.
func renderIDL(prog *ir.SolanaProgram) (string, error) {
	doc := buildIDL(prog)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
