package lower

import (
	"testing"

	"github.com/cryptuon/solscript/internal/checker"
	"github.com/cryptuon/solscript/internal/ir"
	"github.com/cryptuon/solscript/internal/parser"
	"github.com/google/go-cmp/cmp"
)

func mustLower(t *testing.T, src string) []*ir.SolanaProgram {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	reg, cdiags := checker.Check(prog)
	if len(cdiags) != 0 {
		t.Fatalf("unexpected check diagnostics: %v", cdiags)
	}
	progs, diags := Lower(prog, reg)
	if len(diags) != 0 {
		t.Fatalf("unexpected lower diagnostics: %v", diags)
	}
	return progs
}

func findInstruction(t *testing.T, p *ir.SolanaProgram, name string) *ir.Instruction {
	t.Helper()
	for _, inst := range p.Instructions {
		if inst.Name == name {
			return inst
		}
	}
	t.Fatalf("no instruction named %q in program %q", name, p.Name)
	return nil
}

func TestLowerCounterConstructorBecomesInitialize(t *testing.T) {
	src := `
contract Counter {
    uint256 public count;

    constructor() {
        count = 0;
    }

    function increment(uint256 by) public returns (uint256) {
        count += by;
        return count;
    }
}
`
	progs := mustLower(t, src)
	if len(progs) != 1 {
		t.Fatalf("expected one program, got %d", len(progs))
	}
	p := progs[0]
	if len(p.State.Fields) != 1 || p.State.Fields[0].Name != "count" {
		t.Fatalf("expected single state field %q, got %+v", "count", p.State.Fields)
	}

	init := findInstruction(t, p, "initialize")
	if !init.IsPublic {
		t.Fatalf("expected initialize to be public")
	}

	inc := findInstruction(t, p, "increment")
	if len(inc.Body) != 2 {
		t.Fatalf("expected 2 statements in increment body, got %d", len(inc.Body))
	}
	// count += by unfolds to count = count + by; verify the first statement
	// is an assignment whose target is the state variable count.
	assign := inc.Body[0]
	if assign.Kind != ir.SkExpr || assign.X.Kind != ir.EkAssign {
		t.Fatalf("expected first stmt to be an assign expr, got %+v", assign)
	}
	if assign.X.Left.Kind != ir.EkStateAccess || assign.X.Left.Name != "count" {
		t.Fatalf("expected assign target to be state var count, got %+v", assign.X.Left)
	}
}

func TestLowerMappingWriteSynthesizesEntryAccount(t *testing.T) {
	src := `
contract Token {
    mapping(address => uint256) public balances;

    function deposit(uint256 amount) public {
        balances[msg.sender] += amount;
    }
}
`
	progs := mustLower(t, src)
	p := progs[0]
	if len(p.Mappings) != 1 || p.Mappings[0].Name != "balances" {
		t.Fatalf("expected one mapping named balances, got %+v", p.Mappings)
	}

	dep := findInstruction(t, p, "deposit")
	if len(dep.MappingAccesses) != 1 {
		t.Fatalf("expected one mapping access, got %d", len(dep.MappingAccesses))
	}
	acc := dep.MappingAccesses[0]
	if acc.MappingName != "balances" {
		t.Fatalf("expected mapping access on balances, got %q", acc.MappingName)
	}
	if acc.AccountName != "balances_entry_0" {
		t.Fatalf("expected synthesized account name balances_entry_0, got %q", acc.AccountName)
	}
	if len(acc.Keys) != 1 || acc.Keys[0].Kind != ir.EkMsgSender {
		t.Fatalf("expected single msg.sender key, got %+v", acc.Keys)
	}
}

func TestLowerNestedMappingKeyOrder(t *testing.T) {
	src := `
contract Token {
    mapping(address => mapping(address => uint256)) public allowances;

    function approve(address s, uint256 value) public {
        allowances[msg.sender][s] = value;
    }
}
`
	progs := mustLower(t, src)
	p := progs[0]
	approve := findInstruction(t, p, "approve")
	if len(approve.MappingAccesses) != 1 {
		t.Fatalf("expected one mapping access, got %d", len(approve.MappingAccesses))
	}
	acc := approve.MappingAccesses[0]
	if len(acc.Keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(acc.Keys))
	}
	if acc.Keys[0].Kind != ir.EkMsgSender {
		t.Fatalf("expected first key to be msg.sender, got %+v", acc.Keys[0])
	}
	if acc.Keys[1].Kind != ir.EkVar || acc.Keys[1].Name != "s" {
		t.Fatalf("expected second key to be var s, got %+v", acc.Keys[1])
	}
}

func TestLowerInheritanceStateWinsEarliest(t *testing.T) {
	src := `
contract Base {
    uint256 public version;

    constructor() {
        version = 1;
    }
}

contract Derived is Base {
    uint256 public version;

    function bump() public {
        version += 1;
    }
}
`
	progs := mustLower(t, src)
	var derived *ir.SolanaProgram
	for _, p := range progs {
		if p.Name == "Derived" {
			derived = p
		}
	}
	if derived == nil {
		t.Fatalf("expected a Derived program")
	}
	count := 0
	for _, f := range derived.State.Fields {
		if f.Name == "version" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected version to be deduplicated to a single field, got %d", count)
	}
}

func TestLowerModifierChildWins(t *testing.T) {
	src := `
contract Base {
    modifier onlyOwner() {
        require(true, "base");
        _;
    }

    function noop() public onlyOwner {
    }
}

contract Derived is Base {
    modifier onlyOwner() {
        require(false, "derived");
        _;
    }
}
`
	progs := mustLower(t, src)
	var derived *ir.SolanaProgram
	for _, p := range progs {
		if p.Name == "Derived" {
			derived = p
		}
	}
	if derived == nil {
		t.Fatalf("expected a Derived program")
	}
	var md *ir.ModifierDefinition
	for _, m := range derived.Modifiers {
		if m.Name == "onlyOwner" {
			md = m
		}
	}
	if md == nil {
		t.Fatalf("expected onlyOwner modifier on Derived")
	}
	if len(md.Body) != 2 || md.Body[0].Kind != ir.SkRequire {
		t.Fatalf("expected require as first statement, got %+v", md.Body)
	}
	if md.Body[0].Message == nil || md.Body[0].Message.Str != "derived" {
		t.Fatalf("expected the derived contract's own modifier body to win, got %+v", md.Body[0].Message)
	}
}

func TestLowerSelfdestructClosesState(t *testing.T) {
	src := `
contract Vault {
    function close(address recipient) public {
        if (true) {
            selfdestruct(recipient);
        }
    }

    function noop() public {
    }
}
`
	progs := mustLower(t, src)
	p := progs[0]
	closeFn := findInstruction(t, p, "close")
	if !closeFn.ClosesState {
		t.Fatalf("expected close to close state")
	}
	noop := findInstruction(t, p, "noop")
	if noop.ClosesState {
		t.Fatalf("expected noop to not close state")
	}
}

func TestLowerAbstractContractProducesNoProgram(t *testing.T) {
	src := `
abstract contract Ownable {
    address public owner;

    function isOwner(address who) public view returns (bool) {
        return who == owner;
    }
}

contract Shop is Ownable {
    function buy() public {
    }
}
`
	progs := mustLower(t, src)
	if len(progs) != 1 {
		t.Fatalf("expected exactly one program for the concrete contract, got %d", len(progs))
	}
	if progs[0].Name != "Shop" {
		t.Fatalf("expected the concrete Shop program, got %q", progs[0].Name)
	}
}

func TestLowerDeleteMarksShouldClose(t *testing.T) {
	src := `
contract Registry {
    mapping(address => uint256) public entries;

    function remove(address who) public {
        delete entries[who];
    }
}
`
	progs := mustLower(t, src)
	p := progs[0]
	remove := findInstruction(t, p, "remove")
	if len(remove.MappingAccesses) != 1 {
		t.Fatalf("expected one mapping access, got %d", len(remove.MappingAccesses))
	}
	if !remove.MappingAccesses[0].ShouldClose {
		t.Fatalf("expected delete to mark ShouldClose")
	}
}

func TestLowerFunctionsPreserveDeclarationOrder(t *testing.T) {
	src := `
contract Ops {
    function first() public {
    }

    function second() public {
    }

    function third() public {
    }
}
`
	progs := mustLower(t, src)
	p := progs[0]
	var names []string
	for _, inst := range p.Instructions {
		names = append(names, inst.Name)
	}
	want := []string{"first", "second", "third"}
	if len(names) != len(want) {
		t.Fatalf("expected instructions %v, got %v", want, names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("expected instruction order %v, got %v", want, names)
		}
	}
}

func TestLowerModifiersPreserveDeclarationOrder(t *testing.T) {
	src := `
contract Guarded {
    modifier first() {
        _;
    }

    modifier second() {
        _;
    }

    function noop() public first second {
    }
}
`
	progs := mustLower(t, src)
	p := progs[0]
	var names []string
	for _, m := range p.Modifiers {
		names = append(names, m.Name)
	}
	want := []string{"first", "second"}
	if len(names) != len(want) {
		t.Fatalf("expected modifiers %v, got %v", want, names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("expected modifier order %v, got %v", want, names)
		}
	}
}

func TestLowerStateAndParamShapesStructuralDiff(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		wantState  []ir.FieldDef
		wantParams []ir.Param
	}{
		{
			name: "scalar state and mixed params",
			src: `
contract Escrow {
    uint256 public amount;
    address public beneficiary;

    function release(address to, uint64 fee, bool force) public {
    }
}
`,
			wantState: []ir.FieldDef{
				{Name: "amount", Type: ir.Prim(ir.STU128)},
				{Name: "beneficiary", Type: ir.Prim(ir.STPubkey)},
			},
			wantParams: []ir.Param{
				{Name: "to", Type: ir.Prim(ir.STPubkey)},
				{Name: "fee", Type: ir.Prim(ir.STU64)},
				{Name: "force", Type: ir.Prim(ir.STBool)},
			},
		},
		{
			name: "signer param carries IsSigner through lowering",
			src: `
contract Vault {
    bytes32 public seedTag;

    function withdraw(signer who, uint256 amount) public {
    }
}
`,
			wantState: []ir.FieldDef{
				{Name: "seedTag", Type: ir.BytesN(32)},
			},
			wantParams: []ir.Param{
				{Name: "who", Type: ir.Prim(ir.STPubkey), IsSigner: true},
				{Name: "amount", Type: ir.Prim(ir.STU128)},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			progs := mustLower(t, tc.src)
			p := progs[0]
			if diff := cmp.Diff(tc.wantState, p.State.Fields); diff != "" {
				t.Fatalf("state fields mismatch (-want +got):\n%s", diff)
			}
			var inst *ir.Instruction
			for _, i := range p.Instructions {
				if len(i.Params) > 0 {
					inst = i
				}
			}
			if inst == nil {
				t.Fatalf("expected an instruction with params")
			}
			if diff := cmp.Diff(tc.wantParams, inst.Params); diff != "" {
				t.Fatalf("instruction params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLowerTestFunctionExtracted(t *testing.T) {
	src := `
contract Counter {
    uint256 public count;

    function increment() public {
        count += 1;
    }

    #[test]
    #[should_fail("overflow")]
    function test_increment_overflow() {
        increment();
    }
}
`
	progs := mustLower(t, src)
	p := progs[0]
	if len(p.Tests) != 1 {
		t.Fatalf("expected one test function, got %d", len(p.Tests))
	}
	tf := p.Tests[0]
	if tf.Name != "test_increment_overflow" {
		t.Fatalf("unexpected test name %q", tf.Name)
	}
	if !tf.ShouldFail || tf.FailMessage != "overflow" {
		t.Fatalf("expected should_fail(\"overflow\"), got %v %q", tf.ShouldFail, tf.FailMessage)
	}
	for _, inst := range p.Instructions {
		if inst.Name == "test_increment_overflow" {
			t.Fatalf("test function must not also be emitted as an instruction")
		}
	}
}
