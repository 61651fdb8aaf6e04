package parser

import (
	"testing"

	"github.com/cryptuon/solscript/internal/ast"
)

func TestParseCounterContract(t *testing.T) {
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
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(prog.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(prog.Items))
	}
	c, ok := prog.Items[0].(*ast.Contract)
	if !ok {
		t.Fatalf("expected *ast.Contract, got %T", prog.Items[0])
	}
	if c.Name.Name != "Counter" {
		t.Fatalf("expected contract name Counter, got %s", c.Name.Name)
	}
	if len(c.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(c.Members))
	}
}

func TestParseMappingStateVar(t *testing.T) {
	src := `
contract Bank {
    mapping(address => uint256) public balances;

    function deposit() public payable {
        balances[msg.sender] += msg.value;
    }
}
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	c := prog.Items[0].(*ast.Contract)
	sv := c.Members[0].(*ast.StateVar)
	mt, ok := sv.Type.(*ast.MappingType)
	if !ok {
		t.Fatalf("expected mapping type, got %T", sv.Type)
	}
	if mt.Key.Name() != "address" || mt.Value.Name() != "uint256" {
		t.Fatalf("unexpected mapping type %s", mt.Name())
	}
}

func TestParseInheritanceAndModifiers(t *testing.T) {
	src := `
abstract contract Ownable {
    address public owner;

    modifier onlyOwner() {
        require(msg.sender == owner, "not owner");
        _;
    }
}

contract Vault is Ownable {
    function withdraw(uint256 amount) public onlyOwner {
        return;
    }
}
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(prog.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(prog.Items))
	}
	vault := prog.Items[1].(*ast.Contract)
	if len(vault.Bases) != 1 || vault.Bases[0].Name != "Ownable" {
		t.Fatalf("expected Vault is Ownable, got %+v", vault.Bases)
	}
	fn := vault.Members[0].(*ast.FuncDecl)
	if len(fn.Modifiers) != 1 || fn.Modifiers[0].Name.Name != "onlyOwner" {
		t.Fatalf("expected onlyOwner modifier, got %+v", fn.Modifiers)
	}
}

func TestParseTernaryAndExponent(t *testing.T) {
	src := `
contract Math {
    function pick(bool b, uint256 a, uint256 n) public pure returns (uint256) {
        uint256 x = b ? a : n ** 2;
        return x;
    }
}
`
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_ = prog
}

func TestParseErrorOnBadToken(t *testing.T) {
	_, err := Parse(`contract { }`)
	if err == nil {
		t.Fatalf("expected parse error for missing contract name")
	}
}

func TestRoundTripPrettyPrint(t *testing.T) {
	src := `contract C {
    uint256 public x;
    function f() public returns (uint256) {
        if (x > 0) {
            return x;
        } else {
            return 0;
        }
    }
}
`
	prog1, err := Parse(src)
	if err != nil {
		t.Fatalf("first parse failed: %v", err)
	}
	printed := ast.Print(prog1)
	prog2, err := Parse(printed)
	if err != nil {
		t.Fatalf("second parse failed on pretty-printed source: %v\n---\n%s", err, printed)
	}
	printed2 := ast.Print(prog2)
	if printed != printed2 {
		t.Fatalf("pretty-printer is not idempotent:\n---1---\n%s\n---2---\n%s", printed, printed2)
	}
}
