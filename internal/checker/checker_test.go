package checker

import (
	"testing"

	"github.com/cryptuon/solscript/internal/parser"
)

func mustCheck(t *testing.T, src string) []string {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	_, diags := Check(prog)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Code + ": " + d.Message
	}
	return msgs
}

func TestCheckCounterContractIsClean(t *testing.T) {
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
	msgs := mustCheck(t, src)
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", msgs)
	}
}

func TestCheckUndefinedVariable(t *testing.T) {
	src := `
contract Foo {
    function bad() public {
        uint256 x = missing;
    }
}
`
	msgs := mustCheck(t, src)
	if len(msgs) != 1 || msgs[0] != "typeck::undefined_var: undefined variable \"missing\"" {
		t.Fatalf("expected one undefined-var diagnostic, got %v", msgs)
	}
}

func TestCheckTypeMismatchOnAssignment(t *testing.T) {
	src := `
contract Foo {
    bool public flag;

    function setFlag() public {
        flag = 5;
    }
}
`
	msgs := mustCheck(t, src)
	found := false
	for _, m := range msgs {
		if m == "typeck::mismatch: cannot assign uint256 to bool" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a type mismatch diagnostic, got %v", msgs)
	}
}

func TestCheckMappingAccess(t *testing.T) {
	src := `
contract Bank {
    mapping(address => uint256) public balances;

    function deposit() public {
        balances[msg.sender] += msg.value;
    }
}
`
	msgs := mustCheck(t, src)
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", msgs)
	}
}

func TestCheckModifierArityMismatch(t *testing.T) {
	src := `
contract Owned {
    address public owner;

    modifier onlyOwner() {
        require(msg.sender == owner, "not owner");
        _;
    }

    function setOwner(address newOwner) public onlyOwner(1) {
        owner = newOwner;
    }
}
`
	msgs := mustCheck(t, src)
	found := false
	for _, m := range msgs {
		if m == "typeck::wrong_arg_count: modifier \"onlyOwner\" expects 0 argument(s), got 1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a modifier arity diagnostic, got %v", msgs)
	}
}

func TestCheckInheritedMethodResolution(t *testing.T) {
	src := `
abstract contract Base {
    address public owner;

    function identify() public returns (address) {
        return owner;
    }
}

contract Child is Base {
    function useBase() public returns (address) {
        return identify();
    }
}
`
	msgs := mustCheck(t, src)
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics from inherited-method call, got %v", msgs)
	}
}

func TestCheckUndefinedEvent(t *testing.T) {
	src := `
contract Foo {
    function bad() public {
        emit Missing(1);
    }
}
`
	msgs := mustCheck(t, src)
	found := false
	for _, m := range msgs {
		if m == "typeck::undefined_event: undefined event \"Missing\"" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an undefined-event diagnostic, got %v", msgs)
	}
}

func TestCheckArrayPushPop(t *testing.T) {
	src := `
contract Stack {
    uint256[] public items;

    function add(uint256 x) public {
        items.push(x);
    }

    function removeLast() public returns (uint256) {
        return items.pop();
    }
}
`
	msgs := mustCheck(t, src)
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", msgs)
	}
}

func TestCheckTernaryIncompatibleBranches(t *testing.T) {
	src := `
contract Foo {
    function pick(bool cond) public returns (uint256) {
        return cond ? 1 : "nope";
    }
}
`
	msgs := mustCheck(t, src)
	found := false
	for _, m := range msgs {
		if m == "typeck::mismatch: ternary branches must be compatible: uint256 vs string" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ternary mismatch diagnostic, got %v", msgs)
	}
}

func TestCheckAssertMacroArity(t *testing.T) {
	src := `
contract Foo {
    function bad() public {
        assertEq(1);
    }
}
`
	msgs := mustCheck(t, src)
	found := false
	for _, m := range msgs {
		if m == "typeck::wrong_arg_count: assertEq expects 2 arguments, got 1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an assertEq arity diagnostic, got %v", msgs)
	}
}

func TestCheckIndexOnNonIndexable(t *testing.T) {
	src := `
contract Foo {
    uint256 public x;

    function bad() public returns (uint256) {
        return x[0];
    }
}
`
	msgs := mustCheck(t, src)
	found := false
	for _, m := range msgs {
		if m == "typeck::not_indexable: type uint256 is not indexable" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a not-indexable diagnostic, got %v", msgs)
	}
}
