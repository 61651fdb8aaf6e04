package pipeline

import (
	"strings"
	"testing"

	"github.com/cryptuon/solscript/internal/projectcfg"
)

const counterSrc = `
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

func TestCompileCounterProducesLibRs(t *testing.T) {
	gp, diags, err := Compile(counterSrc, projectcfg.DefaultManifest("counter"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	lib, ok := gp.Files["programs/counter/src/lib.rs"]
	if !ok {
		t.Fatalf("expected lib.rs in generated files, got %v", gp.Files)
	}
	if !strings.Contains(lib, "pub fn increment(") {
		t.Fatalf("expected increment instruction, got:\n%s", lib)
	}
}

func TestCompileStopsAtTypeErrors(t *testing.T) {
	src := `
contract Broken {
    function f() public returns (uint256) {
        return "not a number";
    }
}
`
	gp, diags, err := Compile(src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gp != nil {
		t.Fatalf("expected no generated project when type-checking fails, got %v", gp)
	}
	if len(diags) == 0 {
		t.Fatal("expected type-check diagnostics for a string-to-uint256 return")
	}
}

func TestCompileRejectsSyntaxErrors(t *testing.T) {
	_, _, err := Compile("contract {{{", nil)
	if err == nil {
		t.Fatal("expected a parse error for malformed source")
	}
}
