package types

import "testing"

func TestCompatReflexive(t *testing.T) {
	if !Compat(Prim(PBool), Prim(PBool)) {
		t.Fatal("bool should be compatible with itself")
	}
}

func TestCompatIntegerWidths(t *testing.T) {
	if !Compat(Prim(PUint8), Prim(PUint256)) {
		t.Fatal("any integer should be compatible with any other integer")
	}
	if !Compat(Prim(PInt64), Prim(PUint32)) {
		t.Fatal("signed/unsigned integers should be mutually compatible")
	}
}

func TestCompatAddressSigner(t *testing.T) {
	if !Compat(Prim(PAddress), Prim(PSigner)) {
		t.Fatal("address should accept signer")
	}
	if !Compat(Prim(PSigner), Prim(PAddress)) {
		t.Fatal("signer should accept address")
	}
}

func TestCompatErrorAndNever(t *testing.T) {
	if !Compat(Err, Prim(PBool)) || !Compat(Prim(PBool), Err) {
		t.Fatal("Error should unify with anything in both directions")
	}
	if !Compat(Prim(PUint256), Never) {
		t.Fatal("Never should be a subtype of everything")
	}
}

func TestCompatVar(t *testing.T) {
	if !Compat(Var("a"), Prim(PString)) || !Compat(Prim(PString), Var("a")) {
		t.Fatal("type variables should unify with anything")
	}
}

func TestCompatStructural(t *testing.T) {
	a := Array(Prim(PUint256), 4)
	b := Array(Prim(PUint8), 4)
	if !Compat(a, b) {
		t.Fatal("arrays of compatible element type and equal size should be compatible")
	}
	c := Array(Prim(PUint256), 5)
	if Compat(a, c) {
		t.Fatal("arrays of differing size should not be compatible")
	}

	m1 := MappingOf(Prim(PAddress), Prim(PUint256))
	m2 := MappingOf(Prim(PSigner), Prim(PUint8))
	if !Compat(m1, m2) {
		t.Fatal("mappings should compare structurally through key/value compat")
	}
}

func TestCompatNamedMismatch(t *testing.T) {
	if Compat(Named("Foo"), Named("Bar")) {
		t.Fatal("differently-named types should not be compatible")
	}
}

func TestLookupPrimitive(t *testing.T) {
	p, ok := LookupPrimitive("uint256")
	if !ok || p != PUint256 {
		t.Fatalf("expected uint256, got %v ok=%v", p, ok)
	}
	if _, ok := LookupPrimitive("notatype"); ok {
		t.Fatal("expected lookup miss")
	}
}
