package projectcfg

import "testing"

func TestDefaultManifestIsLocalnet(t *testing.T) {
	m := DefaultManifest("vault")
	if m.Cluster != ClusterLocalnet {
		t.Fatalf("expected localnet default, got %s", m.Cluster)
	}
	if m.ProgramName != "vault" {
		t.Fatalf("expected program name vault, got %s", m.ProgramName)
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	m := DefaultManifest("vault")
	m.Cluster = ClusterDevnet
	m.ProgramID = "Abc123"
	m.KeypairPath = "/keys/vault.json"

	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}
	if *got != *m {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, m)
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte("not: [valid yaml")); err == nil {
		t.Fatal("expected an error unmarshalling malformed yaml")
	}
}
