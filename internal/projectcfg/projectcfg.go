// Package projectcfg describes the generated Anchor workspace's manifest
// shape: the handful of facts the Rust generator and the TypeScript client
// both need (program name, cluster, declared id) that don't belong to any
// single generator.
package projectcfg

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Cluster is a named Solana RPC cluster, matching Anchor.toml's
// `[provider] cluster` values.
type Cluster string

const (
	ClusterLocalnet Cluster = "localnet"
	ClusterDevnet   Cluster = "devnet"
	ClusterTestnet  Cluster = "testnet"
	ClusterMainnet  Cluster = "mainnet"
)

// ProjectManifest is the minimal Anchor workspace description threaded
// through code generation: the Rust generator consumes ProgramID for
// `declare_id!(...)` and the Anchor.toml program entries; the TypeScript
// client takes its program ID from the Anchor Program instance instead of
// the manifest. It is peripheral to the core pipeline (the core never reads
// or writes a manifest file itself) but is a shared data shape, so it lives
// in its own package rather than under cmd/.
type ProjectManifest struct {
	ProgramName string  `yaml:"program_name"`
	Cluster     Cluster `yaml:"cluster"`
	ProgramID   string  `yaml:"program_id"`
	KeypairPath string  `yaml:"keypair_path,omitempty"`
}

// DefaultManifest returns a localnet manifest with a placeholder program
// ID, the shape GeneratedProject falls back to when the caller supplies
// none.
func DefaultManifest(programName string) *ProjectManifest {
	return &ProjectManifest{
		ProgramName: programName,
		Cluster:     ClusterLocalnet,
		ProgramID:   "11111111111111111111111111111111",
	}
}

// Marshal renders the manifest as YAML.
func (m *ProjectManifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Unmarshal populates m from YAML bytes.
func Unmarshal(data []byte) (*ProjectManifest, error) {
	var m ProjectManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("projectcfg: %w", err)
	}
	return &m, nil
}
