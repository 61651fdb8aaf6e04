package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cryptuon/solscript/internal/ir"
	"github.com/cryptuon/solscript/internal/projectcfg"
)

// GeneratedProject is an in-memory bundle of named text artifacts: the
// output of Generate before anything touches a filesystem. WriteToDir is
// the only place this package performs I/O — the core stays pure per the
// single-threaded, side-effect-free pipeline design.
type GeneratedProject struct {
	Files    map[string]string // path relative to the output root -> file content
	Manifest *projectcfg.ProjectManifest
}

// Generate renders every lowered program into a complete Anchor workspace
// bundle: one programs/<name>/src/*.rs tree, IDL, TypeScript client, and
// Rust test scaffold per program, plus the shared workspace scaffolding
// files (Anchor.toml, Cargo.toml, package.json, README, .gitignore).
func Generate(progs []*ir.SolanaProgram, manifest *projectcfg.ProjectManifest) (*GeneratedProject, error) {
	if manifest == nil {
		name := "solscript_program"
		if len(progs) > 0 {
			name = snakeCase(progs[0].Name)
		}
		manifest = projectcfg.DefaultManifest(name)
	}

	gp := &GeneratedProject{Files: map[string]string{}, Manifest: manifest}

	var programDirs []string
	for _, prog := range progs {
		dir := snakeCase(prog.Name)
		programDirs = append(programDirs, dir)

		base := filepath.Join("programs", dir, "src")
		gp.Files[filepath.Join(base, "lib.rs")] = genLibRs(prog, manifest.ProgramID)
		gp.Files[filepath.Join(base, "state.rs")] = genStateRs(prog)
		gp.Files[filepath.Join(base, "instructions.rs")] = genInstructionsRs(prog)
		gp.Files[filepath.Join(base, "error.rs")] = genErrorRs(prog)
		gp.Files[filepath.Join(base, "events.rs")] = genEventsRs(prog)
		if len(prog.Tests) > 0 {
			gp.Files[filepath.Join(base, "tests.rs")] = genTestsRs(prog)
		}

		idlJSON, err := renderIDL(prog)
		if err != nil {
			return nil, fmt.Errorf("codegen: rendering IDL for %s: %w", prog.Name, err)
		}
		gp.Files[filepath.Join("target", "idl", dir+".json")] = idlJSON

		gp.Files[filepath.Join("app", dir+"_client.ts")] = genTsClient(prog)
		gp.Files[filepath.Join("tests", dir+".test.ts")] = genTsTestStub(prog)

		gp.Files[filepath.Join("programs", dir, "Cargo.toml")] = genProgramCargoToml(dir)
	}

	gp.Files["Anchor.toml"] = genAnchorToml(manifest, programDirs)
	gp.Files["Cargo.toml"] = genWorkspaceCargoToml(programDirs)
	gp.Files["package.json"] = genPackageJSON(manifest)
	gp.Files["README.md"] = genReadme(manifest, progs)
	gp.Files[".gitignore"] = genGitignore()

	return gp, nil
}

// WriteToDir materializes the bundle under root, creating directories as
// needed. This is explicitly peripheral per the pipeline's external
// interfaces: the core Generate call above never touches disk.
func (gp *GeneratedProject) WriteToDir(root string) error {
	paths := make([]string, 0, len(gp.Files))
	for p := range gp.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, rel := range paths {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("codegen: creating directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(full, []byte(gp.Files[rel]), 0o644); err != nil {
			return fmt.Errorf("codegen: writing %s: %w", rel, err)
		}
	}
	return nil
}

func genTsTestStub(prog *ir.SolanaProgram) string {
	return fmt.Sprintf(`import { describe, it } from "mocha";

describe(%q, () => {
  it("is deployed", async () => {
    // Generated scaffold: exercise %s's instructions against a local validator.
  });
});
`, prog.Name, prog.Name)
}

func genProgramCargoToml(dir string) string {
	return fmt.Sprintf(`[package]
name = "%s"
version = "0.1.0"
edition = "2021"

[lib]
crate-type = ["cdylib", "lib"]
name = "%s"

[dependencies]
anchor-lang = "0.30"
anchor-spl = "0.30"
`, dir, dir)
}

func genAnchorToml(m *projectcfg.ProjectManifest, programDirs []string) string {
	s := "[features]\nseeds = false\nskip-lint = false\n\n[programs." + string(m.Cluster) + "]\n"
	for _, d := range programDirs {
		s += fmt.Sprintf("%s = %q\n", d, m.ProgramID)
	}
	s += fmt.Sprintf("\n[registry]\nurl = \"https://api.apr.dev\"\n\n[provider]\ncluster = %q\nwallet = %q\n\n[scripts]\ntest = \"yarn run ts-mocha -p ./tsconfig.json -t 1000000 tests/**/*.ts\"\n",
		m.Cluster, m.KeypairPath)
	return s
}

func genWorkspaceCargoToml(programDirs []string) string {
	s := "[workspace]\nmembers = [\n"
	for _, d := range programDirs {
		s += fmt.Sprintf("    \"programs/%s\",\n", d)
	}
	s += "]\nresolver = \"2\"\n"
	return s
}

func genPackageJSON(m *projectcfg.ProjectManifest) string {
	return fmt.Sprintf(`{
  "name": %q,
  "version": "0.1.0",
  "scripts": {
    "test": "anchor test"
  },
  "dependencies": {
    "@coral-xyz/anchor": "^0.30.0",
    "@solana/web3.js": "^1.95.0"
  },
  "devDependencies": {
    "mocha": "^10.0.0",
    "ts-mocha": "^10.0.0",
    "typescript": "^5.0.0"
  }
}
`, m.ProgramName)
}

func genReadme(m *projectcfg.ProjectManifest, progs []*ir.SolanaProgram) string {
	s := "# " + m.ProgramName + "\n\nGenerated Anchor workspace. Programs:\n\n"
	for _, p := range progs {
		s += "- " + p.Name + "\n"
	}
	return s
}

func genGitignore() string {
	return "/target\n/node_modules\n.anchor\ntest-ledger\n"
}
