package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/cryptuon/solscript/internal/ast"
	solerr "github.com/cryptuon/solscript/internal/errors"
	"github.com/cryptuon/solscript/internal/pipeline"
	"github.com/cryptuon/solscript/internal/projectcfg"
)

var (
	// Version info, set by ldflags during build.
	Version = "dev"
	Commit  = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = pflag.BoolP("version", "v", false, "Print version information")
		helpFlag    = pflag.BoolP("help", "h", false, "Show help")
		checkOnly   = pflag.Bool("check", false, "Parse and type-check only, skip code generation")
		outDir      = pflag.StringP("out", "o", "out", "Output directory for the generated Anchor workspace")
		programName = pflag.String("name", "", "Override the generated program name (defaults to the first non-abstract contract's name)")
		cluster     = pflag.String("cluster", "localnet", "Target cluster: localnet, devnet, testnet, mainnet")
		programID   = pflag.String("program-id", "", "Declared program ID (defaults to the System Program placeholder)")
	)
	pflag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || pflag.NArg() == 0 {
		printHelp()
		return
	}

	file := pflag.Arg(0)
	source, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("error"), file, err)
		os.Exit(1)
	}

	prog, err := pipeline.Parse(string(source))
	if err != nil {
		if rep, ok := solerr.AsReport(err); ok {
			printDiagnostic(file, string(source), rep)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		}
		os.Exit(1)
	}

	reg, diags := pipeline.Typecheck(prog)
	if len(diags) > 0 {
		for _, d := range diags {
			printDiagnostic(file, string(source), d)
		}
		fmt.Fprintf(os.Stderr, "\n%s %d error(s)\n", red("✗"), len(diags))
		os.Exit(1)
	}
	fmt.Printf("%s %s type-checks cleanly\n", green("✓"), file)

	if *checkOnly {
		return
	}

	manifest := manifestFromFlags(prog, *programName, *cluster, *programID)

	gp, lowerDiags, err := pipeline.Generate(prog, reg, manifest)
	if len(lowerDiags) > 0 {
		for _, d := range lowerDiags {
			printDiagnostic(file, string(source), d)
		}
		fmt.Fprintf(os.Stderr, "\n%s %d lowering error(s)\n", red("✗"), len(lowerDiags))
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("error"), err)
		os.Exit(1)
	}

	if err := gp.WriteToDir(*outDir); err != nil {
		fmt.Fprintf(os.Stderr, "%s: writing output: %v\n", red("error"), err)
		os.Exit(1)
	}
	fmt.Printf("%s generated %d files into %s\n", green("✓"), len(gp.Files), cyan(*outDir))
}

func manifestFromFlags(prog *ast.Program, name, cluster, programID string) *projectcfg.ProjectManifest {
	if name == "" {
		name = "solscript_program"
		for _, item := range prog.Items {
			if c, ok := item.(*ast.Contract); ok && !c.IsAbstract {
				name = c.Name.Name
				break
			}
		}
	}
	m := projectcfg.DefaultManifest(name)
	m.Cluster = projectcfg.Cluster(cluster)
	if programID != "" {
		m.ProgramID = programID
	}
	return m
}

func printVersion() {
	fmt.Printf("solscriptc %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("commit: %s\n", Commit)
	}
}

func printHelp() {
	fmt.Println(bold("solscriptc - the SolScript compiler"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  solscriptc [flags] <file.sol>")
	fmt.Println()
	fmt.Println("Flags:")
	pflag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s               # compile to ./out\n", cyan("solscriptc vault.sol"))
	fmt.Printf("  %s   # type-check only, no generated files\n", cyan("solscriptc --check vault.sol"))
	fmt.Printf("  %s  # compile for devnet with an explicit program id\n", cyan("solscriptc --cluster devnet --program-id Abc... vault.sol"))
}

// printDiagnostic renders a structured Report the way the rest of this tool
// prints everything else: a red/yellow label, the phase, the message, and
// (when the report carries a span) the offending source line with a caret.
func printDiagnostic(file, source string, rep *solerr.Report) {
	label := red("error")
	fmt.Fprintf(os.Stderr, "%s[%s] %s: %s\n", label, rep.Code, rep.Phase, rep.Message)
	if rep.Span == nil {
		return
	}
	line, col, lineText := locate(source, rep.Span.Start)
	fmt.Fprintf(os.Stderr, "  %s %s:%d:%d\n", cyan("-->"), file, line, col)
	fmt.Fprintf(os.Stderr, "   %s\n", lineText)
	fmt.Fprintf(os.Stderr, "   %s%s\n", strings.Repeat(" ", col-1), yellow("^"))
	if rep.Fix != nil {
		fmt.Fprintf(os.Stderr, "   %s %s\n", green("help:"), rep.Fix.Description)
	}
}

// locate converts a byte offset into a 1-based (line, column) pair and
// returns the text of that line, for caret-style diagnostic rendering.
func locate(source string, offset int) (line, col int, lineText string) {
	if offset > len(source) {
		offset = len(source)
	}
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = offset - lineStart + 1
	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd == -1 {
		lineText = source[lineStart:]
	} else {
		lineText = source[lineStart : lineStart+lineEnd]
	}
	return
}
