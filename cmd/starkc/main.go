// Command starkc compiles a single source file through the lexer and
// parser and prints the resulting AST. It has no subcommands: IR
// lowering, type checking, codegen, and object-file emission are not
// yet implemented.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stark-lang/starkc/internal/ast"
	"github.com/stark-lang/starkc/internal/diagnostics"
	"github.com/stark-lang/starkc/internal/lexer"
	"github.com/stark-lang/starkc/internal/parser"
	"github.com/stark-lang/starkc/internal/source"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the testable entry point: it never calls os.Exit itself, so
// tests can drive it with in-memory writers and inspect the result.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "starkc <file>",
		Short:         "Compile a single source file and print its AST",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return compile(args[0], stdout, stderr)
		},
	}
	return cmd
}

// compile runs the full pipeline against path: open, lex, parse, print.
// It stops and renders a diagnostic at the first fatal error from any
// stage, per the single-error compiler policy.
func compile(path string, stdout, stderr io.Writer) error {
	src, err := source.Open(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}

	toks, lexErr := lexer.Lex(src)
	if lexErr != nil {
		fmt.Fprintln(stderr, diagnostics.Render(src, diagnostics.FromSpan(src.Path, lexErr.Span, lexErr.Code, lexErr.Message, lexErr.Hint)))
		return lexErr
	}

	arena, parseErr := parser.Parse(src, toks)
	if parseErr != nil {
		fmt.Fprintln(stderr, diagnostics.Render(src, diagnostics.FromSpan(src.Path, parseErr.Span, parseErr.Code, parseErr.Message, parseErr.Hint)))
		return parseErr
	}

	fmt.Fprintln(stdout, ast.Render(arena))
	return nil
}
