package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "in.sk")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestRunPrintsASTAndExitsZero(t *testing.T) {
	path := writeSource(t, "def x: 1 + 2;")
	var stdout, stderr bytes.Buffer

	code := run([]string{path}, &stdout, &stderr)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", stderr.String())
	}
	want := "Const x = (+ 1 2)" + "\n"
	if stdout.String() != want {
		t.Fatalf("got:  %q\nwant: %q", stdout.String(), want)
	}
}

func TestRunRendersDiagnosticAndExitsOneOnParseError(t *testing.T) {
	path := writeSource(t, "def x: ;")
	var stdout, stderr bytes.Buffer

	code := run([]string{path}, &stdout, &stderr)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no stdout output on failure, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "error: expected an expression") {
		t.Fatalf("expected the diagnostic header in stderr, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "^") {
		t.Fatalf("expected a caret underline in stderr, got %q", stderr.String())
	}
}

func TestRunExitsOneOnMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{filepath.Join(t.TempDir(), "missing.sk")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stderr.Len() == 0 {
		t.Fatalf("expected an error message on stderr")
	}
}

func TestRunRequiresExactlyOneArgument(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1 for missing argument, got %d", code)
	}
}
