package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// helperEnv makes the test binary behave as a child process.
const helperEnv = "CARGO_GODOT_HELPER_PROCESS"

func TestMain(m *testing.M) {
	if mode := os.Getenv(helperEnv); mode != "" {
		os.Exit(helperMain(mode, os.Args[1:]))
	}
	os.Exit(m.Run())
}

func helperMain(mode string, args []string) int {
	switch {
	case mode == "echo":
		fmt.Println(strings.Join(args, "|"))
		return 0
	case strings.HasPrefix(mode, "exit="):
		code, _ := strconv.Atoi(strings.TrimPrefix(mode, "exit="))
		return code
	}
	return 0
}

func testExec() (*Exec, *bytes.Buffer) {
	var out bytes.Buffer
	return &Exec{Stdout: &out, Stderr: &out}, &out
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "tool")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{bin, bin, false},
		{dir, "", true},
		{filepath.Join(dir, "missing"), "", true},
		{"cargo-godot-definitely-not-in-path", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.name)
			if tt.wantErr {
				var nf *NotFoundError
				if !errors.As(err, &nf) {
					t.Fatalf("Resolve(%q) error = %v, want NotFoundError", tt.name, err)
				}
				if nf.Name != tt.name {
					t.Errorf("NotFoundError.Name = %q, want %q", nf.Name, tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolveSearchPath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "godot"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	got, err := Resolve("godot")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != filepath.Join(dir, "godot") {
		t.Errorf("Resolve(godot) = %q, want %q", got, filepath.Join(dir, "godot"))
	}
}

func TestRunSuccess(t *testing.T) {
	t.Setenv(helperEnv, "echo")
	e, out := testExec()

	if err := e.Run(context.Background(), os.Args[0], "--path", "/tmp/game"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "--path|/tmp/game" {
		t.Errorf("child saw args %q", got)
	}
}

func TestRunExitFailure(t *testing.T) {
	t.Setenv(helperEnv, "exit=3")
	e, _ := testExec()

	err := e.Run(context.Background(), os.Args[0])
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run error = %v, want ExitError", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("ExitError.Code = %d, want 3", exitErr.Code)
	}
	if exitErr.Name != os.Args[0] {
		t.Errorf("ExitError.Name = %q, want %q", exitErr.Name, os.Args[0])
	}
}

func TestRunNotFound(t *testing.T) {
	e, _ := testExec()
	err := e.Run(context.Background(), "cargo-godot-definitely-not-in-path")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Run error = %v, want NotFoundError", err)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	// Exists but is not executable: resolution succeeds, the spawn does not.
	bin := filepath.Join(t.TempDir(), "not-executable")
	if err := os.WriteFile(bin, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	e, _ := testExec()

	err := e.Run(context.Background(), bin)
	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("Run error = %v, want SpawnError", err)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("spawn failure reported as exit failure: %v", err)
	}
}

func TestOutput(t *testing.T) {
	t.Setenv(helperEnv, "echo")
	e, console := testExec()

	out, err := e.Output(context.Background(), os.Args[0], "metadata", "--format-version", "1")
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "metadata|--format-version|1" {
		t.Errorf("Output = %q", got)
	}
	if console.Len() != 0 {
		t.Errorf("stdout leaked to console: %q", console.String())
	}
}
