package main

// Notes:
// - print*Usage: we test that required content strings are present. Exact
//   formatting is an implementation detail.
// - runHelp: we test routing to the correct topic and the exit code.

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Main usage output
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	output := buf.String()

	for _, s := range []string{"Usage: serialpub", "Commands:", "publish", "rebuild", "check", "watch", "completion", "version", "help"} {
		if !strings.Contains(output, s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestCommandUsage_ListsFlags - Every registered flag is documented
// ---------------------------------------------------------------------------

func TestCommandUsage_ListsFlags(t *testing.T) {
	t.Parallel()

	for _, cmd := range getCommands() {
		if len(cmd.Flags) == 0 {
			continue
		}
		t.Run(cmd.Name, func(t *testing.T) {
			t.Parallel()

			e := &testEnv{}
			if code := runHelp([]string{cmd.Name}, e.env()); code != ExitSuccess {
				t.Fatalf("runHelp(%s) = %d", cmd.Name, code)
			}
			out := e.stdout.String()
			for _, f := range cmd.Flags {
				if !strings.Contains(out, "--"+f.Long) {
					t.Errorf("help for %s does not mention --%s", cmd.Name, f.Long)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Topic routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no topic", nil, ExitSuccess, "Commands:", ""},
		{"rebuild", []string{"rebuild"}, ExitSuccess, "Usage: serialpub rebuild", ""},
		{"check", []string{"check"}, ExitSuccess, "--json", ""},
		{"watch", []string{"watch"}, ExitSuccess, "--debounce", ""},
		{"completion", []string{"completion"}, ExitSuccess, "Supported shells:", ""},
		{"version", []string{"version"}, ExitSuccess, "Usage: serialpub version", ""},
		{"help", []string{"help"}, ExitSuccess, "Usage: serialpub help", ""},
		{"unknown", []string{"deploy"}, ExitUsage, "", "Unknown command: deploy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := &testEnv{}
			if code := runHelp(tt.args, e.env()); code != tt.wantCode {
				t.Errorf("runHelp() = %d, want %d", code, tt.wantCode)
			}
			if tt.wantStdout != "" && !strings.Contains(e.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", e.stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(e.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", e.stderr.String(), tt.wantStderr)
			}
		})
	}
}
