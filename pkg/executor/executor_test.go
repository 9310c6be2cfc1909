package executor

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/dialogue-flow/internal/errs"
)

func skipIfNoShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}
}

func TestExecute(t *testing.T) {
	skipIfNoShell(t)

	out, err := New().Execute(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}
}

func TestExecuteFailureCarriesStderr(t *testing.T) {
	skipIfNoShell(t)

	_, err := New().Execute(context.Background(), "sh", "-c", "echo broken pipe >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail on non-zero exit")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error %T is not *CommandError", err)
	}
	if cmdErr.Stderr != "broken pipe" {
		t.Errorf("Stderr = %q, want %q", cmdErr.Stderr, "broken pipe")
	}
	if !errors.Is(err, errs.ErrResource) {
		t.Error("command failure should match ErrResource")
	}
	if !strings.Contains(err.Error(), "stderr: broken pipe") {
		t.Errorf("Error() = %q, missing stderr", err.Error())
	}
}

func TestExecuteInDir(t *testing.T) {
	skipIfNoShell(t)

	dir := t.TempDir()
	out, err := New().ExecuteInDir(context.Background(), dir, "sh", "-c", "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), strings.TrimPrefix(dir, "/private")) {
		t.Errorf("ExecuteInDir() ran in %q, want %q", strings.TrimSpace(out), dir)
	}
}
