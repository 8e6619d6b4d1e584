package deploy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spatium-net/spatium/pkg/util"
)

func TestRunnerMissingBinary(t *testing.T) {
	r := NewRunner("spatium-no-such-binary")

	_, err := r.Run(context.Background(), t.TempDir())
	var notFound *CommandNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want CommandNotFoundError", err)
	}
	if !errors.Is(err, util.ErrToolUnavailable) {
		t.Error("CommandNotFoundError should match ErrToolUnavailable")
	}
}

func TestRunnerCapturesOutput(t *testing.T) {
	r := NewRunner("sh")

	res, err := r.Run(context.Background(), t.TempDir(), "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(res.Stdout) != "out" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if strings.TrimSpace(res.Stderr) != "err" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
}

func TestRunnerNonZeroExit(t *testing.T) {
	r := NewRunner("sh")

	res, err := r.Run(context.Background(), t.TempDir(), "-c", "echo boom >&2; exit 3")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want ExitError", err)
	}
	if exitErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", exitErr.ExitCode)
	}
	if !strings.Contains(exitErr.Stderr, "boom") {
		t.Errorf("Stderr = %q, want tool diagnostic", exitErr.Stderr)
	}
	if res == nil || res.ExitCode != 3 {
		t.Errorf("result = %+v, want captured exit code", res)
	}
}
