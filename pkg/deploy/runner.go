package deploy

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/spatium-net/spatium/pkg/util"
)

// RunResult carries the fully captured output of one tool invocation.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner invokes the external deployment tool. One synchronous invocation
// per call, no retries; output is captured in full, not streamed.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (*RunResult, error)
}

// execRunner runs the real binary as a child process.
type execRunner struct {
	bin string
}

// NewRunner returns a Runner for the given binary. The binary is resolved
// at first use; availability at startup is the Service's concern.
func NewRunner(bin string) Runner {
	return &execRunner{bin: bin}
}

func (r *execRunner) Run(ctx context.Context, dir string, args ...string) (*RunResult, error) {
	util.Debugf("running: %s %s (cwd %s)", r.bin, strings.Join(args, " "), dir)

	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, &CommandNotFoundError{Bin: r.bin}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			util.Errorf("command failed: %s %s\nstderr: %s", r.bin, strings.Join(args, " "), res.Stderr)
			return res, &ExitError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
		}
		return nil, err
	}

	return res, nil
}
