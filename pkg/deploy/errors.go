package deploy

import (
	"fmt"

	"github.com/spatium-net/spatium/pkg/util"
)

// CommandNotFoundError means the deployment tool binary is not on PATH.
// Distinct from ExitError so callers can tell "tool not installed" apart
// from "tool ran and rejected the input".
type CommandNotFoundError struct {
	Bin string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Bin)
}

func (e *CommandNotFoundError) Unwrap() error {
	return util.ErrToolUnavailable
}

// ExitError means the tool ran and exited non-zero. Stderr carries the
// tool's own diagnostic and is surfaced to the caller verbatim.
type ExitError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command failed (exit %d): %s", e.ExitCode, e.Stderr)
}
