package install

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// CommandRunner runs one external command to completion. The two slow
// steps (venv creation, pip install) go through this so tests can swap
// in a recording fake.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner is the real thing. With Verbose set, subprocess output
// streams straight to the terminal; otherwise it is captured and only
// surfaces inside the error when the command fails.
type ExecRunner struct {
	Verbose bool
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		tail := out.String()
		if len(tail) > 2000 {
			tail = "..." + tail[len(tail)-2000:]
		}
		return fmt.Errorf("%s failed: %w\n%s", name, err, tail)
	}
	return nil
}
