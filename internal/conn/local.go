package conn

import (
	"context"
	"os/exec"
)

// Local runs commands as child processes of the current one.
type Local struct {
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env, when set, replaces the inherited environment.
	Env []string
}

// Run executes name with args and returns combined stdout and stderr.
func (l Local) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = l.Dir
	if l.Env != nil {
		cmd.Env = l.Env
	}
	return cmd.CombinedOutput()
}

// Close is a no-op.
func (Local) Close() error {
	return nil
}
