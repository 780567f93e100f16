// Package cmdexec abstracts external command execution for testability.
// Production code uses the Commander interface; tests inject FakeCommander from testutil.
package cmdexec

import (
	"bytes"
	"context"
	"os/exec"
)

// Output holds the captured streams of a finished command.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Commander abstracts external command execution.
type Commander interface {
	// Run executes an external command in dir and returns stdout and stderr
	// separately. An empty dir means the current working directory.
	// Output is returned even when the command exits non-zero.
	Run(ctx context.Context, dir, name string, args ...string) (*Output, error)

	// LookPath reports the resolved path of an executable.
	LookPath(name string) (string, error)
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct{}

// Run executes the command using os/exec.CommandContext.
func (c *RealCommander) Run(ctx context.Context, dir, name string, args ...string) (*Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return &Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, err
}

// LookPath delegates to exec.LookPath.
func (c *RealCommander) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
