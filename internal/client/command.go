package client

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// runner executes an external command.
type runner interface {
	Run(ctx context.Context, name string, args []string, options ...Option) error
}

// Option configures the command before it starts.
type Option func(cmd *exec.Cmd)

// Stdout redirects the command's standard output to writer.
func Stdout(writer io.Writer) Option {
	return func(c *exec.Cmd) {
		c.Stdout = writer
	}
}

// Stderr redirects the command's standard error to writer.
func Stderr(writer io.Writer) Option {
	return func(c *exec.Cmd) {
		c.Stderr = writer
	}
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args []string, options ...Option) error {
	cmd := exec.CommandContext(ctx, name, args...)

	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	for _, opt := range options {
		opt(cmd)
	}

	return cmd.Run()
}
