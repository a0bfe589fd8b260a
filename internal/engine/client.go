package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// ExitError reports a non-zero engine exit together with its diagnostic
// stream.
type ExitError struct {
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("engine exit: %v", e.Err)
	}
	return fmt.Sprintf("engine exit: %v: %s", e.Err, e.Stderr)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Client runs the external audio engine.
type Client interface {
	Transform(ctx context.Context, inv Invocation) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the binary named by the invocation.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI invokes the engine as a child process. The caller bounds the run with a
// context deadline; on expiry the child is killed, never left running.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Transform executes the invocation and waits for completion. A non-zero exit
// surfaces as *ExitError carrying the captured stderr; a context deadline
// surfaces as the context error.
func (c *CLI) Transform(ctx context.Context, inv Invocation) error {
	binary := inv.Binary
	if c.binary != "" {
		binary = c.binary
	}
	if strings.TrimSpace(binary) == "" {
		return errors.New("engine binary required")
	}

	cmd := commandContext(ctx, binary, inv.Args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &ExitError{Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}

var _ Client = (*CLI)(nil)
