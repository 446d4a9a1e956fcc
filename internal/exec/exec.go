// Package exec runs the external programs orfanno delegates to: the ORF
// callers and the homology search.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	osexec "os/exec"
	"strings"
	"time"
)

// ErrTool is returned when an external program fails or its output can't be read.
var ErrTool = errors.New("external tool failed")

// waitDelay bounds how long a killed program's children may hold its output pipes open.
const waitDelay = 5 * time.Second

// Runner executes a program and returns what it wrote to stdout and stderr.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// Command is a Runner backed by os/exec on the local host.
type Command struct{}

// Run executes name with args and waits on it to finish. A non-zero exit,
// a missing binary, or the context expiring all wrap ErrTool.
func (Command) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := osexec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), stderr.Bytes(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.Bytes(), stderr.Bytes(), Errorf(name, "%v", ctxErr)
	}

	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), stderr.Bytes(), Errorf(name, "exit code %d: %s", exitErr.ExitCode(), tail(stderr.String()))
	}

	return stdout.Bytes(), stderr.Bytes(), Errorf(name, "%v", err)
}

// Errorf returns an ErrTool error attributed to the program name.
func Errorf(name, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrTool, name, fmt.Sprintf(format, args...))
}

// tail trims tool stderr to its last few lines for error messages.
func tail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, "\n")
}
