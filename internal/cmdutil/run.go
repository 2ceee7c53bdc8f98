// internal/cmdutil/run.go
package cmdutil

import (
	"context"
	"errors"
	"fmt"

	"mitabmerge/internal/output"
)

// Exit codes shared by the mitab-merge commands.
const (
	ExitOK          = 0
	ExitUsage       = 2
	ExitFailure     = 3
	ExitInterrupted = 130
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("usage error")

// ExitCode maps a run error to the process exit code.
// A closed downstream pipe is not a failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case output.IsBrokenPipe(err):
		return ExitOK
	}
	return ExitFailure
}

type usageError struct{ msg string }

func (e *usageError) Error() string        { return e.msg }
func (e *usageError) Is(target error) bool { return target == ErrUsage }

// Usagef builds an error that matches ErrUsage.
func Usagef(format string, a ...any) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}
