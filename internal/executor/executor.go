// Package executor runs command lines typed at the reposh prompt, retrying
// with configured filename extensions when the executable cannot be found.
package executor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Outcome is the result of a single attempt. Ran reports whether the
// executable was found and started; the command's own exit status does not
// affect it.
type Outcome struct {
	Ran        bool
	ExitStatus int
}

// Process runs one command line attached to the terminal's streams.
type Process interface {
	Run(ctx context.Context, command string) Outcome
}

// ExecError is returned when no suffix produced a runnable executable.
type ExecError struct {
	Command string
	Status  int
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to exec '%s': status %d", e.Command, e.Status)
}

// Executor implements the suffix-retry policy on top of a Process.
type Executor struct {
	Extensions []string

	proc   Process
	out    io.Writer
	logger *zap.Logger
}

// New returns an Executor. Trace echoes are written to out.
func New(proc Process, extensions []string, out io.Writer, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		Extensions: append([]string(nil), extensions...),
		proc:       proc,
		out:        out,
		logger:     logger,
	}
}

// Execute runs command, first as typed and then with each extension appended
// to the executable token, stopping at the first attempt that ran.
func (x *Executor) Execute(ctx context.Context, command string, trace bool) error {
	status := 0
	for _, ext := range x.suffixes() {
		line := AddExtension(command, ext)
		if trace {
			fmt.Fprintln(x.out, line)
		}
		res := x.proc.Run(ctx, line)
		x.logger.Debug("exec attempt",
			zap.String("command", line),
			zap.Bool("ran", res.Ran),
			zap.Int("status", res.ExitStatus))
		if res.Ran {
			return nil
		}
		status = res.ExitStatus
		if ctx.Err() != nil {
			break
		}
	}
	return &ExecError{Command: command, Status: status}
}

func (x *Executor) suffixes() []string {
	return append([]string{""}, x.Extensions...)
}

// AddExtension appends ext to the executable token of command. Everything
// after the executable is kept verbatim.
func AddExtension(command, ext string) string {
	if ext == "" {
		return command
	}
	trimmed := strings.TrimLeft(command, " \t")
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		return trimmed[:i] + ext + trimmed[i:]
	}
	return trimmed + ext
}
