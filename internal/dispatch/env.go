package dispatch

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/flarebyte/reposh/internal/config"
)

// Runner executes a command line. The executor package provides the real one.
type Runner interface {
	Execute(ctx context.Context, command string, trace bool) error
}

// Env is the engine state passed to every action. Actions may flip Trace;
// everything else is read-only to them.
type Env struct {
	System         config.Resolved
	PathExtensions []string
	Trace          bool

	Runner Runner
	Out    io.Writer
	// Table is the table being dispatched, for introspection.
	Table *Table
	// WorkDir is used by %state to look for a git repository.
	WorkDir string
	// Environ defaults to os.Environ.
	Environ func() []string
}

// Run hands command to the runner with the current trace setting.
func (e *Env) Run(ctx context.Context, command string) (Result, error) {
	return Result{Command: command}, e.Runner.Execute(ctx, command, e.Trace)
}

func (e *Env) environ() []string {
	if e.Environ != nil {
		return e.Environ()
	}
	return os.Environ()
}

func (e *Env) getenv(name string) string {
	prefix := name + "="
	for _, kv := range e.environ() {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):]
		}
	}
	return ""
}
