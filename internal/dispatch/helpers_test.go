package dispatch

import (
	"bytes"
	"context"
	"testing"

	"github.com/flarebyte/reposh/internal/config"
)

type runCall struct {
	command string
	trace   bool
}

// recordingRunner captures commands instead of executing them.
type recordingRunner struct {
	calls []runCall
	err   error
}

func (r *recordingRunner) Execute(_ context.Context, command string, trace bool) error {
	r.calls = append(r.calls, runCall{command: command, trace: trace})
	return r.err
}

func (r *recordingRunner) last(t *testing.T) runCall {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatalf("expected a command to be run")
	}
	return r.calls[len(r.calls)-1]
}

func testEnv(system string) (*Env, *recordingRunner, *bytes.Buffer) {
	runner := &recordingRunner{}
	out := &bytes.Buffer{}
	cfg, _ := config.Load("")
	return &Env{
		System:  cfg.Config.Resolve(system),
		Runner:  runner,
		Out:     out,
		Environ: func() []string { return []string{"ZED=1", "EDITOR=vi", "HOME=/home/u"} },
	}, runner, out
}

func builtinTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable(nil)
	RegisterBuiltins(tbl)
	return tbl
}

func dispatchLine(t *testing.T, tbl *Table, env *Env, line string) Result {
	t.Helper()
	env.Table = tbl
	res, err := tbl.Dispatch(context.Background(), Line(line), env.System.Name, env)
	if err != nil {
		t.Fatalf("dispatch %q: %v", line, err)
	}
	return res
}
