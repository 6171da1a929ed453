package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// exitNotFound mirrors the status POSIX shells use for a missing command.
const exitNotFound = 127

// ShellProcess interprets command lines with a POSIX shell interpreter so
// quoting, pipes and redirections behave the same on every platform.
type ShellProcess struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Dir is the working directory; empty means the current one.
	Dir string
}

type notFoundError struct{ name string }

func (e notFoundError) Error() string { return e.name + ": command not found" }

// Run parses and executes command. A syntax error counts as a run that failed
// with status 2, since no extension can fix it.
func (p *ShellProcess) Run(ctx context.Context, command string) Outcome {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		fmt.Fprintf(p.Stderr, "reposh: %v\n", err)
		return Outcome{Ran: true, ExitStatus: 2}
	}
	opts := []interp.RunnerOption{
		interp.StdIO(p.Stdin, p.Stdout, p.Stderr),
		interp.ExecHandlers(requireExecutable(leadingProgram(file))),
	}
	if p.Dir != "" {
		opts = append(opts, interp.Dir(p.Dir))
	}
	runner, err := interp.New(opts...)
	if err != nil {
		fmt.Fprintf(p.Stderr, "reposh: %v\n", err)
		return Outcome{ExitStatus: -1}
	}
	return outcomeOf(runner.Run(ctx, file))
}

// requireExecutable stops the run before exec when the line's leading
// program cannot be found, so the caller can retry with another extension. A
// miss on any other program is an ordinary exit status 127.
func requireExecutable(leading string) func(interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			hc := interp.HandlerCtx(ctx)
			if _, err := interp.LookPathDir(hc.Dir, hc.Env, args[0]); err != nil {
				if leading != "" && args[0] == leading {
					return notFoundError{name: args[0]}
				}
				if hc.Stderr != nil {
					fmt.Fprintf(hc.Stderr, "reposh: %s: command not found\n", args[0])
				}
				return interp.ExitStatus(exitNotFound)
			}
			return next(ctx, args)
		}
	}
}

// leadingProgram returns the literal first word of the first command, looking
// through pipes and && / || chains. It is "" when that word is not a plain
// literal.
func leadingProgram(file *syntax.File) string {
	if len(file.Stmts) == 0 {
		return ""
	}
	cmd := file.Stmts[0].Cmd
	for {
		switch c := cmd.(type) {
		case *syntax.BinaryCmd:
			cmd = c.X.Cmd
		case *syntax.CallExpr:
			if len(c.Args) == 0 {
				return ""
			}
			return c.Args[0].Lit()
		default:
			return ""
		}
	}
}

func outcomeOf(err error) Outcome {
	if err == nil {
		return Outcome{Ran: true}
	}
	var nf notFoundError
	if errors.As(err, &nf) {
		return Outcome{ExitStatus: exitNotFound}
	}
	var status interp.ExitStatus
	if errors.As(err, &status) {
		return Outcome{Ran: true, ExitStatus: int(status)}
	}
	return Outcome{ExitStatus: -1}
}
