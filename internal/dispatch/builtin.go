package dispatch

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/flarebyte/reposh/internal/buildinfo"
	"github.com/flarebyte/reposh/internal/detect"
	"github.com/flarebyte/reposh/internal/luaeval"
)

// RegisterBuiltins installs the built-in rules. They go in before any custom
// rule, so configuration can shadow all of them, including the catch-all.
func RegisterBuiltins(t *Table) {
	t.Register(MustRegexp(`.*`), nil, runDefault)

	t.Register(Literal("%reload"), nil, reload)
	t.Register(Literal("%env"), nil, printEnv)
	t.Register(Literal("%version"), nil, printVersion)
	t.Register(MustRegexp(`\A%lua (.*)`), nil, evalLua)
	t.Register(Literal("%state"), nil, dumpState)
	t.Register(Literal("%trace"), nil, toggleTrace)

	t.Register(EOF(), nil, exitSession)
	t.Register(Literal("exit"), nil, exitSession)
	t.Register(Literal("quit"), nil, exitSession)

	t.Register(MustRegexp(`^:(.*)`), nil, runShell)
}

// runDefault passes the line to the VCS binary; an empty line runs the
// system's default subcommand.
func runDefault(ctx context.Context, env *Env, m Match) (Result, error) {
	arg := m.Group(0)
	if arg == "" {
		arg = env.System.DefaultSubcommand
	}
	return env.Run(ctx, env.System.BinaryPath+" "+arg)
}

func runShell(ctx context.Context, env *Env, m Match) (Result, error) {
	return env.Run(ctx, m.Group(1))
}

func reload(context.Context, *Env, Match) (Result, error) {
	return Result{Reload: true}, nil
}

func printEnv(_ context.Context, env *Env, _ Match) (Result, error) {
	vars := slices.Clone(env.environ())
	slices.Sort(vars)
	for _, kv := range vars {
		fmt.Fprintln(env.Out, kv)
	}
	return Result{}, nil
}

func printVersion(_ context.Context, env *Env, _ Match) (Result, error) {
	fmt.Fprintln(env.Out, buildinfo.Short())
	return Result{}, nil
}

func toggleTrace(_ context.Context, env *Env, _ Match) (Result, error) {
	env.Trace = !env.Trace
	fmt.Fprintf(env.Out, "set trace_mode to %t\n", env.Trace)
	return Result{}, nil
}

func exitSession(_ context.Context, env *Env, _ Match) (Result, error) {
	fmt.Fprintln(env.Out)
	return Result{Exit: true}, nil
}

// evalLua evaluates the expression in a sandbox that sees a snapshot of the
// engine state as the global table "reposh".
func evalLua(ctx context.Context, env *Env, m Match) (Result, error) {
	v, err := luaeval.Eval(ctx, m.Group(1), luaGlobals(env), luaeval.Options{})
	if err != nil {
		return Result{}, fmt.Errorf("lua: %w", err)
	}
	fmt.Fprintf(env.Out, "reposh: result is %s\n", luaeval.Inspect(v))
	return Result{}, nil
}

func luaGlobals(env *Env) map[string]any {
	return map[string]any{
		"reposh": map[string]any{
			"system":             env.System.Name,
			"binary_path":        env.System.BinaryPath,
			"default_subcommand": env.System.DefaultSubcommand,
			"trace":              env.Trace,
			"version":            buildinfo.Short(),
			"path_extensions":    slices.Clone(env.PathExtensions),
			"getenv":             env.getenv,
		},
	}
}

func dumpState(_ context.Context, env *Env, _ Match) (Result, error) {
	w := env.Out
	fmt.Fprintf(w, "system: %s\n", env.System.Name)
	fmt.Fprintf(w, "binary path: %s\n", env.System.BinaryPath)
	fmt.Fprintf(w, "default subcommand: %s\n", env.System.DefaultSubcommand)
	fmt.Fprintf(w, "trace: %t\n", env.Trace)
	fmt.Fprintf(w, "path extensions: %s\n", strings.Join(env.PathExtensions, ", "))
	if env.WorkDir != "" {
		if head, err := detect.Head(env.WorkDir); err == nil {
			fmt.Fprintf(w, "git: %s\n", head)
		}
	}
	if env.Table != nil {
		fmt.Fprintln(w, "rules (highest priority first):")
		for _, r := range env.Table.Rules() {
			fmt.Fprintf(w, "  %s\n", DescribeRule(r, env.System.Name))
		}
	}
	return Result{}, nil
}

// DescribeRule renders a rule as one line: origin, pattern, system filter, and
// a trailing "(inactive)" when the filter excludes system.
func DescribeRule(r Rule, system string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-7s %s", r.Origin, r.Pattern)
	if r.Systems != nil {
		fmt.Fprintf(&b, " [%s]", strings.Join(r.Systems, ", "))
	}
	if !r.Eligible(system) {
		b.WriteString(" (inactive)")
	}
	return b.String()
}
