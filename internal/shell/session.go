// Package shell runs the interactive reposh session: read a line, dispatch it
// against the rule table, repeat until an exit rule fires.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/flarebyte/reposh/internal/buildinfo"
	"github.com/flarebyte/reposh/internal/config"
	"github.com/flarebyte/reposh/internal/detect"
	"github.com/flarebyte/reposh/internal/dispatch"
	"github.com/flarebyte/reposh/internal/executor"
	"github.com/flarebyte/reposh/internal/prompt"
)

// Options configures a Session. Zero values fall back to the process's
// standard streams, the current directory and a no-op logger.
type Options struct {
	// ConfigPath is the config file; "" means $HOME/.reposh.yaml.
	ConfigPath string
	// System is the active VCS; "" means detect it from WorkDir.
	System  string
	WorkDir string

	Reader  prompt.Reader
	Out     io.Writer
	Process executor.Process
	Logger  *zap.Logger
}

// Session holds the engine state between lines.
type Session struct {
	configPath string
	loaded     config.Loaded
	table      *dispatch.Table
	env        *dispatch.Env
	exec       *executor.Executor
	reader     prompt.Reader
	out        io.Writer
	styles     styles
	logger     *zap.Logger
}

// New loads the configuration and builds the rule table. Invalid
// configuration, including a custom command that does not compile, is an
// error.
func New(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = wd
	}
	configPath, err := ResolveConfigPath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	system, err := ResolveSystem(opts.System, workDir)
	if err != nil {
		return nil, err
	}

	loaded, table, err := build(configPath, logger)
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config
	resolved := cfg.Resolve(system)

	proc := opts.Process
	if proc == nil {
		proc = &executor.ShellProcess{Stdin: os.Stdin, Stdout: out, Stderr: os.Stderr, Dir: workDir}
	}
	exec := executor.New(proc, cfg.Global.PathExtensions, out, logger)

	reader := opts.Reader
	if reader == nil {
		reader = prompt.New(os.Stdin, out, resolved.Prompt, cfg.EditingMode(), logger)
	}

	s := &Session{
		configPath: configPath,
		loaded:     loaded,
		table:      table,
		exec:       exec,
		reader:     reader,
		out:        out,
		styles:     newStyles(out),
		logger:     logger,
	}
	s.env = &dispatch.Env{
		System:         resolved,
		PathExtensions: cfg.Global.PathExtensions,
		Runner:         exec,
		Out:            out,
		Table:          table,
		WorkDir:        workDir,
	}
	logger.Debug("session ready",
		zap.String("system", system),
		zap.String("binary", resolved.BinaryPath),
		zap.String("config", loaded.Source))
	return s, nil
}

// build loads the configuration and registers built-in and custom rules.
func build(configPath string, logger *zap.Logger) (config.Loaded, *dispatch.Table, error) {
	loaded, err := config.Load(configPath)
	if err != nil {
		return config.Loaded{}, nil, err
	}
	logger.Debug("config loaded",
		zap.String("path", configPath),
		zap.Bool("found", loaded.Source != ""))
	table := dispatch.NewTable(logger)
	dispatch.RegisterBuiltins(table)
	builtins := table.Len()
	if err := dispatch.RegisterCustom(table, loaded.Config.Global.CustomCommands); err != nil {
		return config.Loaded{}, nil, err
	}
	logger.Debug("rules registered",
		zap.Int("builtin", builtins),
		zap.Int("custom", table.Len()-builtins))
	return loaded, table, nil
}

// Run reads and dispatches lines until an exit rule fires. Command failures
// are reported and the loop continues; a line no rule matches ends the
// session with an error wrapping dispatch.ErrNoRule.
func (s *Session) Run(ctx context.Context) error {
	s.reportLoaded()
	fmt.Fprintln(s.out, s.styles.banner.Render(
		fmt.Sprintf("Welcome to reposh %s (mode: %s)", buildinfo.Short(), s.env.System.Name)))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.reader.ReadLine()
		in := dispatch.Line(line)
		if errors.Is(err, io.EOF) {
			in = dispatch.EndOfInput()
		} else if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		res, err := s.table.Dispatch(ctx, in, s.env.System.Name, s.env)
		if errors.Is(err, dispatch.ErrNoRule) {
			return err
		}
		if err != nil {
			s.reportError(err)
			continue
		}
		if res.Exit {
			return nil
		}
		if res.Reload {
			if err := s.Reload(); err != nil {
				s.reportError(err)
			}
		}
	}
}

// Reload re-reads the configuration and swaps in a fresh rule table. On error
// the current table and settings stay in effect.
func (s *Session) Reload() error {
	loaded, table, err := build(s.configPath, s.logger)
	if err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	cfg := loaded.Config
	s.loaded = loaded
	s.table = table
	s.env.Table = table
	s.env.System = cfg.Resolve(s.env.System.Name)
	s.env.PathExtensions = cfg.Global.PathExtensions
	s.exec.Extensions = append([]string(nil), cfg.Global.PathExtensions...)
	s.reader.SetPrompt(s.env.System.Prompt)
	s.reportLoaded()
	return nil
}

// Trace reports whether commands are echoed before they run.
func (s *Session) Trace() bool { return s.env.Trace }

// System returns the resolved settings of the active system.
func (s *Session) System() config.Resolved { return s.env.System }

func (s *Session) reportLoaded() {
	if s.loaded.Source != "" {
		fmt.Fprintln(s.out, s.styles.info.Render("loaded config file: "+s.loaded.Source))
	}
}

func (s *Session) reportError(err error) {
	fmt.Fprintln(s.out, s.styles.failed.Render("reposh: "+err.Error()))
}

// ResolveConfigPath returns flag, or the default config path when flag is
// empty.
func ResolveConfigPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return config.DefaultPath()
}

// ResolveSystem returns flag, or the system detected from dir when flag is
// empty.
func ResolveSystem(flag, dir string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	system, err := detect.Guess(dir)
	if err != nil {
		return "", fmt.Errorf("failed to detect version control system: %w", err)
	}
	return system, nil
}
