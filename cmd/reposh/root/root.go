package root

import (
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/flarebyte/reposh/cmd/reposh/diagnose"
	"github.com/flarebyte/reposh/cmd/reposh/version"
	"github.com/flarebyte/reposh/internal/buildinfo"
	"github.com/flarebyte/reposh/internal/dispatch"
	"github.com/flarebyte/reposh/internal/shell"
)

// exitSoftware is used when the rule table fails to handle a line, which is a
// bug rather than a user error.
const exitSoftware = 70

var (
	flagConfig  string
	flagSystem  string
	flagVerbose bool
)

type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }
func (e *exitError) ExitCode() int { return e.code }

// NewRootCmd creates the root command for reposh.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reposh",
		Short:   "Interactive shell for version control systems",
		Long:    "reposh reads short commands and hands them to git, hg, svn, darcs or svk.\nThe system is detected from the current directory unless --system is given.",
		Version: buildinfo.Summary(),
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(flagVerbose)
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
		RunE:          runShell,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("reposh {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default $HOME/.reposh.yaml)")
	cmd.PersistentFlags().StringVarP(&flagSystem, "system", "s", "", "Version control system (default: detected)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	// Subcommands
	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(diagnose.Cmd)

	return cmd
}

func runShell(cmd *cobra.Command, args []string) error {
	// Keep reposh alive on Ctrl-C; the running command still receives it.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer func() {
		signal.Stop(sigs)
		close(sigs)
	}()
	go func() {
		for range sigs {
		}
	}()

	s, err := shell.New(shell.Options{
		ConfigPath: flagConfig,
		System:     flagSystem,
		Out:        cmd.OutOrStdout(),
		Logger:     zap.L(),
	})
	if err != nil {
		return err
	}
	err = s.Run(cmd.Context())
	if errors.Is(err, dispatch.ErrNoRule) {
		return &exitError{err: err, code: exitSoftware}
	}
	return err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
