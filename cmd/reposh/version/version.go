package version

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/flarebyte/reposh/internal/buildinfo"
)

var (
	flagShort bool
	flagJSON  bool
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the reposh version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagShort {
			_, err := fmt.Fprintln(os.Stdout, buildinfo.Short())
			return err
		}
		if !flagJSON {
			_, err := fmt.Fprintf(os.Stdout, "reposh %s\n", buildinfo.Summary())
			return err
		}

		// JSON goes to stdout, a human friendly line to stderr.
		_, _ = fmt.Fprintf(os.Stderr, "reposh version: %s\n", buildinfo.Summary())
		out := map[string]any{
			"version":   buildinfo.Short(),
			"commit":    buildinfo.Commit,
			"date":      buildinfo.Date,
			"built_by":  buildinfo.BuiltBy,
			"go":        runtime.Version(),
			"go_os":     runtime.GOOS,
			"go_arch":   runtime.GOARCH,
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		}
		return encodeJSON(os.Stdout, out)
	},
}

func init() {
	VersionCmd.Flags().BoolVar(&flagShort, "short", false, "Print only the version string")
	VersionCmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed JSON version info")
}
