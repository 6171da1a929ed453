package diagnose

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flarebyte/reposh/internal/shell"
)

// Cmd implements `reposh diagnose`.
var Cmd = &cobra.Command{
	Use:           "diagnose",
	Short:         "Print the resolved configuration and rule table as JSON",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		system, _ := cmd.Flags().GetString("system")
		s, err := shell.New(shell.Options{
			ConfigPath: configPath,
			System:     system,
			Reader:     noInput{},
			Out:        io.Discard,
			Logger:     zap.L(),
		})
		if err != nil {
			return err
		}
		return encodeJSON(cmd.OutOrStdout(), s.Describe())
	},
}

// noInput keeps diagnose from touching the terminal.
type noInput struct{}

func (noInput) ReadLine() (string, error) { return "", io.EOF }
func (noInput) SetPrompt(string)          {}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
