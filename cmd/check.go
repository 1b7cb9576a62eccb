package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chatwrapped/cli/config"
	"github.com/chatwrapped/cli/pkg/chat"
	cwerrors "github.com/chatwrapped/cli/pkg/errors"
)

// CheckResult reports the outcome of the export gate for one file.
type CheckResult struct {
	File  string `json:"file" yaml:"file"`
	Valid bool   `json:"valid" yaml:"valid"`
}

// CheckCommandDeps holds the dependencies for the check command.
type CheckCommandDeps struct {
	LoadConfig func() (*config.CLIConfig, error)

	// Out overrides stdout for tests.
	Out io.Writer
}

// DefaultCheckDeps returns the default dependencies for production use.
func DefaultCheckDeps() *CheckCommandDeps {
	return &CheckCommandDeps{
		LoadConfig: LoadActiveConfig,
	}
}

// NewCheckCommand creates the check command.
func NewCheckCommand(deps *CheckCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultCheckDeps()
	}

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check whether a file looks like a chat export",
		Long: `Check runs the fast export gate against the head of the file: it must
contain a date-like substring, a time-like substring and a timestamp/body
separator. The gate is a heuristic, not a full parse; use it to reject
obviously wrong files before running stats or wrap.`,
		Example: `  # Validate an export before generating a report
  chatwrapped check chat.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}

			out := deps.Out
			if out == nil {
				out = cmd.OutOrStdout()
			}

			data, err := readExport(args[0])
			if err != nil {
				return err
			}

			result := CheckResult{File: args[0], Valid: chat.LooksLikeExport(data)}

			if err := renderOutput(out, cfg.OutputFormat, result, func(w io.Writer) {
				if result.Valid {
					fmt.Fprintf(w, "%s looks like a chat export\n", result.File)
				} else {
					fmt.Fprintf(w, "%s does not look like a chat export\n", result.File)
				}
			}); err != nil {
				return err
			}

			if !result.Valid {
				return fmt.Errorf("%w: %s", cwerrors.ErrNotChatExport, args[0])
			}
			return nil
		},
	}

	return cmd
}
