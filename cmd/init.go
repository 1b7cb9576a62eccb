package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chatwrapped/cli/config"
)

// InitCommandDeps holds the dependencies for the init command.
type InitCommandDeps struct {
	// Out overrides stdout for tests.
	Out io.Writer
}

// DefaultInitDeps returns the default dependencies for production use.
func DefaultInitDeps() *InitCommandDeps {
	return &InitCommandDeps{}
}

// NewInitCommand creates the init command.
func NewInitCommand(deps *InitCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultInitDeps()
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Init creates the configuration directory and writes the effective
configuration (defaults overlaid with any existing file and CHATWRAPPED_*
environment variables) to config.yaml. Settings from an existing file are
preserved; edit the file afterwards to enable the narrator or change
defaults.`,
		Example: `  # First-time setup
  chatwrapped init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := deps.Out
			if out == nil {
				out = cmd.OutOrStdout()
			}

			// Re-load rather than reusing the startup config so flag
			// overrides from this invocation are not baked into the file.
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			if err := config.EnsureConfigDir(); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("saving configuration: %w", err)
			}

			path, err := config.ConfigPath()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Configuration saved to %s\n", path)
			fmt.Fprintf(out, "  output format: %s\n", cfg.OutputFormat)
			fmt.Fprintf(out, "  min messages:  %d\n", cfg.Analysis.MinMessages)
			fmt.Fprintf(out, "  narrator:      enabled=%v\n", cfg.Narrator.Enabled)
			return nil
		},
	}

	return cmd
}
