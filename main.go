// Package main provides the chatwrapped CLI entry point.
// chatwrapped parses chat exports and turns them into wrapped-style reports.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chatwrapped/cli/client"
	"github.com/chatwrapped/cli/cmd"
	"github.com/chatwrapped/cli/config"
	"github.com/chatwrapped/cli/pkg/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags and state.
var (
	configPath   string
	outputFormat string
	debug        bool

	// cfg holds the loaded configuration.
	cfg *config.CLIConfig

	// logger is the shared CLI logger.
	logger logging.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chatwrapped",
	Short: "Wrapped-style reports for chat exports",
	Long: `chatwrapped parses an exported chat history, reduces it to
deterministic analytics (who yaps, who ghosts, when the chaos happened) and
renders a wrapped-style report in one of several tones.

Everything runs locally; the chat content only leaves the machine when the
remote narrator is explicitly enabled with --tone ai.

COMMON WORKFLOWS:
  First-time setup:  chatwrapped init
  Validate a file:   chatwrapped check chat.txt
  Inspect analytics: chatwrapped stats chat.txt --output json
  Full report:       chatwrapped wrap chat.txt --tone roast`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadConfigFrom(configPath)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return err
		}

		// Flags override file and environment.
		if outputFormat != "" {
			cfg.OutputFormat = config.OutputFormat(outputFormat)
			if !cfg.OutputFormat.IsValid() {
				return fmt.Errorf("invalid output format %q (must be text, json, or yaml)", outputFormat)
			}
		}
		if debug {
			cfg.Debug = true
		}

		level := logging.LevelInfo
		if cfg.Debug {
			level = logging.LevelDebug
		}
		logger = logging.NewLogger(&logging.Config{
			Level:      level,
			JSONFormat: cfg.LogJSON,
		})

		cmd.SetDefaultConfig(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $CHATWRAPPED_CONFIG_DIR/config.yaml or ~/.chatwrapped/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "",
		"output format: text, json, or yaml (default from config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"enable debug logging")

	rootCmd.AddCommand(cmd.NewInitCommand(nil))
	rootCmd.AddCommand(cmd.NewCheckCommand(nil))

	statsDeps := cmd.DefaultStatsDeps()
	statsDeps.Logger = deferredLogger{}
	rootCmd.AddCommand(cmd.NewStatsCommand(statsDeps))

	wrapDeps := cmd.DefaultWrapDeps()
	wrapDeps.Logger = deferredLogger{}
	wrapDeps.NewGenerator = func(cfg *config.CLIConfig, log logging.Logger) cmd.SlideGenerator {
		return client.NewNarrator(cfg, log)
	}
	rootCmd.AddCommand(cmd.NewWrapCommand(wrapDeps))
}

// deferredLogger resolves the shared logger at call time: the real logger
// only exists after PersistentPreRunE has run, which is later than init.
type deferredLogger struct{}

func (deferredLogger) resolve() logging.Logger {
	if logger != nil {
		return logger
	}
	return logging.NewNopLogger()
}

func (d deferredLogger) Debug(msg string, fields ...logging.Field) { d.resolve().Debug(msg, fields...) }
func (d deferredLogger) Info(msg string, fields ...logging.Field)  { d.resolve().Info(msg, fields...) }
func (d deferredLogger) Warn(msg string, fields ...logging.Field)  { d.resolve().Warn(msg, fields...) }
func (d deferredLogger) Error(msg string, fields ...logging.Field) { d.resolve().Error(msg, fields...) }
func (d deferredLogger) With(fields ...logging.Field) logging.Logger {
	return d.resolve().With(fields...)
}
func (d deferredLogger) WithContext(ctx context.Context) logging.Logger {
	return d.resolve().WithContext(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
