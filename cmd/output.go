// Package cmd provides CLI commands for the chatwrapped tool.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chatwrapped/cli/config"
)

// activeConfig is the configuration loaded by the root command's
// PersistentPreRun, shared by the default deps of every subcommand.
var activeConfig *config.CLIConfig

// SetDefaultConfig stores the configuration loaded at startup so subcommand
// default deps can reuse it instead of re-reading the file.
func SetDefaultConfig(cfg *config.CLIConfig) {
	activeConfig = cfg
}

// LoadActiveConfig returns the startup configuration when present, falling
// back to a fresh load. It is the default LoadConfig dep for all commands.
func LoadActiveConfig() (*config.CLIConfig, error) {
	if activeConfig != nil {
		return activeConfig, nil
	}
	return config.LoadConfig()
}

// renderOutput writes v to w in the requested format. The text renderer is a
// callback so each command keeps its human-readable layout next to its data
// types.
func renderOutput(w io.Writer, format config.OutputFormat, v interface{}, text func(io.Writer)) error {
	switch format {
	case config.OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputFormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		text(w)
		return nil
	}
}

// readExport loads the chat export file. A missing or unreadable file is an
// immediate user-facing error.
func readExport(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}
	return data, nil
}
