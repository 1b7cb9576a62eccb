package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, OutputFormatText, cfg.OutputFormat)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultMinMessages, cfg.Analysis.MinMessages)
	assert.False(t, cfg.Narrator.Enabled)
	assert.Equal(t, DefaultNarratorEndpoint, cfg.Narrator.Endpoint)
	assert.Equal(t, DefaultNarratorModels, cfg.Narrator.Models)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv("CHATWRAPPED_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, OutputFormatText, cfg.OutputFormat)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHATWRAPPED_CONFIG_DIR", dir)

	content := `output_format: json
timeout: 90s
debug: true
analysis:
  min_messages: 25
narrator:
  enabled: true
  endpoint: https://llm.internal/v1/chat/completions
  api_key_env: MY_TOKEN
  models:
    - model-a
    - model-b
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, OutputFormatJSON, cfg.OutputFormat)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 25, cfg.Analysis.MinMessages)
	assert.True(t, cfg.Narrator.Enabled)
	assert.Equal(t, "https://llm.internal/v1/chat/completions", cfg.Narrator.Endpoint)
	assert.Equal(t, "MY_TOKEN", cfg.Narrator.APIKeyEnv)
	assert.Equal(t, []string{"model-a", "model-b"}, cfg.Narrator.Models)
}

func TestLoadConfigFrom_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_format: yaml\n"), 0600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, OutputFormatYAML, cfg.OutputFormat)

	_, err = LoadConfigFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHATWRAPPED_CONFIG_DIR", dir)

	content := "output_format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600))

	t.Setenv("CHATWRAPPED_OUTPUT_FORMAT", "yaml")
	t.Setenv("CHATWRAPPED_TIMEOUT", "30s")
	t.Setenv("CHATWRAPPED_NARRATOR_MODELS", "only-model, second-model")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, OutputFormatYAML, cfg.OutputFormat)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"only-model", "second-model"}, cfg.Narrator.Models)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHATWRAPPED_CONFIG_DIR", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("output_format: [oops"), 0600))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CLIConfig)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(c *CLIConfig) {}},
		{name: "zero timeout", mutate: func(c *CLIConfig) { c.Timeout = 0 }, wantErr: true},
		{name: "bad output format", mutate: func(c *CLIConfig) { c.OutputFormat = "xml" }, wantErr: true},
		{name: "zero min messages", mutate: func(c *CLIConfig) { c.Analysis.MinMessages = 0 }, wantErr: true},
		{name: "narrator enabled without models", mutate: func(c *CLIConfig) {
			c.Narrator.Enabled = true
			c.Narrator.Models = nil
		}, wantErr: true},
		{name: "narrator enabled without endpoint", mutate: func(c *CLIConfig) {
			c.Narrator.Enabled = true
			c.Narrator.Endpoint = ""
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHATWRAPPED_CONFIG_DIR", dir)

	cfg := DefaultConfig()
	cfg.OutputFormat = OutputFormatJSON
	cfg.Timeout = 45 * time.Second
	cfg.Analysis.MinMessages = 20

	require.NoError(t, SaveConfig(cfg))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, OutputFormatJSON, loaded.OutputFormat)
	assert.Equal(t, 45*time.Second, loaded.Timeout)
	assert.Equal(t, 20, loaded.Analysis.MinMessages)
}

func TestResolveAPIKey(t *testing.T) {
	n := &NarratorConfig{APIKey: "literal", APIKeyEnv: "CW_TEST_KEY"}
	assert.Equal(t, "literal", n.ResolveAPIKey())

	n.APIKey = ""
	t.Setenv("CW_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", n.ResolveAPIKey())
}

func TestOutputFormat(t *testing.T) {
	assert.True(t, OutputFormatText.IsValid())
	assert.True(t, OutputFormatJSON.IsValid())
	assert.True(t, OutputFormatYAML.IsValid())
	assert.False(t, OutputFormat("xml").IsValid())
	assert.Equal(t, "json", OutputFormatJSON.String())
}
