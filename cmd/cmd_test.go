package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatwrapped/cli/config"
	cwerrors "github.com/chatwrapped/cli/pkg/errors"
	"github.com/chatwrapped/cli/pkg/logging"
	"github.com/chatwrapped/cli/pkg/report"
	"github.com/chatwrapped/cli/pkg/stats"
	"github.com/chatwrapped/cli/pkg/topics"
)

func writeExportFile(t *testing.T, lines int) string {
	t.Helper()

	var buf bytes.Buffer
	for i := 0; i < lines; i++ {
		author := "Alice"
		if i%3 == 0 {
			author = "Bob"
		}
		fmt.Fprintf(&buf, "%02d/01/2024, 10:%02d am - %s: message number %d\n", i%27+1, i%60, author, i)
	}

	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func testConfig() *config.CLIConfig {
	return config.DefaultConfig()
}

func loadTestConfig(cfg *config.CLIConfig) func() (*config.CLIConfig, error) {
	return func() (*config.CLIConfig, error) { return cfg, nil }
}

func TestInitCommand_WritesConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHATWRAPPED_CONFIG_DIR", dir)

	out := &bytes.Buffer{}
	cmd := NewInitCommand(&InitCommandDeps{Out: out})

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, filepath.Join(dir, config.DefaultConfigFile))
	assert.Contains(t, out.String(), "Configuration saved to")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.OutputFormatText, cfg.OutputFormat)
	assert.Equal(t, config.DefaultMinMessages, cfg.Analysis.MinMessages)
}

func TestInitCommand_PreservesExistingSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHATWRAPPED_CONFIG_DIR", dir)

	existing := "output_format: json\nanalysis:\n  min_messages: 25\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte(existing), 0600))

	cmd := NewInitCommand(&InitCommandDeps{Out: &bytes.Buffer{}})
	require.NoError(t, cmd.Execute())

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.OutputFormatJSON, cfg.OutputFormat)
	assert.Equal(t, 25, cfg.Analysis.MinMessages)
}

func TestCheckCommand_ValidExport(t *testing.T) {
	path := writeExportFile(t, 5)
	out := &bytes.Buffer{}

	cmd := NewCheckCommand(&CheckCommandDeps{
		LoadConfig: loadTestConfig(testConfig()),
		Out:        out,
	})
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "looks like a chat export")
}

func TestCheckCommand_RejectsProse(t *testing.T) {
	path := writeFile(t, "Dear diary, nothing happened today.")
	out := &bytes.Buffer{}

	cmd := NewCheckCommand(&CheckCommandDeps{
		LoadConfig: loadTestConfig(testConfig()),
		Out:        out,
	})
	cmd.SetArgs([]string{path})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, cwerrors.IsNotChatExport(err))
	assert.Contains(t, out.String(), "does not look like")
}

func TestCheckCommand_JSONOutput(t *testing.T) {
	path := writeExportFile(t, 5)
	out := &bytes.Buffer{}

	cfg := testConfig()
	cfg.OutputFormat = config.OutputFormatJSON

	cmd := NewCheckCommand(&CheckCommandDeps{LoadConfig: loadTestConfig(cfg), Out: out})
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	var result CheckResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.True(t, result.Valid)
	assert.Equal(t, path, result.File)
}

func TestCheckCommand_MissingFile(t *testing.T) {
	cmd := NewCheckCommand(&CheckCommandDeps{LoadConfig: loadTestConfig(testConfig()), Out: &bytes.Buffer{}})
	cmd.SetArgs([]string{"/nonexistent/chat.txt"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	assert.Error(t, cmd.Execute())
}

func TestStatsCommand_TextOutput(t *testing.T) {
	path := writeExportFile(t, 12)
	out := &bytes.Buffer{}

	cmd := NewStatsCommand(&StatsCommandDeps{LoadConfig: loadTestConfig(testConfig()), Out: out})
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Messages:")
	assert.Contains(t, out.String(), "Participants:  2")
	assert.Contains(t, out.String(), "Alice")
	assert.Contains(t, out.String(), "Bob")
}

func TestStatsCommand_JSONRoundTrip(t *testing.T) {
	path := writeExportFile(t, 12)
	out := &bytes.Buffer{}

	cfg := testConfig()
	cfg.OutputFormat = config.OutputFormatJSON

	cmd := NewStatsCommand(&StatsCommandDeps{LoadConfig: loadTestConfig(cfg), Out: out})
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	var result StatsResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, 12, result.Context.TotalMessages)
	assert.Equal(t, 2, result.Context.ParticipantCount)
}

func TestWrapCommand_DefaultRoast(t *testing.T) {
	path := writeExportFile(t, 20)
	out := &bytes.Buffer{}

	cmd := NewWrapCommand(&WrapCommandDeps{LoadConfig: loadTestConfig(testConfig()), Out: out})
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Brace yourself.")
	assert.Contains(t, out.String(), "Group Chat Academic Record")
}

func TestWrapCommand_ToneFlag(t *testing.T) {
	path := writeExportFile(t, 20)
	out := &bytes.Buffer{}

	cmd := NewWrapCommand(&WrapCommandDeps{LoadConfig: loadTestConfig(testConfig()), Out: out})
	cmd.SetArgs([]string{path, "--tone", "wholesome"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Friendship Certificate")
}

func TestWrapCommand_UnknownTone(t *testing.T) {
	path := writeExportFile(t, 20)

	cmd := NewWrapCommand(&WrapCommandDeps{LoadConfig: loadTestConfig(testConfig()), Out: &bytes.Buffer{}})
	cmd.SetArgs([]string{path, "--tone", "sarcastic"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	assert.Error(t, cmd.Execute())
}

func TestWrapCommand_InsufficientData(t *testing.T) {
	path := writeExportFile(t, 3)

	cmd := NewWrapCommand(&WrapCommandDeps{LoadConfig: loadTestConfig(testConfig()), Out: &bytes.Buffer{}})
	cmd.SetArgs([]string{path})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, cwerrors.IsInsufficientData(err))
}

func TestWrapCommand_GateRejectsProse(t *testing.T) {
	path := writeFile(t, "Just some notes, no timestamps anywhere.")

	cmd := NewWrapCommand(&WrapCommandDeps{LoadConfig: loadTestConfig(testConfig()), Out: &bytes.Buffer{}})
	cmd.SetArgs([]string{path})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, cwerrors.IsNotChatExport(err))
}

type stubGenerator struct {
	bundle *report.Bundle
	err    error
	called bool
}

func (s *stubGenerator) Generate(ctx context.Context, narrative stats.NarrativeContext, topicCtx topics.Context) (*report.Bundle, error) {
	s.called = true
	return s.bundle, s.err
}

func TestWrapCommand_AIToneUsesGenerator(t *testing.T) {
	path := writeExportFile(t, 20)
	out := &bytes.Buffer{}

	stub := &stubGenerator{bundle: &report.Bundle{
		Source: report.SourceNarrator,
		Intro:  "personalized intro",
	}}

	cfg := testConfig()
	cfg.Narrator.Enabled = true
	cfg.OutputFormat = config.OutputFormatJSON

	cmd := NewWrapCommand(&WrapCommandDeps{
		LoadConfig:   loadTestConfig(cfg),
		NewGenerator: func(*config.CLIConfig, logging.Logger) SlideGenerator { return stub },
		Out:          out,
	})
	cmd.SetArgs([]string{path, "--tone", "ai"})

	require.NoError(t, cmd.Execute())
	assert.True(t, stub.called)

	var bundle report.Bundle
	require.NoError(t, json.Unmarshal(out.Bytes(), &bundle))
	assert.Equal(t, report.SourceNarrator, bundle.Source)
	assert.Equal(t, "personalized intro", bundle.Intro)
}

func TestWrapCommand_AIToneFallsBackOnError(t *testing.T) {
	path := writeExportFile(t, 20)
	out := &bytes.Buffer{}

	stub := &stubGenerator{err: cwerrors.ErrNarrator}

	cfg := testConfig()
	cfg.Narrator.Enabled = true

	cmd := NewWrapCommand(&WrapCommandDeps{
		LoadConfig:   loadTestConfig(cfg),
		NewGenerator: func(*config.CLIConfig, logging.Logger) SlideGenerator { return stub },
		Out:          out,
	})
	cmd.SetArgs([]string{path, "--tone", "ai"})

	require.NoError(t, cmd.Execute())
	assert.True(t, stub.called)
	// Roast fallback renders the template copy.
	assert.Contains(t, out.String(), "Brace yourself.")
}

func TestWrapCommand_AIToneDisabledNarrator(t *testing.T) {
	path := writeExportFile(t, 20)
	out := &bytes.Buffer{}

	cmd := NewWrapCommand(&WrapCommandDeps{LoadConfig: loadTestConfig(testConfig()), Out: out})
	cmd.SetArgs([]string{path, "--tone", "ai"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Brace yourself.")
}
