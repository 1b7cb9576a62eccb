package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chatwrapped/cli/config"
	"github.com/chatwrapped/cli/pkg/chat"
	cwerrors "github.com/chatwrapped/cli/pkg/errors"
	"github.com/chatwrapped/cli/pkg/logging"
	"github.com/chatwrapped/cli/pkg/report"
	"github.com/chatwrapped/cli/pkg/stats"
	"github.com/chatwrapped/cli/pkg/topics"
)

// SlideGenerator produces a bundle from the analytics, typically the remote
// narrator. Implementations return an error to trigger the template fallback.
type SlideGenerator interface {
	Generate(ctx context.Context, narrative stats.NarrativeContext, topicCtx topics.Context) (*report.Bundle, error)
}

// WrapCommandDeps holds the dependencies for the wrap command.
type WrapCommandDeps struct {
	LoadConfig func() (*config.CLIConfig, error)
	Logger     logging.Logger

	// NewGenerator builds the remote slide generator for the ai tone.
	// Left nil in tests that never touch the narrator path.
	NewGenerator func(cfg *config.CLIConfig, logger logging.Logger) SlideGenerator

	// Out overrides stdout for tests.
	Out io.Writer
}

// DefaultWrapDeps returns the default dependencies for production use.
// The generator hook is wired in main to avoid an import cycle with client.
func DefaultWrapDeps() *WrapCommandDeps {
	return &WrapCommandDeps{
		LoadConfig: LoadActiveConfig,
	}
}

// NewWrapCommand creates the wrap command.
func NewWrapCommand(deps *WrapCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultWrapDeps()
	}

	var tone string

	cmd := &cobra.Command{
		Use:   "wrap <file>",
		Short: "Generate a wrapped report from a chat export",
		Long: `Wrap parses the export, reduces it to analytics and renders the slide
bundle in the chosen tone.

Tones:
  roast      savage and sarcastic (default)
  corporate  buzzword-heavy performance review
  wholesome  warm and supportive
  ai         remote narrator with personalized content; falls back to the
             roast template when the narrator is disabled or fails`,
		Example: `  # Default roast report
  chatwrapped wrap chat.txt

  # Corporate tone as JSON
  chatwrapped wrap chat.txt --tone corporate --output json

  # Remote narrator (requires narrator.enabled and an API key)
  chatwrapped wrap chat.txt --tone ai`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return err
			}

			log := deps.Logger
			if log == nil {
				log = logging.NewNopLogger()
			}
			out := deps.Out
			if out == nil {
				out = cmd.OutOrStdout()
			}

			data, err := readExport(args[0])
			if err != nil {
				return err
			}

			if !chat.LooksLikeExport(data) {
				return fmt.Errorf("%w: %s", cwerrors.ErrNotChatExport, args[0])
			}

			parsed := chat.Parse(string(data))
			total := len(parsed.Messages)
			if total < cfg.Analysis.MinMessages {
				return fmt.Errorf("%w: %d messages parsed, need at least %d",
					cwerrors.ErrInsufficientData, total, cfg.Analysis.MinMessages)
			}
			log.Debug("parsed export",
				logging.F("messages", total),
				logging.F("skipped_lines", parsed.SkippedLines))

			narrative := stats.BuildNarrativeContext(parsed.Messages)
			topicCtx := topics.Extract(parsed.Messages)

			bundle, err := generateBundle(cmd.Context(), deps, cfg, log, report.Tone(tone), narrative, topicCtx)
			if err != nil {
				return err
			}

			return renderOutput(out, cfg.OutputFormat, bundle, func(w io.Writer) {
				writeBundleText(w, bundle)
			})
		},
	}

	cmd.Flags().StringVar(&tone, "tone", string(report.ToneRoast),
		"report tone: roast, corporate, wholesome, or ai")

	return cmd
}

// generateBundle resolves the tone: template tones render directly, the ai
// tone tries the narrator and falls back to roast on any failure.
func generateBundle(ctx context.Context, deps *WrapCommandDeps, cfg *config.CLIConfig, log logging.Logger,
	tone report.Tone, narrative stats.NarrativeContext, topicCtx topics.Context) (*report.Bundle, error) {

	if tone != report.ToneAI {
		return report.Render(tone, narrative)
	}

	if cfg.Narrator.Enabled && deps.NewGenerator != nil {
		generator := deps.NewGenerator(cfg, log)
		bundle, err := generator.Generate(ctx, narrative, topicCtx)
		if err == nil {
			return bundle, nil
		}
		log.Warn("narrator failed, falling back to templates", logging.Err(err))
	} else {
		log.Debug("narrator disabled, using templates")
	}

	return report.Render(report.ToneRoast, narrative)
}

func writeBundleText(w io.Writer, bundle *report.Bundle) {
	fmt.Fprintln(w, bundle.Intro)
	fmt.Fprintln(w)
	fmt.Fprintln(w, bundle.Yapper)
	fmt.Fprintln(w)
	fmt.Fprintln(w, bundle.Timeline)
	fmt.Fprintln(w)
	fmt.Fprintln(w, bundle.NightOwl)
	fmt.Fprintln(w)
	fmt.Fprintln(w, bundle.Drama)
	fmt.Fprintln(w)
	fmt.Fprintln(w, bundle.Closing)
	fmt.Fprintln(w)

	card := bundle.ReportCard
	fmt.Fprintf(w, "=== %s ===\n", card.Title)
	for _, g := range card.Grades {
		fmt.Fprintf(w, "  %-28s %s\n", g.Subject, g.Grade)
	}
	fmt.Fprintf(w, "  GPA: %s\n", card.GPA)
	fmt.Fprintf(w, "  %s\n", card.PrincipalNote)
}
