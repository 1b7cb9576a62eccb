package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chatwrapped/cli/config"
	"github.com/chatwrapped/cli/pkg/chat"
	"github.com/chatwrapped/cli/pkg/logging"
	"github.com/chatwrapped/cli/pkg/stats"
)

// StatsResult is the stats command payload: the full narrative context plus
// parse diagnostics.
type StatsResult struct {
	SkippedLines int                    `json:"skipped_lines" yaml:"skipped_lines"`
	Context      stats.NarrativeContext `json:"context" yaml:"context"`
}

// StatsCommandDeps holds the dependencies for the stats command.
type StatsCommandDeps struct {
	LoadConfig func() (*config.CLIConfig, error)
	Logger     logging.Logger

	// Out overrides stdout for tests.
	Out io.Writer
}

// DefaultStatsDeps returns the default dependencies for production use.
func DefaultStatsDeps() *StatsCommandDeps {
	return &StatsCommandDeps{
		LoadConfig: LoadActiveConfig,
	}
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(deps *StatsCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultStatsDeps()
	}

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Parse a chat export and print its analytics",
		Long: `Stats parses the export and prints the full analytics reduction: per-user
metrics (message counts, caps ratio, night owl ratio, yap index, top emojis),
group metrics (busiest hour, dead hours, chaos spikes) and the narrative
superlatives the report slides are built from.`,
		Example: `  # Human-readable summary
  chatwrapped stats chat.txt

  # Structured output for scripting
  chatwrapped stats chat.txt --output json`,
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

			parsed := chat.Parse(string(data))
			log.Debug("parsed export",
				logging.F("file", args[0]),
				logging.F("messages", len(parsed.Messages)),
				logging.F("skipped_lines", parsed.SkippedLines))

			result := StatsResult{
				SkippedLines: parsed.SkippedLines,
				Context:      stats.BuildNarrativeContext(parsed.Messages),
			}

			return renderOutput(out, cfg.OutputFormat, result, func(w io.Writer) {
				writeStatsText(w, result)
			})
		},
	}

	return cmd
}

func writeStatsText(w io.Writer, result StatsResult) {
	ctx := result.Context

	fmt.Fprintf(w, "Messages:      %d text, %d media\n", ctx.TotalMessages, ctx.GroupStats.TotalMedia)
	fmt.Fprintf(w, "Participants:  %d\n", ctx.ParticipantCount)
	if !ctx.DateRange.Start.IsZero() {
		fmt.Fprintf(w, "Date range:    %s to %s\n",
			ctx.DateRange.Start.Format("2006-01-02"), ctx.DateRange.End.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "Busiest hour:  %02d:00\n", ctx.BusiestHour)
	fmt.Fprintf(w, "Top yapper:    %s\n", ctx.TopYapper)
	fmt.Fprintf(w, "Ghost king:    %s\n", ctx.GhostKing)
	if len(ctx.NightOwls) > 0 {
		fmt.Fprintf(w, "Night owls:    %s\n", strings.Join(ctx.NightOwls, ", "))
	}
	fmt.Fprintf(w, "Drama count:   %d\n", ctx.DramaCount)
	if ctx.ChaosDay != "" {
		fmt.Fprintf(w, "Chaos day:     %s\n", ctx.ChaosDay)
	}
	fmt.Fprintf(w, "Emoji:         %s\n", ctx.EmojiSignature)
	if result.SkippedLines > 0 {
		fmt.Fprintf(w, "Skipped lines: %d\n", result.SkippedLines)
	}

	fmt.Fprintln(w)
	for _, u := range ctx.UserStats {
		fmt.Fprintf(w, "  %-20s %5d msgs  %4d media  yap %.2f  night %3.0f%%\n",
			u.Name, u.MessageCount, u.MediaCount, u.YapIndex, u.NightOwlRatio*100)
	}
}
