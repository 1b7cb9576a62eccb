// Package client provides the remote narrator client: an OpenAI-compatible
// chat completions consumer that turns a narrative context and topic summary
// into a personalized slide bundle. It handles model fallback and response
// cleanup; callers handle the template fallback when generation fails
// entirely.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/chatwrapped/cli/config"
	cwerrors "github.com/chatwrapped/cli/pkg/errors"
	"github.com/chatwrapped/cli/pkg/logging"
	"github.com/chatwrapped/cli/pkg/report"
	"github.com/chatwrapped/cli/pkg/stats"
	"github.com/chatwrapped/cli/pkg/topics"
)

// jsonFence strips Markdown code fences some models wrap around JSON output.
var jsonFence = regexp.MustCompile("```json\n?|\n?```")

// Narrator generates slide bundles via a remote chat completions endpoint.
type Narrator struct {
	endpoint string
	apiKey   string
	models   []string
	client   *http.Client
	logger   logging.Logger
}

// NewNarrator builds a Narrator from config. The returned client is safe for
// concurrent use.
func NewNarrator(cfg *config.CLIConfig, logger logging.Logger) *Narrator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Narrator{
		endpoint: cfg.Narrator.Endpoint,
		apiKey:   cfg.Narrator.ResolveAPIKey(),
		models:   cfg.Narrator.Models,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// slideContent is the JSON shape the model is asked to return.
type slideContent struct {
	Intro      string `json:"intro"`
	Yapper     string `json:"yapper"`
	Timeline   string `json:"timeline"`
	NightOwl   string `json:"nightOwl"`
	Drama      string `json:"drama"`
	FinalRoast string `json:"finalRoast"`
	ReportCard struct {
		GPA    string `json:"gpa"`
		Grades []struct {
			Subject string `json:"subject"`
			Grade   string `json:"grade"`
		} `json:"grades"`
		PrincipalNote string `json:"principalNote"`
		GroupName     string `json:"groupName"`
	} `json:"reportCard"`
}

// Generate tries each configured model in order and returns the first
// successfully parsed bundle. Rate limits and malformed responses move on to
// the next model; when every model fails the error wraps ErrNarrator and the
// caller falls back to templates.
func (n *Narrator) Generate(ctx context.Context, narrative stats.NarrativeContext, topicCtx topics.Context) (*report.Bundle, error) {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, logging.RequestIDKey, requestID)
	log := n.logger.WithContext(ctx)

	system := systemPrompt()
	user, err := userPrompt(narrative, topicCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: building prompt: %v", cwerrors.ErrNarrator, err)
	}

	var lastErr error
	for _, model := range n.models {
		log.Debug("trying narrator model", logging.F("model", model))

		content, err := n.complete(ctx, model, system, user)
		if err != nil {
			log.Warn("narrator model failed", logging.F("model", model), logging.Err(err))
			lastErr = err
			continue
		}

		bundle, err := parseSlides(content)
		if err != nil {
			log.Warn("narrator response unusable", logging.F("model", model), logging.Err(err))
			lastErr = err
			continue
		}

		log.Info("narrator generation succeeded", logging.F("model", model))
		return bundle, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no models configured")
	}
	return nil, fmt.Errorf("%w: %v", cwerrors.ErrNarrator, lastErr)
}

// complete runs one chat completion call and returns the raw message content.
func (n *Narrator) complete(ctx context.Context, model, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling %s: %w", n.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return parsed.Choices[0].Message.Content, nil
}

// parseSlides converts raw model output into a bundle, stripping Markdown
// JSON fences first.
func parseSlides(content string) (*report.Bundle, error) {
	cleaned := strings.TrimSpace(jsonFence.ReplaceAllString(content, ""))

	var slides slideContent
	if err := json.Unmarshal([]byte(cleaned), &slides); err != nil {
		return nil, fmt.Errorf("parsing slide JSON: %w", err)
	}
	if slides.Intro == "" {
		return nil, fmt.Errorf("slide JSON missing intro")
	}

	card := report.ReportCard{
		GPA:           slides.ReportCard.GPA,
		PrincipalNote: slides.ReportCard.PrincipalNote,
		Title:         slides.ReportCard.GroupName,
	}
	for _, g := range slides.ReportCard.Grades {
		card.Grades = append(card.Grades, report.Grade{Subject: g.Subject, Grade: g.Grade})
	}

	return &report.Bundle{
		Source:     report.SourceNarrator,
		Intro:      slides.Intro,
		Yapper:     slides.Yapper,
		Timeline:   slides.Timeline,
		NightOwl:   slides.NightOwl,
		Drama:      slides.Drama,
		Closing:    slides.FinalRoast,
		ReportCard: card,
	}, nil
}

func systemPrompt() string {
	return `You are a highly creative AI that generates personalized, context-aware Spotify Wrapped-style content for group chats.

YOUR APPROACH:
1. UNDERSTAND THE GROUP: Analyze the topics they discuss, their inside jokes, the sample messages, and their communication style
2. BE SPECIFIC: Reference actual topics, phrases, and patterns from their chat - don't be generic!
3. PERSONALIZE DEEPLY: Each slide should feel like it was written by someone who actually knows this group
4. ADAPT YOUR TONE: Based on the chat vibe - if they're formal, be witty-formal; if they're chaotic, embrace the chaos
5. CREATE CALLBACKS: Reference specific topics or phrases they use

RULES:
- Maximum 2 sentences per slide
- Use the actual topics and phrases from their chat in creative ways
- Mention specific names with their actual stats
- Create inside-joke energy based on their conversation patterns
- Be clever, not just random
- Report card subjects should reflect what THIS group actually does/discusses`
}

// promptSummary is the trimmed analytics view sent to the model. Full user
// stats stay local; only the top participants travel.
type promptSummary struct {
	TotalMessages    int             `json:"totalMessages"`
	ParticipantCount int             `json:"participantCount"`
	TopYapper        string          `json:"topYapper"`
	GhostKing        string          `json:"ghostKing"`
	NightOwls        []string        `json:"nightOwls"`
	DramaCount       int             `json:"dramaCount"`
	ChaosDay         string          `json:"chaosDay"`
	EmojiSignature   string          `json:"emojiSignature"`
	DateRange        stats.DateRange `json:"dateRange"`
	BusiestHour      int             `json:"busiestHour"`
	TopUsers         []promptUser    `json:"topUsers"`
}

type promptUser struct {
	Name          string   `json:"name"`
	MessageCount  int      `json:"messageCount"`
	MediaCount    int      `json:"mediaCount"`
	YapIndex      string   `json:"yapIndex"`
	CapsRatio     string   `json:"capsRatio"`
	NightOwlRatio string   `json:"nightOwlRatio"`
	TopEmojis     []string `json:"topEmojis"`
}

func userPrompt(narrative stats.NarrativeContext, topicCtx topics.Context) (string, error) {
	summary := promptSummary{
		TotalMessages:    narrative.TotalMessages,
		ParticipantCount: narrative.ParticipantCount,
		TopYapper:        narrative.TopYapper,
		GhostKing:        narrative.GhostKing,
		NightOwls:        narrative.NightOwls,
		DramaCount:       narrative.DramaCount,
		ChaosDay:         narrative.ChaosDay,
		EmojiSignature:   narrative.EmojiSignature,
		DateRange:        narrative.DateRange,
		BusiestHour:      narrative.BusiestHour,
	}
	for i, u := range narrative.UserStats {
		if i == 5 {
			break
		}
		emojis := u.TopEmojis
		if len(emojis) > 3 {
			emojis = emojis[:3]
		}
		summary.TopUsers = append(summary.TopUsers, promptUser{
			Name:          u.Name,
			MessageCount:  u.MessageCount,
			MediaCount:    u.MediaCount,
			YapIndex:      fmt.Sprintf("%.2f", u.YapIndex),
			CapsRatio:     fmt.Sprintf("%.1f%%", u.CapsRatio*100),
			NightOwlRatio: fmt.Sprintf("%.1f%%", u.NightOwlRatio*100),
			TopEmojis:     emojis,
		})
	}

	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Generate a HIGHLY PERSONALIZED Wrapped for this group:\n\n")
	b.WriteString("=== CHAT ANALYTICS ===\n")
	b.Write(summaryJSON)
	b.WriteString("\n\n=== WHAT THEY TALK ABOUT ===\n")
	fmt.Fprintf(&b, "Top Topics: %s\n", orDefault(strings.Join(topicCtx.TopTopics, ", "), "General chat"))
	fmt.Fprintf(&b, "Common Phrases: %s\n", orDefault(strings.Join(topicCtx.CommonPhrases, ", "), "Various"))
	fmt.Fprintf(&b, "Conversation Patterns: %s\n", orDefault(strings.Join(topicCtx.ConversationPatterns, ", "), "Mixed"))

	b.WriteString("\n=== SAMPLE MESSAGES FROM THE CHAT ===\n")
	if len(topicCtx.SampleMessages) == 0 {
		b.WriteString("No samples available\n")
	} else {
		for i, m := range topicCtx.SampleMessages {
			fmt.Fprintf(&b, "%d. %q\n", i+1, m)
		}
	}

	owls := strings.Join(narrative.NightOwls, ", ")
	if owls == "" {
		owls = "the quiet ones"
	}
	chaosDay := orDefault(narrative.ChaosDay, "the busiest day")

	b.WriteString("\n=== YOUR TASK ===\n")
	b.WriteString("Create content that shows you UNDERSTAND this specific group. Reference their topics, adapt to their vibe.\n\n")
	b.WriteString("Return JSON:\n")
	fmt.Fprintf(&b, `{
  "intro": "Opening that references their group dynamics or topics they discuss",
  "yapper": "Personalized roast for %s - be creative with their stats",
  "timeline": "Make %s memorable by connecting it to their conversation style or topics",
  "nightOwl": "Creative take on %s based on the group vibe",
  "drama": "Connect the %d drama moments to what they actually discuss",
  "finalRoast": "Epic group roast that ties together their topics, patterns, and personalities",
  "reportCard": {
    "gpa": "X.X",
    "grades": [
      {"subject": "Subject based on their ACTUAL chat topics", "grade": "A-F"},
      {"subject": "Another topic-relevant subject", "grade": "A-F"},
      {"subject": "Based on their communication style", "grade": "A-F"},
      {"subject": "Reference something from their chats", "grade": "A-F"},
      {"subject": "Final creative subject", "grade": "A-F"}
    ],
    "principalNote": "Note that references their chat topics or inside jokes",
    "groupName": "Creative certificate name based on what they actually discuss"
  }
}
`, narrative.TopYapper, chaosDay, owls, narrative.DramaCount)
	b.WriteString("\nReturn ONLY valid JSON.")

	return b.String(), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
