package stats

import (
	"sort"
	"strings"

	"github.com/chatwrapped/cli/pkg/chat"
)

const (
	// UnknownParticipant stands in for superlatives when the chat has no
	// eligible participant.
	UnknownParticipant = "Unknown"

	// DefaultEmojiSignature is used when the chat contains no emoji at all.
	DefaultEmojiSignature = "💬"

	nightOwlThreshold = 0.1
	nightOwlLimit     = 3
	dramaCapsRatio    = 0.5
	dramaExclamations = 2
)

// NarrativeContext is the single flattened input the slide generators and the
// remote narrator work from.
type NarrativeContext struct {
	TopYapper        string      `json:"top_yapper" yaml:"top_yapper"`
	GhostKing        string      `json:"ghost_king" yaml:"ghost_king"`
	NightOwls        []string    `json:"night_owls" yaml:"night_owls"`
	DramaCount       int         `json:"drama_count" yaml:"drama_count"`
	ChaosDay         string      `json:"chaos_day" yaml:"chaos_day"`
	EmojiSignature   string      `json:"emoji_signature" yaml:"emoji_signature"`
	TotalMessages    int         `json:"total_messages" yaml:"total_messages"`
	ParticipantCount int         `json:"participant_count" yaml:"participant_count"`
	DateRange        DateRange   `json:"date_range" yaml:"date_range"`
	BusiestHour      int         `json:"busiest_hour" yaml:"busiest_hour"`
	UserStats        []UserStats `json:"user_stats" yaml:"user_stats"`
	GroupStats       GroupStats  `json:"group_stats" yaml:"group_stats"`
}

// BuildNarrativeContext runs the full reduction: group stats, per-user stats
// for every participant, yap normalization and the narrative superlatives.
// Deterministic for a given message sequence.
func BuildNarrativeContext(messages []chat.Message) NarrativeContext {
	group := ComputeGroupStats(messages)

	users := make([]UserStats, 0, len(group.Participants))
	for _, author := range group.Participants {
		users = append(users, ComputeUserStats(messages, author))
	}

	// Normalize yap indices to [0,1] by the maximum. The divisor floor of 1
	// keeps an all-zero chat at zero instead of dividing by zero.
	maxYap := 1.0
	for _, u := range users {
		if u.YapIndex > maxYap {
			maxYap = u.YapIndex
		}
	}
	for i := range users {
		users[i].YapIndex /= maxYap
	}

	ctx := NarrativeContext{
		TopYapper:        UnknownParticipant,
		GhostKing:        UnknownParticipant,
		NightOwls:        []string{},
		ChaosDay:         "",
		EmojiSignature:   DefaultEmojiSignature,
		TotalMessages:    group.TotalMessages,
		ParticipantCount: len(group.Participants),
		DateRange:        group.DateRange,
		BusiestHour:      group.BusiestHour,
		UserStats:        users,
		GroupStats:       group,
	}

	if top := maxBy(users, func(u UserStats) float64 { return u.YapIndex }); top != "" {
		ctx.TopYapper = top
	}
	if ghost := maxBy(users, func(u UserStats) float64 { return u.AvgReplyGapHours }); ghost != "" {
		ctx.GhostKing = ghost
	}

	byNight := make([]UserStats, len(users))
	copy(byNight, users)
	sort.SliceStable(byNight, func(i, j int) bool {
		return byNight[i].NightOwlRatio > byNight[j].NightOwlRatio
	})
	for _, u := range byNight {
		if u.NightOwlRatio > nightOwlThreshold && len(ctx.NightOwls) < nightOwlLimit {
			ctx.NightOwls = append(ctx.NightOwls, u.Name)
		}
	}

	ctx.DramaCount = countDrama(messages)

	if len(group.ChaosSpikes) > 0 {
		ctx.ChaosDay = group.ChaosSpikes[0].Date
	}

	if sig := emojiSignature(messages); sig != "" {
		ctx.EmojiSignature = sig
	}

	return ctx
}

// maxBy returns the name of the user with the highest key, first wins on
// ties, "" when the slice is empty.
func maxBy(users []UserStats, key func(UserStats) float64) string {
	if len(users) == 0 {
		return ""
	}
	best := 0
	for i := 1; i < len(users); i++ {
		if key(users[i]) > key(users[best]) {
			best = i
		}
	}
	return users[best].Name
}

// countDrama counts text messages that either shout (caps ratio above half)
// or carry more than two exclamation marks.
func countDrama(messages []chat.Message) int {
	count := 0
	for _, m := range messages {
		if m.Kind != chat.KindMessage {
			continue
		}
		letters, caps := countCaps(m.Content)
		shouting := letters > 0 && float64(caps)/float64(letters) > dramaCapsRatio
		if shouting || strings.Count(m.Content, "!") > dramaExclamations {
			count++
		}
	}
	return count
}

// emojiSignature is the single most used emoji across all text messages, ""
// when there are none.
func emojiSignature(messages []chat.Message) string {
	var all []string
	for _, m := range messages {
		if m.Kind == chat.KindMessage {
			all = append(all, extractEmojis(m.Content)...)
		}
	}
	top := topEmojis(all, 1)
	if len(top) == 0 {
		return ""
	}
	return top[0]
}
