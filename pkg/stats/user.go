// Package stats reduces a parsed chat into per-user metrics, group-wide
// metrics and the narrative context the slide generators consume. Every
// reducer is a pure function of its input: no shared state, identical input
// yields identical output.
package stats

import (
	"sort"
	"time"

	"github.com/chatwrapped/cli/pkg/chat"
)

const (
	// nightStartHour..nightEndHour is the half-open local-time window that
	// counts as night activity.
	nightStartHour = 0
	nightEndHour   = 5

	// maxReplyGap caps which consecutive-message deltas count as reply
	// gaps; anything longer is a conversation break, not a reply.
	maxReplyGap = 24 * time.Hour

	topEmojiLimit = 5
)

// UserStats holds the per-author metrics for one participant.
type UserStats struct {
	Name             string   `json:"name" yaml:"name"`
	MessageCount     int      `json:"message_count" yaml:"message_count"`
	MediaCount       int      `json:"media_count" yaml:"media_count"`
	AvgMessageLength float64  `json:"avg_message_length" yaml:"avg_message_length"`
	CapsRatio        float64  `json:"caps_ratio" yaml:"caps_ratio"`
	NightOwlRatio    float64  `json:"night_owl_ratio" yaml:"night_owl_ratio"`
	AvgReplyGapHours float64  `json:"avg_reply_gap_hours" yaml:"avg_reply_gap_hours"`
	YapIndex         float64  `json:"yap_index" yaml:"yap_index"`
	TopEmojis        []string `json:"top_emojis" yaml:"top_emojis"`
}

func isNightHour(t time.Time) bool {
	h := t.Hour()
	return h >= nightStartHour && h < nightEndHour
}

// countCaps returns the Latin letter count and the uppercase Latin letter
// count in text. Non-Latin scripts are deliberately ignored: the caps ratio
// measures SHOUTING, which only Latin case can express here.
func countCaps(text string) (letters, caps int) {
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
			caps++
		case r >= 'a' && r <= 'z':
			letters++
		}
	}
	return letters, caps
}

// yapIndex scores how much a participant dominates the chat:
// one point per message, half a point per average character, ten points per
// unit of caps ratio.
func yapIndex(messageCount int, avgLength, capsRatio float64) float64 {
	return float64(messageCount) + 0.5*avgLength + 10*capsRatio
}

// ComputeUserStats reduces messages to the metrics for a single author.
// System records never contribute. An author absent from messages yields
// zero-valued stats rather than an error; callers derive the author set from
// ComputeGroupStats so that case does not arise in practice.
func ComputeUserStats(messages []chat.Message, author string) UserStats {
	var own []chat.Message
	for _, m := range messages {
		if m.Author == author && !m.IsSystem() {
			own = append(own, m)
		}
	}

	stats := UserStats{Name: author, TopEmojis: []string{}}

	var totalLength, totalLetters, totalCaps int
	var emojis []string
	for _, m := range own {
		switch m.Kind {
		case chat.KindMessage:
			stats.MessageCount++
			totalLength += len([]rune(m.Content))
			letters, caps := countCaps(m.Content)
			totalLetters += letters
			totalCaps += caps
			emojis = append(emojis, extractEmojis(m.Content)...)
		case chat.KindMedia:
			stats.MediaCount++
		}
	}

	if stats.MessageCount > 0 {
		stats.AvgMessageLength = float64(totalLength) / float64(stats.MessageCount)
	}
	if totalLetters > 0 {
		stats.CapsRatio = float64(totalCaps) / float64(totalLetters)
	}

	if len(own) > 0 {
		night := 0
		for _, m := range own {
			if isNightHour(m.Timestamp) {
				night++
			}
		}
		stats.NightOwlRatio = float64(night) / float64(len(own))
	}

	stats.AvgReplyGapHours = avgReplyGapHours(own)
	stats.TopEmojis = topEmojis(emojis, topEmojiLimit)
	stats.YapIndex = yapIndex(stats.MessageCount, stats.AvgMessageLength, stats.CapsRatio)

	return stats
}

// avgReplyGapHours averages the deltas between consecutive messages from the
// same author, sorted by time, ignoring gaps of a day or more. Returns 0 when
// no gap qualifies.
func avgReplyGapHours(own []chat.Message) float64 {
	if len(own) < 2 {
		return 0
	}

	sorted := make([]chat.Message, len(own))
	copy(sorted, own)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var total time.Duration
	count := 0
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Timestamp.Sub(sorted[i-1].Timestamp)
		if gap < maxReplyGap {
			total += gap
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total.Hours() / float64(count)
}
