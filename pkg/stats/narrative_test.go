package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatwrapped/cli/pkg/chat"
)

func TestBuildNarrativeContext_EmptyChatDefaults(t *testing.T) {
	ctx := BuildNarrativeContext(nil)

	assert.Equal(t, UnknownParticipant, ctx.TopYapper)
	assert.Equal(t, UnknownParticipant, ctx.GhostKing)
	assert.Empty(t, ctx.NightOwls)
	assert.Zero(t, ctx.DramaCount)
	assert.Equal(t, "", ctx.ChaosDay)
	assert.Equal(t, DefaultEmojiSignature, ctx.EmojiSignature)
	assert.Zero(t, ctx.ParticipantCount)
}

func TestBuildNarrativeContext_YapNormalization(t *testing.T) {
	messages := []chat.Message{
		textAt("Loud", "aaaaaaaaaaaaaaaaaaaa", day(1, 10, 0)),
		textAt("Loud", "aaaaaaaaaaaaaaaaaaaa", day(1, 10, 1)),
		textAt("Quiet", "a", day(1, 10, 2)),
	}

	ctx := BuildNarrativeContext(messages)

	require.Len(t, ctx.UserStats, 2)
	byName := map[string]UserStats{}
	for _, u := range ctx.UserStats {
		byName[u.Name] = u
	}

	assert.InDelta(t, 1.0, byName["Loud"].YapIndex, 1e-9)
	assert.Greater(t, byName["Loud"].YapIndex, byName["Quiet"].YapIndex)
	assert.Equal(t, "Loud", ctx.TopYapper)
}

func TestBuildNarrativeContext_YapNormalizationFloorsDivisorAtOne(t *testing.T) {
	// A media-only participant scores zero; the divisor floor of 1 keeps
	// the normalized value at zero instead of dividing by zero.
	messages := []chat.Message{
		msgAt("A", "<Media omitted>", day(1, 10, 0), chat.KindMedia),
	}

	ctx := BuildNarrativeContext(messages)

	require.Len(t, ctx.UserStats, 1)
	assert.Zero(t, ctx.UserStats[0].YapIndex)
}

func TestBuildNarrativeContext_DramaExclamationBoundary(t *testing.T) {
	messages := []chat.Message{
		textAt("A", "fine!!", day(1, 10, 0)),
		textAt("A", "not fine!!!", day(1, 10, 1)),
	}

	ctx := BuildNarrativeContext(messages)
	// Exactly two exclamation marks stay calm; three cross the line.
	assert.Equal(t, 1, ctx.DramaCount)
}

func TestBuildNarrativeContext_DramaCapsRule(t *testing.T) {
	messages := []chat.Message{
		textAt("A", "WHY WOULD YOU", day(1, 10, 0)),
		textAt("A", "Mixed Case here", day(1, 10, 1)),
		msgAt("A", "<Media omitted>", day(1, 10, 2), chat.KindMedia),
	}

	ctx := BuildNarrativeContext(messages)
	assert.Equal(t, 1, ctx.DramaCount)
}

func TestBuildNarrativeContext_EmojiSignature(t *testing.T) {
	messages := []chat.Message{
		textAt("A", "🔥🔥😂", day(1, 10, 0)),
		textAt("B", "🔥", day(1, 10, 1)),
	}

	ctx := BuildNarrativeContext(messages)
	assert.Equal(t, "🔥", ctx.EmojiSignature)
}

func TestBuildNarrativeContext_ChaosDayFromTopSpike(t *testing.T) {
	var messages []chat.Message
	for d := 1; d <= 4; d++ {
		messages = append(messages, textAt("A", "x", day(d, 10, 0)))
	}
	for i := 0; i < 10; i++ {
		messages = append(messages, textAt("A", "x", day(5, 10, i)))
	}

	ctx := BuildNarrativeContext(messages)
	assert.Equal(t, "2024-01-05", ctx.ChaosDay)
}

func TestBuildNarrativeContext_TwoAuthorScenario(t *testing.T) {
	// 12 messages, two authors. Night owl sends 9 of her 10 between
	// midnight and five; the other participant keeps office hours.
	var messages []chat.Message
	for i := 0; i < 9; i++ {
		messages = append(messages, textAt("Nocturnal", "up again", day(1+i, 2, 0)))
	}
	messages = append(messages, textAt("Nocturnal", "lunch", day(10, 13, 0)))
	messages = append(messages, textAt("Daywalker", "morning", day(1, 9, 0)))
	messages = append(messages, textAt("Daywalker", "morning again", day(2, 9, 0)))

	ctx := BuildNarrativeContext(messages)

	assert.Equal(t, 12, ctx.TotalMessages)
	assert.Equal(t, 2, ctx.ParticipantCount)
	assert.Equal(t, "Nocturnal", ctx.TopYapper)
	assert.Equal(t, []string{"Nocturnal"}, ctx.NightOwls)

	byName := map[string]UserStats{}
	for _, u := range ctx.UserStats {
		byName[u.Name] = u
	}
	assert.InDelta(t, 0.9, byName["Nocturnal"].NightOwlRatio, 1e-9)
	assert.Zero(t, byName["Daywalker"].NightOwlRatio)
}

func TestBuildNarrativeContext_Deterministic(t *testing.T) {
	messages := []chat.Message{
		textAt("Alice", "hello 🔥!!!", day(1, 2, 0)),
		textAt("Bob", "HI THERE", day(1, 10, 0)),
		msgAt("Alice", "<Media omitted>", day(2, 10, 0), chat.KindMedia),
	}

	first := BuildNarrativeContext(messages)
	second := BuildNarrativeContext(messages)
	assert.Equal(t, first, second)
}
