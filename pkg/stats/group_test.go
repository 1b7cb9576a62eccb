package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatwrapped/cli/pkg/chat"
)

func TestComputeGroupStats_CountsAndParticipants(t *testing.T) {
	messages := []chat.Message{
		textAt("Alice", "one", day(1, 10, 0)),
		msgAt("Bob", "<Media omitted>", day(1, 10, 1), chat.KindMedia),
		textAt("Bob", "two", day(1, 10, 2)),
		msgAt(chat.SystemAuthor, "Carol joined", day(1, 10, 3), chat.KindSystem),
		textAt("Carol", "three", day(1, 10, 4)),
	}

	stats := ComputeGroupStats(messages)

	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, 1, stats.TotalMedia)
	assert.Equal(t, 1, stats.MembershipEvents)
	// First-seen order, system author excluded.
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, stats.Participants)
}

func TestComputeGroupStats_BusiestHourLowestOnTie(t *testing.T) {
	messages := []chat.Message{
		textAt("A", "x", day(1, 9, 0)),
		textAt("A", "x", day(1, 9, 30)),
		textAt("A", "x", day(1, 21, 0)),
		textAt("A", "x", day(1, 21, 30)),
	}

	stats := ComputeGroupStats(messages)
	assert.Equal(t, 9, stats.BusiestHour)
}

func TestComputeGroupStats_DeadHoursStrictThreshold(t *testing.T) {
	// 100 messages in hour 10, 1 in hour 3: the threshold is 1.01, so hour 3
	// (exactly 1 message) is still dead while hour 10 is not.
	var messages []chat.Message
	for i := 0; i < 100; i++ {
		messages = append(messages, textAt("A", "x", day(1, 10, i%60)))
	}
	messages = append(messages, textAt("A", "x", day(1, 3, 0)))

	stats := ComputeGroupStats(messages)

	assert.Contains(t, stats.DeadHours, 3)
	assert.NotContains(t, stats.DeadHours, 10)
	// Every untouched hour is dead too.
	assert.Len(t, stats.DeadHours, 23)
}

func TestComputeGroupStats_MembershipEventsCaseSensitive(t *testing.T) {
	messages := []chat.Message{
		msgAt(chat.SystemAuthor, "Alice joined using this group's invite link", day(1, 10, 0), chat.KindSystem),
		msgAt(chat.SystemAuthor, "Bob left", day(1, 10, 1), chat.KindSystem),
		msgAt(chat.SystemAuthor, "Carol added Dave", day(1, 10, 2), chat.KindSystem),
		msgAt(chat.SystemAuthor, "Eve removed Frank", day(1, 10, 3), chat.KindSystem),
		msgAt(chat.SystemAuthor, "Dana changed the subject", day(1, 10, 4), chat.KindSystem),
	}

	stats := ComputeGroupStats(messages)
	assert.Equal(t, 4, stats.MembershipEvents)
}

func TestComputeGroupStats_ChaosSpikeThreshold(t *testing.T) {
	// Daily counts 1,1,1,1,10: mean 2.8, threshold 5.6, only the 10 spikes.
	var messages []chat.Message
	for d := 1; d <= 4; d++ {
		messages = append(messages, textAt("A", "x", day(d, 10, 0)))
	}
	for i := 0; i < 10; i++ {
		messages = append(messages, textAt("A", "x", day(5, 10, i)))
	}

	stats := ComputeGroupStats(messages)

	require.Len(t, stats.ChaosSpikes, 1)
	assert.Equal(t, "2024-01-05", stats.ChaosSpikes[0].Date)
	assert.Equal(t, 10, stats.ChaosSpikes[0].Count)
}

func TestComputeGroupStats_UniformDaysHaveNoSpikes(t *testing.T) {
	var messages []chat.Message
	for d := 1; d <= 5; d++ {
		messages = append(messages, textAt("A", "x", day(d, 10, 0)))
	}

	stats := ComputeGroupStats(messages)
	assert.Empty(t, stats.ChaosSpikes)
}

func TestComputeGroupStats_ChaosSpikesOrderedAndCapped(t *testing.T) {
	// Six spike days over a quiet baseline; only the top five survive,
	// busiest first, earlier date first on equal counts.
	var messages []chat.Message
	for d := 1; d <= 20; d++ {
		messages = append(messages, textAt("A", "x", day(d, 10, 0)))
	}
	spikes := map[int]int{21: 30, 22: 40, 23: 30, 24: 50, 25: 35, 26: 45}
	for d, n := range spikes {
		for i := 0; i < n; i++ {
			messages = append(messages, textAt("A", "x", day(d, 11, i%60)))
		}
	}

	stats := ComputeGroupStats(messages)

	require.Len(t, stats.ChaosSpikes, 5)
	assert.Equal(t, "2024-01-24", stats.ChaosSpikes[0].Date)
	assert.Equal(t, "2024-01-26", stats.ChaosSpikes[1].Date)
	assert.Equal(t, "2024-01-22", stats.ChaosSpikes[2].Date)
	assert.Equal(t, "2024-01-25", stats.ChaosSpikes[3].Date)
	// 30-count tie resolves to the earlier date.
	assert.Equal(t, "2024-01-21", stats.ChaosSpikes[4].Date)
}

func TestComputeGroupStats_DateRangeIncludesSystemRecords(t *testing.T) {
	messages := []chat.Message{
		msgAt(chat.SystemAuthor, "Alice joined", day(1, 8, 0), chat.KindSystem),
		textAt("Alice", "hi", day(2, 10, 0)),
		msgAt(chat.SystemAuthor, "Alice left", day(3, 23, 0), chat.KindSystem),
	}

	stats := ComputeGroupStats(messages)

	assert.Equal(t, day(1, 8, 0), stats.DateRange.Start)
	assert.Equal(t, day(3, 23, 0), stats.DateRange.End)
}

func TestComputeGroupStats_Empty(t *testing.T) {
	stats := ComputeGroupStats(nil)

	assert.Zero(t, stats.TotalMessages)
	assert.Zero(t, stats.BusiestHour)
	assert.Empty(t, stats.ChaosSpikes)
	assert.Empty(t, stats.Participants)
	assert.True(t, stats.DateRange.Start.Equal(time.Time{}))
}
