package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/chatwrapped/cli/pkg/chat"
)

const (
	deadHourShare   = 0.01
	chaosSpikeLimit = 5
	chaosMultiplier = 2.0
)

// membershipMarkers are the substrings that mark a system record as a
// join/leave/add/remove event. Matching is case-sensitive: the export always
// emits these lowercased.
var membershipMarkers = []string{"joined", "left", "added", "removed"}

// ChaosSpike is one unusually busy day.
type ChaosSpike struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// DateRange spans the first and last record in the chat, system events
// included.
type DateRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// GroupStats holds the chat-wide metrics.
type GroupStats struct {
	TotalMessages    int          `json:"total_messages" yaml:"total_messages"`
	TotalMedia       int          `json:"total_media" yaml:"total_media"`
	BusiestHour      int          `json:"busiest_hour" yaml:"busiest_hour"`
	DeadHours        []int        `json:"dead_hours" yaml:"dead_hours"`
	MembershipEvents int          `json:"membership_events" yaml:"membership_events"`
	ChaosSpikes      []ChaosSpike `json:"chaos_spikes" yaml:"chaos_spikes"`
	DateRange        DateRange    `json:"date_range" yaml:"date_range"`
	Participants     []string     `json:"participants" yaml:"participants"`
}

// ComputeGroupStats reduces the full message sequence to group-wide metrics.
// Hour bucketing, dead hours and chaos spikes consider only non-system
// records; the date range spans every record.
func ComputeGroupStats(messages []chat.Message) GroupStats {
	stats := GroupStats{
		DeadHours:    []int{},
		ChaosSpikes:  []ChaosSpike{},
		Participants: []string{},
	}

	var hourCounts [24]int
	dayCounts := make(map[string]int)
	seen := make(map[string]bool)
	nonSystem := 0

	for _, m := range messages {
		if m.IsSystem() {
			if isMembershipEvent(m.Content) {
				stats.MembershipEvents++
			}
			continue
		}

		nonSystem++
		switch m.Kind {
		case chat.KindMessage:
			stats.TotalMessages++
		case chat.KindMedia:
			stats.TotalMedia++
		}
		hourCounts[m.Timestamp.Hour()]++
		dayCounts[m.Timestamp.Format("2006-01-02")]++

		if !seen[m.Author] {
			seen[m.Author] = true
			stats.Participants = append(stats.Participants, m.Author)
		}
	}

	// Busiest hour: highest count, lowest hour on a tie. All-zero buckets
	// resolve to hour 0.
	for h, c := range hourCounts {
		if c > hourCounts[stats.BusiestHour] {
			stats.BusiestHour = h
		}
	}

	threshold := float64(nonSystem) * deadHourShare
	for h, c := range hourCounts {
		if float64(c) < threshold {
			stats.DeadHours = append(stats.DeadHours, h)
		}
	}

	stats.ChaosSpikes = chaosSpikes(dayCounts)
	stats.DateRange = dateRange(messages)

	return stats
}

func isMembershipEvent(content string) bool {
	for _, marker := range membershipMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

// chaosSpikes returns the days whose activity exceeds twice the mean daily
// count, busiest first, earlier date winning ties, capped at five.
func chaosSpikes(dayCounts map[string]int) []ChaosSpike {
	spikes := []ChaosSpike{}
	if len(dayCounts) == 0 {
		return spikes
	}

	total := 0
	for _, c := range dayCounts {
		total += c
	}
	mean := float64(total) / float64(len(dayCounts))

	for date, c := range dayCounts {
		if float64(c) > mean*chaosMultiplier {
			spikes = append(spikes, ChaosSpike{Date: date, Count: c})
		}
	}

	sort.Slice(spikes, func(i, j int) bool {
		if spikes[i].Count != spikes[j].Count {
			return spikes[i].Count > spikes[j].Count
		}
		return spikes[i].Date < spikes[j].Date
	})

	if len(spikes) > chaosSpikeLimit {
		spikes = spikes[:chaosSpikeLimit]
	}
	return spikes
}

func dateRange(messages []chat.Message) DateRange {
	var r DateRange
	for i, m := range messages {
		if i == 0 {
			r.Start, r.End = m.Timestamp, m.Timestamp
			continue
		}
		if m.Timestamp.Before(r.Start) {
			r.Start = m.Timestamp
		}
		if m.Timestamp.After(r.End) {
			r.End = m.Timestamp
		}
	}
	return r
}
