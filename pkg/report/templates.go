package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/chatwrapped/cli/pkg/stats"
)

// yapperShare is the top yapper's percentage of all text messages, rounded.
func yapperShare(ctx stats.NarrativeContext) int {
	if ctx.TotalMessages == 0 {
		return 0
	}
	for _, u := range ctx.UserStats {
		if u.Name == ctx.TopYapper {
			return int(math.Round(float64(u.MessageCount) / float64(ctx.TotalMessages) * 100))
		}
	}
	return 0
}

func topSpikeCount(ctx stats.NarrativeContext) int {
	if len(ctx.GroupStats.ChaosSpikes) == 0 {
		return 0
	}
	return ctx.GroupStats.ChaosSpikes[0].Count
}

var roastTemplate = &Template{
	ID:   ToneRoast,
	Tone: "Savage, sarcastic, brutally honest",

	Intro: func(ctx stats.NarrativeContext) string {
		return fmt.Sprintf("Brace yourself. We analyzed %s messages from %d people who clearly have nothing better to do.",
			formatCount(ctx.TotalMessages), ctx.ParticipantCount)
	},

	Yapper: func(ctx stats.NarrativeContext) string {
		return fmt.Sprintf("%s sent %d%% of all messages. Touch grass? Never heard of it.",
			ctx.TopYapper, yapperShare(ctx))
	},

	Timeline: func(ctx stats.NarrativeContext) string {
		count := topSpikeCount(ctx)
		date := formatDate(ctx.ChaosDay)
		if date == unknownDate || count == 0 {
			return "No major chaos spikes detected. Either y'all are boring, or you spread the madness evenly."
		}
		return fmt.Sprintf("Peak chaos: %s with %d messages. Y'all really had nothing else going on that day, huh?", date, count)
	},

	NightOwl: func(ctx stats.NarrativeContext) string {
		if len(ctx.NightOwls) == 0 {
			return "Surprisingly, everyone here has a healthy sleep schedule. Boring."
		}
		verb := "are"
		if len(ctx.NightOwls) == 1 {
			verb = "is"
		}
		return fmt.Sprintf("%s %s terminally online at 3 AM. Sleep is clearly optional.",
			strings.Join(ctx.NightOwls, ", "), verb)
	},

	Drama: func(ctx stats.NarrativeContext) string {
		if ctx.DramaCount < 10 {
			return "Barely any drama detected. This group chat is disturbingly peaceful. Suspicious."
		}
		return fmt.Sprintf("%d messages were ALL CAPS or ended in excessive exclamation marks. The drama is REAL!!!", ctx.DramaCount)
	},

	Closing: func(ctx stats.NarrativeContext) string {
		avg := 0
		if ctx.ParticipantCount > 0 {
			avg = int(math.Round(float64(ctx.TotalMessages) / float64(ctx.ParticipantCount)))
		}
		return fmt.Sprintf("In conclusion: %d messages per person on average. This chat is a productivity black hole.", avg)
	},

	Card: func(ctx stats.NarrativeContext) ReportCard {
		yapScore := 0.0
		if len(ctx.UserStats) > 0 {
			yapScore = ctx.UserStats[0].YapIndex
		}

		sleepGrade := "B"
		if len(ctx.NightOwls) > 2 {
			sleepGrade = "D"
		}
		dramaGrade := "C"
		switch {
		case ctx.DramaCount > 50:
			dramaGrade = "A+"
		case ctx.DramaCount > 20:
			dramaGrade = "B"
		}

		grades := []Grade{
			{Subject: "Touching Grass", Grade: "F"},
			{Subject: "Yapping Skills", Grade: letterGrade(yapScore)},
			{Subject: "Sleep Schedule", Grade: sleepGrade},
			{Subject: "Drama Creation", Grade: dramaGrade},
			{Subject: "Productivity", Grade: "F"},
		}

		avg := gpa(grades)
		note := "Congratulations on your... unique achievements."
		if avg < 2 {
			note = "See me after class. We need to talk."
		}

		return ReportCard{
			GPA:           fmt.Sprintf("%.1f", avg),
			Grades:        grades,
			PrincipalNote: note,
			Title:         "Group Chat Academic Record",
		}
	},
}

var corporateTemplate = &Template{
	ID:   ToneCorporate,
	Tone: "Professional, buzzword-heavy, passive-aggressive",

	Intro: func(ctx stats.NarrativeContext) string {
		quarter := (int(ctx.DateRange.End.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d Communication Metrics: %s touchpoints across %d stakeholders. Let's unpack this.",
			quarter, formatCount(ctx.TotalMessages), ctx.ParticipantCount)
	},

	Yapper: func(ctx stats.NarrativeContext) string {
		return fmt.Sprintf("%s drove %d%% of engagement. Outstanding thought leadership, but perhaps consider... listening.",
			ctx.TopYapper, yapperShare(ctx))
	},

	Timeline: func(ctx stats.NarrativeContext) string {
		count := topSpikeCount(ctx)
		date := formatDate(ctx.ChaosDay)
		if date == unknownDate || count == 0 {
			return "Engagement metrics show consistent distribution across all periods. No peak synergy events identified."
		}
		return fmt.Sprintf("Peak synergy achieved on %s: %d messages. The team really leaned in that day.", date, count)
	},

	NightOwl: func(ctx stats.NarrativeContext) string {
		if len(ctx.NightOwls) == 0 {
			return "Excellent work-life balance metrics. HR would be proud."
		}
		return fmt.Sprintf("%s showed exceptional after-hours commitment. Perhaps we should circle back on boundaries?",
			strings.Join(ctx.NightOwls, ", "))
	},

	Drama: func(ctx stats.NarrativeContext) string {
		if ctx.DramaCount < 10 {
			return "Minimal escalations detected. This team aligns well. Almost too well."
		}
		return fmt.Sprintf("%d high-urgency communications flagged. Let's take this offline and realign.", ctx.DramaCount)
	},

	Closing: func(ctx stats.NarrativeContext) string {
		return "Per our analysis, this chat shows strong engagement metrics. However, there's opportunity for improvement in focus areas."
	},

	Card: func(ctx stats.NarrativeContext) ReportCard {
		return ReportCard{
			GPA: "2.9",
			Grades: []Grade{
				{Subject: "Cross-functional Synergy", Grade: "B+"},
				{Subject: "Stakeholder Alignment", Grade: "A"},
				{Subject: "Resource Optimization", Grade: "C"},
				{Subject: "Bandwidth Management", Grade: "D"},
				{Subject: "Action Item Throughput", Grade: "B"},
			},
			PrincipalNote: "Let's schedule a sync to discuss your growth trajectory.",
			Title:         "Performance Review Summary",
		}
	},
}

var wholesomeTemplate = &Template{
	ID:   ToneWholesome,
	Tone: "Warm, supportive, celebrating friendship",

	Intro: func(ctx stats.NarrativeContext) string {
		days := int(math.Ceil(ctx.DateRange.End.Sub(ctx.DateRange.Start).Hours() / 24))
		if days < 1 {
			days = 1
		}
		return fmt.Sprintf("%s moments of connection over %d days. That's %d friends showing up for each other. 💚",
			formatCount(ctx.TotalMessages), days, ctx.ParticipantCount)
	},

	Yapper: func(ctx stats.NarrativeContext) string {
		emoji := stats.DefaultEmojiSignature
		for _, u := range ctx.UserStats {
			if u.Name == ctx.TopYapper && len(u.TopEmojis) > 0 {
				emoji = u.TopEmojis[0]
			}
		}
		return fmt.Sprintf("%s kept the conversation alive with their energy and %s. Every group needs their spark!",
			ctx.TopYapper, emoji)
	},

	Timeline: func(ctx stats.NarrativeContext) string {
		count := topSpikeCount(ctx)
		date := formatDate(ctx.ChaosDay)
		if date == unknownDate || count == 0 {
			return "Every day with you all is special. The joy is spread evenly throughout! ✨"
		}
		return fmt.Sprintf("Your biggest day was %s with %d messages. Must have been something special! ✨", date, count)
	},

	NightOwl: func(ctx stats.NarrativeContext) string {
		if len(ctx.NightOwls) == 0 {
			return "Everyone's getting their beauty sleep. Self-care is important! 🌙"
		}
		return fmt.Sprintf("%s — always there for late-night chats when someone needs to talk. True friends. 🦉",
			strings.Join(ctx.NightOwls, " and "))
	},

	Drama: func(ctx stats.NarrativeContext) string {
		if ctx.DramaCount < 10 {
			return "This group radiates calm energy. You've created a safe space for each other. 💕"
		}
		return fmt.Sprintf("%d passionate messages detected. You care deeply about things — and each other!", ctx.DramaCount)
	},

	Closing: func(ctx stats.NarrativeContext) string {
		return fmt.Sprintf("%d people, %s messages, countless memories. Here's to the friendships that matter. 🥂",
			ctx.ParticipantCount, formatCount(ctx.TotalMessages))
	},

	Card: func(ctx stats.NarrativeContext) ReportCard {
		return ReportCard{
			GPA: "4.0",
			Grades: []Grade{
				{Subject: "Friendship", Grade: "A+"},
				{Subject: "Being There", Grade: "A"},
				{Subject: "Good Vibes", Grade: "A+"},
				{Subject: "Support System", Grade: "A"},
				{Subject: "Memory Making", Grade: "A+"},
			},
			PrincipalNote: "You're doing amazing. Keep being there for each other. 💚",
			Title:         "Friendship Certificate",
		}
	},
}
