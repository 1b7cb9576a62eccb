package report

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const unknownDate = "Unknown Date"

// printer renders counts with thousands separators ("12,345").
var printer = message.NewPrinter(language.English)

func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// formatDate turns a chaos-day key ("2024-03-17") into display form
// ("Mar 17, 2024"). Empty or malformed input yields the unknown sentinel.
func formatDate(day string) string {
	if day == "" {
		return unknownDate
	}
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return unknownDate
	}
	return t.Format("Jan 2, 2006")
}

func formatHour(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour == 12:
		return "12 PM"
	case hour < 12:
		return printer.Sprintf("%d AM", hour)
	default:
		return printer.Sprintf("%d PM", hour-12)
	}
}

// letterGrade maps a 0–1 score onto the report-card scale.
func letterGrade(score float64) string {
	switch {
	case score >= 0.9:
		return "A+"
	case score >= 0.8:
		return "A"
	case score >= 0.7:
		return "B+"
	case score >= 0.6:
		return "B"
	case score >= 0.5:
		return "C+"
	case score >= 0.4:
		return "C"
	case score >= 0.3:
		return "D"
	default:
		return "F"
	}
}

var gradePoints = map[string]float64{
	"A+": 4.3,
	"A":  4.0,
	"B+": 3.3,
	"B":  3.0,
	"C+": 2.3,
	"C":  2.0,
	"D":  1.0,
	"F":  0,
}

// gpa averages the grade points of the given grades on the 4.3 scale.
func gpa(grades []Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	total := 0.0
	for _, g := range grades {
		total += gradePoints[g.Grade]
	}
	return total / float64(len(grades))
}
