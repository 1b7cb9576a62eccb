package chat

import (
	"strconv"
	"strings"
	"time"
)

// resolveDate turns the three raw date fields of a matched line into
// year/month/day. For year-first formats the order is fixed. Otherwise the
// value-range heuristic applies: a first field above 12 forces day-first, a
// second field above 12 forces month-first (US convention), and the ambiguous
// case where both fields fit a month defaults to day-first. The default is
// deliberate — exports from day-first locales dominate — and must not be
// "fixed" to a calendar-probability guess.
func resolveDate(f1, f2, f3 int, yearFirst bool) (year, month, day int) {
	if yearFirst {
		return f1, f2, f3
	}
	year = expandYear(f3)
	switch {
	case f1 > 12:
		day, month = f1, f2
	case f2 > 12:
		month, day = f1, f2
	default:
		day, month = f1, f2
	}
	return year, month, day
}

// expandYear widens two-digit years with a 50-year pivot: 51-99 land in the
// 1900s, 00-50 in the 2000s. Four-digit years pass through.
func expandYear(y int) int {
	if y >= 100 {
		return y
	}
	if y > 50 {
		return 1900 + y
	}
	return 2000 + y
}

// buildTimestamp assembles and validates the timestamp captured by a line
// pattern. The boolean result is false when any field is out of range or the
// calendar date does not round-trip (day 31 in a 30-day month, Feb 30, ...);
// such candidates are discarded by the parser.
func buildTimestamp(m []string, yearFirst bool) (time.Time, bool) {
	f1, _ := strconv.Atoi(m[1])
	f2, _ := strconv.Atoi(m[2])
	f3, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])

	second := 0
	if m[6] != "" {
		second, _ = strconv.Atoi(m[6])
	}

	year, month, day := resolveDate(f1, f2, f3, yearFirst)

	ampm := strings.ToLower(m[7])
	switch ampm {
	case "am", "pm":
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		if ampm == "pm" && hour != 12 {
			hour += 12
		} else if ampm == "am" && hour == 12 {
			hour = 0
		}
	case "":
		if hour > 23 {
			return time.Time{}, false
		}
	default:
		return time.Time{}, false
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	if minute > 59 || second > 59 {
		return time.Time{}, false
	}
	if year < 1900 || year > 2100 {
		return time.Time{}, false
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)

	// time.Date normalizes impossible dates (Feb 31 becomes Mar 2); a changed
	// component means the input was not a real calendar date.
	if ts.Year() != year || ts.Month() != time.Month(month) || ts.Day() != day {
		return time.Time{}, false
	}

	return ts, true
}
