package chat

import "regexp"

// linePattern is one supported timestamp-prefixed line format. Patterns are
// tried in declaration order and the first match wins; the order is load
// bearing (an am/pm line also satisfies the 24-hour slash pattern), so do not
// rearrange entries.
//
// Every pattern exposes the same capture layout:
//
//	1-3  date fields (calendar order resolved later)
//	4, 5 hour and minute
//	6    optional seconds
//	7    optional am/pm marker
//	8    line remainder (author/content or system text)
//
// Formats without a group use an empty capture to keep the indexes aligned.
type linePattern struct {
	re *regexp.Regexp

	// yearFirst marks formats where field 1 is the year by construction
	// (ISO dates), bypassing the day/month heuristic.
	yearFirst bool
}

var linePatterns = []linePattern{
	// 15/01/2024, 10:30 am - Alice: hello
	// Exports put U+202F (narrow no-break space) or U+00A0 before am/pm.
	{re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4}),?\s+(\d{1,2}):(\d{2})(?::(\d{2}))?[\s\x{202F}\x{00A0}]*([AaPp][Mm])\s*-\s*(.+)$`)},

	// 15/01/24, 22:30 - Alice: hello
	{re: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4}),?\s+(\d{1,2}):(\d{2})(?::(\d{2}))?()\s*-\s*(.+)$`)},

	// [15/01/2024, 10:30:22] Alice: hello  (also dot dates and am/pm clocks)
	{re: regexp.MustCompile(`^\[(\d{1,2})[/.](\d{1,2})[/.](\d{2,4}),?\s+(\d{1,2}):(\d{2})(?::(\d{2}))?[\s\x{202F}\x{00A0}]*([AaPp][Mm])?\]\s*(.+)$`)},

	// 15.01.2024, 22:30 - Alice: hello
	{re: regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2,4}),?\s+(\d{1,2}):(\d{2})(?::(\d{2}))?()\s*-\s*(.+)$`)},

	// 2024-01-15, 22:30 - Alice: hello
	{re: regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2}),?\s+(\d{1,2}):(\d{2})(?::(\d{2}))?()\s*-\s*(.+)$`), yearFirst: true},
}

// systemPhrases match remainders that announce administrative events. A
// remainder without an author separator is treated as a system event either
// way; the table documents the known phrase set and backs the conservative
// fallback for ambiguous colons.
var systemPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)joined using`),
	regexp.MustCompile(`(?i)left$`),
	regexp.MustCompile(`(?i)added`),
	regexp.MustCompile(`(?i)removed`),
	regexp.MustCompile(`(?i)changed the subject`),
	regexp.MustCompile(`(?i)changed this group`),
	regexp.MustCompile(`(?i)created group`),
	regexp.MustCompile(`(?i)created this group`),
	regexp.MustCompile(`(?i)messages and calls are end-to-end encrypted`),
	regexp.MustCompile(`(?i)security code changed`),
	regexp.MustCompile(`(?i)changed the group description`),
	regexp.MustCompile(`(?i)changed their phone number`),
	regexp.MustCompile(`(?i)deleted this message`),
	regexp.MustCompile(`(?i)this message was deleted`),
	regexp.MustCompile(`(?i)missed voice call`),
	regexp.MustCompile(`(?i)missed video call`),
	regexp.MustCompile(`(?i)started a call`),
}

// mediaMarkers are the case-insensitive substrings that mark a media
// placeholder message. Matched via strings.Contains on a lowercased copy.
var mediaMarkers = []string{
	"<media omitted>",
	"image omitted",
	"video omitted",
	"audio omitted",
	"sticker omitted",
	"gif omitted",
	"document omitted",
	"contact card omitted",
	"location omitted",
	"<attached:",
	"(file attached)",
}
