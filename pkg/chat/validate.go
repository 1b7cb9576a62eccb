package chat

import (
	"regexp"
	"strings"
)

// headProbeSize is how much of the file the export gate examines.
const headProbeSize = 2048

var (
	headDateRegex = regexp.MustCompile(`\d{1,2}[/.]\d{1,2}[/.]\d{2,4}|\d{4}-\d{2}-\d{2}`)
	headTimeRegex = regexp.MustCompile(`\d{1,2}:\d{2}`)
)

// LooksLikeExport is a cheap heuristic gate for upload validation: the head
// of the file must contain a date-like substring, a time-like substring and a
// timestamp/body separator. It is not a parser guarantee — Parse remains the
// authority — just a fast way to reject files that are clearly not exports.
func LooksLikeExport(head []byte) bool {
	if len(head) > headProbeSize {
		head = head[:headProbeSize]
	}
	s := string(head)

	if !headDateRegex.MatchString(s) || !headTimeRegex.MatchString(s) {
		return false
	}
	return strings.Contains(s, " - ") || strings.Contains(s, "] ")
}
