package chat

import "strings"

// maxAuthorLen caps how long a plausible display name can be. Anything
// longer is assumed to be system text that happens to contain a colon.
const maxAuthorLen = 100

// classifyRemainder splits the post-timestamp remainder of a matched line
// into author, content and kind. The split is never an error: remainders
// without a plausible "Name: content" shape resolve to a system event.
func classifyRemainder(rest string) (author, content string, kind Kind) {
	rest = strings.TrimSpace(rest)

	idx := strings.Index(rest, ": ")
	if idx < 0 {
		return SystemAuthor, rest, KindSystem
	}

	author = strings.TrimSpace(rest[:idx])
	if author == "" || len(author) > maxAuthorLen || isSystemPhrase(author) {
		// A colon that does not separate a name from content (empty,
		// overlong, or system text such as "X changed the subject from: y");
		// treat the whole remainder conservatively as a system event.
		return SystemAuthor, rest, KindSystem
	}

	content = strings.TrimSpace(rest[idx+2:])
	if isMediaContent(content) {
		return author, content, KindMedia
	}
	return author, content, KindMessage
}

// isMediaContent reports whether content is a media placeholder left behind
// by an export without attachments.
func isMediaContent(content string) bool {
	lower := strings.ToLower(content)
	for _, marker := range mediaMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// isSystemPhrase reports whether the remainder matches one of the known
// administrative event phrases.
func isSystemPhrase(rest string) bool {
	for _, re := range systemPhrases {
		if re.MatchString(rest) {
			return true
		}
	}
	return false
}
