package chat

import "strings"

// directionMarks are invisible bidi characters some exports prepend to
// message lines. Stripped before pattern matching only; continuation content
// is kept verbatim.
const directionMarks = "\u200e\u200f"

// Parse converts raw export text into the ordered message sequence. It never
// fails on malformed input: lines that match no timestamp pattern extend the
// open message, and matched lines with an impossible timestamp are dropped
// and counted in Result.SkippedLines. Parsing has no shared state; calling
// Parse twice on the same text yields identical results.
func Parse(raw string) *Result {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	result := &Result{Messages: make([]Message, 0)}

	var open *Message
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Blank lines neither start nor break a message.
			continue
		}

		probe := strings.TrimLeft(trimmed, directionMarks)

		matched := false
		for _, p := range linePatterns {
			m := p.re.FindStringSubmatch(probe)
			if m == nil {
				continue
			}
			matched = true

			// A new timestamped line finalizes whatever was open.
			if open != nil {
				result.Messages = append(result.Messages, *open)
				open = nil
			}

			ts, ok := buildTimestamp(m, p.yearFirst)
			if !ok {
				result.SkippedLines++
				break
			}

			author, content, kind := classifyRemainder(m[8])
			open = &Message{
				Timestamp: ts,
				Author:    author,
				Content:   content,
				Kind:      kind,
			}
			break
		}
		if matched {
			continue
		}

		if open != nil {
			open.Content += "\n" + line
		} else {
			// Continuation with nothing to continue.
			result.SkippedLines++
		}
	}

	if open != nil {
		result.Messages = append(result.Messages, *open)
	}

	return result
}
