package stats

// emojiRanges lists the Unicode scalar ranges counted as emoji. Kept as an
// explicit table rather than unicode.Is so the set stays stable across Go
// releases: Misc Symbols and Pictographs through Supplemental Symbols,
// Miscellaneous Symbols, Dingbats, Mahjong/Domino tiles, regional indicators.
var emojiRanges = [...]struct{ lo, hi rune }{
	{0x1F300, 0x1F9FF},
	{0x2600, 0x26FF},
	{0x2700, 0x27BF},
	{0x1F000, 0x1F02F},
	{0x1F1E0, 0x1F1FF},
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng.lo && r <= rng.hi {
			return true
		}
	}
	return false
}

// extractEmojis returns every emoji scalar in text, in order, one entry per
// occurrence.
func extractEmojis(text string) []string {
	var out []string
	for _, r := range text {
		if isEmoji(r) {
			out = append(out, string(r))
		}
	}
	return out
}

// topEmojis ranks emojis by count, descending, first occurrence winning ties,
// and returns at most limit entries.
func topEmojis(emojis []string, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, e := range emojis {
		if counts[e] == 0 {
			order = append(order, e)
		}
		counts[e]++
	}

	// Stable sort so equal counts keep first-seen order.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && counts[order[j]] > counts[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
