// Package topics builds a lightweight summary of what a chat is about:
// frequent keywords, frequent two-word phrases, a handful of representative
// messages and coarse conversation patterns. The summary feeds the remote
// narrator prompt and the pattern-aware template branches.
package topics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/chatwrapped/cli/pkg/chat"
)

// urlRegex matches plain URLs, scheme-prefixed or bare www hosts.
var urlRegex = regexp.MustCompile(`(?:https?://|www\.)[^\s<>"]+`)

const (
	topKeywordLimit = 5
	topPhraseLimit  = 5
	sampleLimit     = 5

	minKeywordLen = 4
	minSampleLen  = 20
	maxSampleLen  = 120

	linkShare     = 0.10
	questionShare = 0.20
	emojiPerMsg   = 0.5
)

// Pattern labels consumed by the report templates and the narrator prompt.
const (
	PatternLinkSharing = "frequent link sharing"
	PatternQuestions   = "lots of questions/discussions"
	PatternEmojiHeavy  = "emoji heavy chat"
	PatternLateNight   = "late night energy"
)

// Context summarizes the conversation content.
type Context struct {
	TopTopics            []string `json:"top_topics" yaml:"top_topics"`
	CommonPhrases        []string `json:"common_phrases" yaml:"common_phrases"`
	SampleMessages       []string `json:"sample_messages" yaml:"sample_messages"`
	ConversationPatterns []string `json:"conversation_patterns" yaml:"conversation_patterns"`
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "this": true,
	"with": true, "you": true, "your": true, "have": true, "has": true,
	"are": true, "was": true, "were": true, "but": true, "not": true,
	"all": true, "can": true, "will": true, "just": true, "like": true,
	"what": true, "when": true, "where": true, "who": true, "why": true,
	"how": true, "yeah": true, "yes": true, "okay": true, "dont": true,
	"don't": true, "its": true, "it's": true, "i'm": true, "they": true,
	"them": true, "then": true, "than": true, "there": true, "here": true,
	"from": true, "about": true, "been": true, "some": true, "also": true,
	"good": true, "know": true, "think": true, "really": true, "going": true,
	"media": true, "omitted": true, "message": true, "deleted": true,
}

// Extract summarizes the text messages in the chat. System and media records
// never contribute. Deterministic for a given message sequence.
func Extract(messages []chat.Message) Context {
	ctx := Context{
		TopTopics:            []string{},
		CommonPhrases:        []string{},
		SampleMessages:       []string{},
		ConversationPatterns: []string{},
	}

	var texts []string
	for _, m := range messages {
		if m.Kind == chat.KindMessage {
			texts = append(texts, m.Content)
		}
	}
	if len(texts) == 0 {
		return ctx
	}

	ctx.TopTopics = topKeywords(texts)
	ctx.CommonPhrases = topPhrases(texts)
	ctx.SampleMessages = sampleMessages(texts)
	ctx.ConversationPatterns = detectPatterns(messages, texts)

	return ctx
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '\''
	})
}

// rankByCount sorts keys descending by count with the lexically smaller key
// winning ties, and returns at most limit.
func rankByCount(counts map[string]int, limit int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

func topKeywords(texts []string) []string {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, word := range tokenize(text) {
			if len(word) >= minKeywordLen && !stopwords[word] {
				counts[word]++
			}
		}
	}
	return rankByCount(counts, topKeywordLimit)
}

func topPhrases(texts []string) []string {
	counts := make(map[string]int)
	for _, text := range texts {
		words := tokenize(text)
		for i := 1; i < len(words); i++ {
			if stopwords[words[i-1]] || stopwords[words[i]] {
				continue
			}
			counts[words[i-1]+" "+words[i]]++
		}
	}

	ranked := rankByCount(counts, topPhraseLimit+len(counts))
	// A phrase seen once is noise, not a catchphrase.
	phrases := []string{}
	for _, p := range ranked {
		if counts[p] < 2 || len(phrases) == topPhraseLimit {
			break
		}
		phrases = append(phrases, p)
	}
	return phrases
}

// sampleMessages picks up to five mid-length messages spread evenly across
// the conversation so early and late phases are both represented.
func sampleMessages(texts []string) []string {
	var eligible []string
	for _, text := range texts {
		n := len([]rune(text))
		if n >= minSampleLen && n <= maxSampleLen {
			eligible = append(eligible, text)
		}
	}
	if len(eligible) == 0 {
		return []string{}
	}
	if len(eligible) <= sampleLimit {
		return eligible
	}

	samples := make([]string, 0, sampleLimit)
	step := len(eligible) / sampleLimit
	for i := 0; i < sampleLimit; i++ {
		samples = append(samples, eligible[i*step])
	}
	return samples
}

func detectPatterns(messages []chat.Message, texts []string) []string {
	patterns := []string{}

	links, questions, emojis := 0, 0, 0
	for _, text := range texts {
		if urlRegex.MatchString(text) {
			links++
		}
		if strings.Contains(text, "?") {
			questions++
		}
		for _, r := range text {
			if isEmojiRune(r) {
				emojis++
			}
		}
	}

	total := float64(len(texts))
	if float64(links)/total >= linkShare {
		patterns = append(patterns, PatternLinkSharing)
	}
	if float64(questions)/total >= questionShare {
		patterns = append(patterns, PatternQuestions)
	}
	if float64(emojis)/total >= emojiPerMsg {
		patterns = append(patterns, PatternEmojiHeavy)
	}
	if hasLateNightEnergy(messages) {
		patterns = append(patterns, PatternLateNight)
	}

	return patterns
}

// hasLateNightEnergy reports whether any author sends more than a tenth of
// their traffic between midnight and five.
func hasLateNightEnergy(messages []chat.Message) bool {
	totals := make(map[string]int)
	night := make(map[string]int)
	for _, m := range messages {
		if m.IsSystem() {
			continue
		}
		totals[m.Author]++
		if h := m.Timestamp.Hour(); h >= 0 && h < 5 {
			night[m.Author]++
		}
	}
	for author, total := range totals {
		if float64(night[author])/float64(total) > 0.1 {
			return true
		}
	}
	return false
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F9FF,
		r >= 0x2600 && r <= 0x26FF,
		r >= 0x2700 && r <= 0x27BF,
		r >= 0x1F000 && r <= 0x1F02F,
		r >= 0x1F1E0 && r <= 0x1F1FF:
		return true
	}
	return false
}
