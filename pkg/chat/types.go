// Package chat parses WhatsApp-style chat exports into an ordered sequence
// of typed message records. Parsing is tolerant: lines that do not match a
// known timestamp pattern become continuations of the previous message, and
// lines that match but carry an impossible timestamp are skipped and counted
// rather than failing the parse.
package chat

import (
	"encoding/json"
	"fmt"
	"time"
)

// SystemAuthor is the sentinel author attached to system-generated events
// (joins, leaves, subject changes, encryption notices and the like).
const SystemAuthor = "System"

// Kind classifies a parsed message record.
type Kind int

const (
	// KindMessage is an authored text message.
	KindMessage Kind = iota
	// KindMedia is an authored message whose content is a media placeholder
	// (the export substitutes "<Media omitted>" and similar markers for the
	// actual attachment).
	KindMedia
	// KindSystem is an administrative event with no human author.
	KindSystem
)

var kindNames = map[Kind]string{
	KindMessage: "message",
	KindMedia:   "media",
	KindSystem:  "system",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalJSON encodes the kind as its wire name.
func (k Kind) MarshalJSON() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown message kind %d", int(k))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a kind from its wire name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown message kind %q", name)
}

// Message is a single parsed record from the export. Continuation lines are
// folded into Content with embedded newlines.
type Message struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Author    string    `json:"author" yaml:"author"`
	Content   string    `json:"content" yaml:"content"`
	Kind      Kind      `json:"kind" yaml:"kind"`
}

// IsSystem reports whether the record is a system event.
func (m Message) IsSystem() bool {
	return m.Kind == KindSystem
}

// Result is the outcome of a parse. The message sequence is ordered as it
// appeared in the export and is not mutated after Parse returns.
type Result struct {
	Messages []Message `json:"messages" yaml:"messages"`

	// SkippedLines counts input lines that were dropped: matched lines whose
	// timestamp failed validation, and continuation lines arriving before any
	// message had opened. Blank lines are structural and not counted.
	SkippedLines int `json:"skipped_lines" yaml:"skipped_lines"`
}
