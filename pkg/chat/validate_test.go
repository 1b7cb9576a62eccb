package chat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeExport(t *testing.T) {
	tests := []struct {
		name string
		head string
		want bool
	}{
		{name: "am/pm export", head: "15/01/2024, 10:30 am - Alice: hello", want: true},
		{name: "iso export", head: "2024-01-15, 22:30 - Alice: hi", want: true},
		{name: "bracketed export", head: "[15/01/2024, 10:30:22] Alice: hello", want: true},
		{name: "prose", head: "Dear diary, nothing to report today.", want: false},
		{name: "date without time", head: "15/01/2024 - shopping list", want: false},
		{name: "time without date", head: "10:30 - reminder", want: false},
		{name: "empty", head: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeExport([]byte(tt.head)))
		})
	}
}

func TestLooksLikeExport_OnlyProbesHead(t *testing.T) {
	// A valid-looking line beyond the probe window must not rescue the file.
	head := append(bytes.Repeat([]byte("x"), headProbeSize), []byte("\n15/01/2024, 10:30 am - Alice: hello")...)
	assert.False(t, LooksLikeExport(head))
}
