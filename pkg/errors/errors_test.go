package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
	}{
		{name: "not chat export", err: ErrNotChatExport, checker: IsNotChatExport},
		{name: "insufficient data", err: ErrInsufficientData, checker: IsInsufficientData},
		{name: "narrator", err: ErrNarrator, checker: IsNarrator},
		{name: "validation", err: ErrValidation, checker: IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.checker(tt.err))
			assert.True(t, tt.checker(fmt.Errorf("context: %w", tt.err)))
			assert.False(t, tt.checker(fmt.Errorf("unrelated")))
			assert.False(t, tt.checker(nil))
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.False(t, IsNotChatExport(ErrInsufficientData))
	assert.False(t, IsInsufficientData(ErrNarrator))
	assert.False(t, IsNarrator(ErrValidation))
}
