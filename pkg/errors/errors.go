// Package errors provides common domain error types for chatwrapped.
//
// This package defines sentinel errors for the conditions the CLI reports to
// users, like "not a chat export" or "not enough messages". Using typed
// errors enables consistent error handling with errors.Is() checks.
//
// Usage:
//
//	import cwerrors "github.com/chatwrapped/cli/pkg/errors"
//
//	// Return a domain error
//	return fmt.Errorf("%w: %s", cwerrors.ErrNotChatExport, path)
//
//	// Check for domain errors
//	if cwerrors.IsNotChatExport(err) {
//	    // handle gate failure
//	}
package errors

import "errors"

// Domain errors - common sentinel errors for domain conditions.
var (
	// ErrNotChatExport indicates the input file does not look like a chat
	// export.
	ErrNotChatExport = errors.New("not a chat export")

	// ErrInsufficientData indicates the chat has too few parsed messages
	// for a meaningful report.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNarrator indicates remote narrative generation failed.
	ErrNarrator = errors.New("narrator generation failed")

	// ErrValidation indicates invalid input or configuration.
	ErrValidation = errors.New("validation error")
)

// IsNotChatExport reports whether any error in err's chain is ErrNotChatExport.
func IsNotChatExport(err error) bool {
	return errors.Is(err, ErrNotChatExport)
}

// IsInsufficientData reports whether any error in err's chain is ErrInsufficientData.
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

// IsNarrator reports whether any error in err's chain is ErrNarrator.
func IsNarrator(err error) bool {
	return errors.Is(err, ErrNarrator)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
