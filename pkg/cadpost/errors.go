package cadpost

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	data, err := r.Parse(dir)
//	if errors.Is(err, cadpost.ErrMissingInput) {
//	    // Point the user at the analysis output directory
//	}
var (
	// ErrMissingInput indicates one of the required input documents is absent or unreadable.
	ErrMissingInput = errors.New("missing input document")

	// ErrMalformedDocument indicates an input document is not well-formed XML
	// or lacks a required attribute or sub-element.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUsage indicates invalid command-line arguments or flags.
	ErrUsage = errors.New("usage error")

	// ErrOutputFailed indicates the output document could not be written.
	ErrOutputFailed = errors.New("output failed")
)

// DocumentError describes a structural problem in one input document.
// It unwraps to ErrMalformedDocument.
type DocumentError struct {
	File      string // Input document name
	Line      int    // Line number (0 if unknown)
	Element   string // Element being read, if known
	Attribute string // Attribute being read, if known
	Message   string // Primary error message
	Hint      string // Actionable suggestion for fixing
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	location := e.File
	if location == "" {
		location = "<document>"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", location, e.Line)
	}

	msg := fmt.Sprintf("malformed document %s: %s", location, e.Message)
	switch {
	case e.Element != "" && e.Attribute != "":
		msg = fmt.Sprintf("malformed document %s [%s@%s]: %s", location, e.Element, e.Attribute, e.Message)
	case e.Element != "":
		msg = fmt.Sprintf("malformed document %s [%s]: %s", location, e.Element, e.Message)
	}

	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// Unwrap lets errors.Is match ErrMalformedDocument.
func (e *DocumentError) Unwrap() error {
	return ErrMalformedDocument
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrMissingInput):
		return ExitMissingInput
	case errors.Is(err, ErrMalformedDocument):
		return ExitMalformedDocument
	case errors.Is(err, ErrOutputFailed):
		return ExitOutputFailed
	}

	return ExitGeneralError
}
