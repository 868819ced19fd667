package retry

import (
	"errors"

	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// ErrorClassifier determines whether an error is transient (retryable) or fatal.
type ErrorClassifier interface {
	// IsTransient returns true if the error is temporary and the operation should be retried.
	IsTransient(err error) bool
}

// InputErrorClassifier treats input documents that are missing or malformed
// as transient, since the producing tool may still be writing them.
// Configuration and output errors are fatal.
type InputErrorClassifier struct{}

// NewInputErrorClassifier creates a new input error classifier.
func NewInputErrorClassifier() *InputErrorClassifier {
	return &InputErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *InputErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, cadpost.ErrInvalidConfig) || errors.Is(err, cadpost.ErrOutputFailed) {
		return false
	}
	return errors.Is(err, cadpost.ErrMissingInput) || errors.Is(err, cadpost.ErrMalformedDocument)
}
