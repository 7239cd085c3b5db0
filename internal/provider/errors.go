package provider

import (
	"fmt"
	"strings"
)

// ConfigurationError is raised once at startup when no generation
// backend can be assembled from the available credentials. It is
// fatal and never retried.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no usable generation provider: missing configuration keys: %s",
		strings.Join(e.Missing, ", "))
}

// GenerationError wraps a failed, timed out, or unparseable remote
// generation call. Callers decide retry policy; none is implemented
// beyond the image fallback chain.
type GenerationError struct {
	Op    string
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Op, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// ValidationError rejects malformed module input before any network
// call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
