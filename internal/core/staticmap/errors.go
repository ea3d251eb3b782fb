package staticmap

import "fmt"

// ValidationError reports a setter argument outside its declared
// domain. The options store is left untouched when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports that the builder cannot produce a URL in
// its current configuration (as opposed to a bad per-call argument).
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// ErrMissingAPIKey is returned by every URL-producing operation when no
// API key is configured. It is checked before any serialization work.
var ErrMissingAPIKey = &ConfigurationError{Message: "missing API key"}
