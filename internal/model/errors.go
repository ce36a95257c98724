package model

import "fmt"

// Pipeline failures are fatal and never retried: the first error aborts
// the run and propagates to the caller unchanged.

// ConfigError reports a missing credential or a missing required input
// file or directory, detected before any pipeline step runs.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// NewConfigError builds a ConfigError with a formatted message.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// ParseError reports model output that is not in the expected
// structured shape.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// ProbeError reports a failed or inconclusive media metadata probe.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to probe %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("duration not found in metadata for %s", e.Path)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// ExtractError reports a failed segment extraction, carrying the
// processing tool's diagnostic output.
type ExtractError struct {
	Msg string
	Err error
}

func (e *ExtractError) Error() string { return fmt.Sprintf("%s: %v", e.Msg, e.Err) }

func (e *ExtractError) Unwrap() error { return e.Err }

// ComposeError reports a failed final composition, carrying the
// processing tool's diagnostic output.
type ComposeError struct {
	Msg string
	Err error
}

func (e *ComposeError) Error() string { return fmt.Sprintf("%s: %v", e.Msg, e.Err) }

func (e *ComposeError) Unwrap() error { return e.Err }
