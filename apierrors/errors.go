// Package apierrors provides structured error types for apidef.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish a document that could not be
// fetched or decoded from one that was loaded but is not a recognized API
// definition.
//
// # Error Categories
//
//   - LoadError: fetch, decode and reference-target failures, resource limits
//   - UnsupportedFormatError: wrong document shape, unknown spec family, unregistered version
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.As
//
//	def, err := definition.Load(ctx, "api.yaml")
//	if err != nil {
//	    var loadErr *apierrors.LoadError
//	    if errors.As(err, &loadErr) {
//	        fmt.Println("could not load", loadErr.Locator)
//	    }
//	}
package apierrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrLoad indicates a document could not be fetched or decoded.
	ErrLoad = errors.New("load error")

	// ErrUnsupportedFormat indicates the root document is not a registered API definition.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// LoadError represents a failure to fetch, decode or locate a document.
type LoadError struct {
	// Locator is the path or URL that failed, including a fragment when a
	// reference target inside the document was missing
	Locator string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error"
	if e.Locator != "" {
		msg += ": " + e.Locator
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// SupportedVersions lists the registered version keys of one spec family.
type SupportedVersions struct {
	Family string
	Keys   []string
}

// UnsupportedFormatError represents a root document that does not look like
// a recognized, registered API definition.
type UnsupportedFormatError struct {
	// Reason explains what was wrong with the document
	Reason string
	// Family is the detected spec family, empty when none was detected
	Family string
	// Version is the declared version, empty when none was found
	Version string
	// Supported lists every registered version per family, in registry order
	Supported []SupportedVersions
	// Cause is the underlying error, if any
	Cause error
}

// Error returns the diagnostic shown to users. The second line always lists
// the versions that are actually registered.
func (e *UnsupportedFormatError) Error() string {
	var b strings.Builder
	b.WriteString("Unsupported API specification (")
	b.WriteString(e.Reason)
	b.WriteString(")")
	if len(e.Supported) > 0 {
		parts := make([]string, 0, len(e.Supported))
		for _, s := range e.Supported {
			parts = append(parts, s.Family+" "+strings.Join(s.Keys, ", "))
		}
		fmt.Fprintf(&b, "\nPlease try again with an %s format.", strings.Join(parts, " or "))
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chaining.
func (e *UnsupportedFormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
