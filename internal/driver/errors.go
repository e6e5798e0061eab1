// File: internal/driver/errors.go
package driver

import "fmt"

// NotInitializedError is returned when a session is requested for an
// execution context that has not called Initialize (or has already torn the
// session down). It is fatal to the calling operation and never retried.
type NotInitializedError struct {
	ContextID string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("webdriver not initialized for context %q; call Initialize first", e.ContextID)
}

// UnsupportedBrowserError is returned by the session factory for a browser
// tag outside the supported set. No fallback browser is attempted.
type UnsupportedBrowserError struct {
	Browser string
}

func (e *UnsupportedBrowserError) Error() string {
	return fmt.Sprintf("unsupported browser type: %q", e.Browser)
}
