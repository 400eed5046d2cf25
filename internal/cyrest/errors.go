package cyrest

import "fmt"

// RemoteError means Cytoscape was reached but rejected or failed the
// operation. StatusCode carries the HTTP status; Message carries the
// error text CyREST supplied, or the raw body when no structured error
// payload was present.
type RemoteError struct {
	StatusCode int
	Operation  string
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cyrest: %s: HTTP %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("cyrest: %s: HTTP %d: %s", e.Operation, e.StatusCode, e.Message)
}

// TransportError means Cytoscape could not be reached at all: connection
// refused, timeout, DNS failure. Callers probing whether Cytoscape is
// alive match this type specifically.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cyrest: cannot reach Cytoscape at %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError reports malformed caller input detected before any
// request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return "cyrest: " + e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// CompatibilityError reports that the running Cytoscape or its CyREST API
// is older than the supported floor.
type CompatibilityError struct {
	Component string
	Required  string
	Actual    string
}

func (e *CompatibilityError) Error() string {
	return fmt.Sprintf("cyrest: %s version %s or greater is required, found %s",
		e.Component, e.Required, e.Actual)
}
