package cytoscape

import (
	"fmt"

	"github.com/cytoscape/cyrest-go/internal/cyrest"
)

// The error taxonomy partitions every failure by where it happened, so
// callers can branch with errors.As instead of parsing messages.

// RemoteError: Cytoscape was reached and said no.
type RemoteError = cyrest.RemoteError

// TransportError: Cytoscape could not be reached at all.
type TransportError = cyrest.TransportError

// ValidationError: the caller's input was malformed before any request
// went out.
type ValidationError = cyrest.ValidationError

// CompatibilityError: the running Cytoscape or CyREST API is below the
// supported floor.
type CompatibilityError = cyrest.CompatibilityError

// NotFoundError reports a name or SUID that does not exist in the
// running Cytoscape instance: an unknown network title, a node name
// absent from the name table, a SUID with no row.
type NotFoundError struct {
	Kind string // "network", "node", "edge", "collection", "column"
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cytoscape: %s %q not found", e.Kind, e.Ref)
}

func notFound(kind string, ref any) *NotFoundError {
	return &NotFoundError{Kind: kind, Ref: fmt.Sprint(ref)}
}

func validationf(format string, args ...any) *ValidationError {
	return cyrest.Validationf(format, args...)
}
