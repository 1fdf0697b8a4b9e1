// Package runtime is the support library generated dispatch code links
// against. It carries the request category markers, the unmatched-request
// failure, the notification fan-out join and the streaming sequence type.
// Nothing here does routing; routing lives entirely in the generated
// dispatcher.
package runtime

import "fmt"

// Kind is the dispatch category of a normalized request
type Kind int

const (
	// KindQuery is a point-to-point request with a response
	KindQuery Kind = iota
	// KindCommand is a mutation, with or without a result
	KindCommand
	// KindNotification is a fan-out event
	KindNotification
	// KindStreamQuery is a request answered with a lazy element sequence
	KindStreamQuery
)

// String returns the category name
func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindCommand:
		return "command"
	case KindNotification:
		return "notification"
	case KindStreamQuery:
		return "stream_query"
	}
	return "unknown"
}

// Request is implemented by every generated normalized request type
type Request interface {
	// RequestName returns the logical name the request was declared with
	RequestName() string
	// RequestKind returns the dispatch category
	RequestKind() Kind
}

// NoHandlerError is returned by a generated dispatcher when no routing
// branch matches the concrete request type. The dispatcher never silently
// drops a request.
type NoHandlerError struct {
	// RequestType is the concrete runtime type name of the unmatched request
	RequestType string
}

// Error implements the error interface
func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("no handler registered for type %s", e.RequestType)
}

// NoHandlerFor builds the unmatched-request failure for a concrete request
func NoHandlerFor(req any) *NoHandlerError {
	return &NoHandlerError{RequestType: fmt.Sprintf("%T", req)}
}
