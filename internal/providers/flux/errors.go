package flux

import "fmt"

// TransportError reports a non-2xx HTTP response from the provider. The
// original status code and body text are preserved for the caller.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Error: %d %s", e.StatusCode, e.Body)
}

// ProtocolError reports a malformed or incomplete success response, such as a
// creation response without a polling URL.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return e.Reason
}

// TimeoutError reports an exhausted poll budget without ever observing a
// Ready status. It is terminal; the caller must resubmit a fresh request.
type TimeoutError struct {
	Attempts int
}

func (e *TimeoutError) Error() string {
	return "Timeout waiting for image"
}
