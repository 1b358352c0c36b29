package apierror

import "fmt"

// Origin identifies where a transport failure happened. The distinction
// matters for messaging: a backend rejection, a request that vanished into
// the network, and a request that never left the client each read
// differently to the user.
type Origin int

const (
	// OriginResponse means the request was sent and the backend answered
	// with an error status.
	OriginResponse Origin = iota
	// OriginNoResponse means the request was sent but nothing came back.
	OriginNoResponse
	// OriginSendFailure means the request could not be sent at all.
	OriginSendFailure
)

// RequestError is the raw failure shape produced by the HTTP client before
// any normalization: a tagged union over the known failure origins, resolved
// once at the transport boundary. Status and Body are populated only for
// OriginResponse.
type RequestError struct {
	Origin Origin
	Status int
	Body   map[string]any
	Err    error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	switch e.Origin {
	case OriginResponse:
		return fmt.Sprintf("request failed with status %d", e.Status)
	case OriginNoResponse:
		return "request sent but no response received"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "request could not be sent"
	}
}

// Unwrap exposes the underlying transport error, if any.
func (e *RequestError) Unwrap() error { return e.Err }
