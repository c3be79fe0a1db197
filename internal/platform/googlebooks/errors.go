package googlebooks

import "fmt"

// ErrorKind classifies a failed search so callers can render a message
// without inspecting transport detail.
type ErrorKind int

const (
	// RateLimited means the API returned 429 and retries were exhausted.
	// Supplying an API key raises the quota.
	RateLimited ErrorKind = iota
	// ServerError is a 5xx from the API, transient.
	ServerError
	// ClientError is any other non-2xx status.
	ClientError
	// TransportError is a network-level failure.
	TransportError
)

func (k ErrorKind) String() string {
	switch k {
	case RateLimited:
		return "rate_limited"
	case ServerError:
		return "server_error"
	case ClientError:
		return "client_error"
	case TransportError:
		return "transport_error"
	}
	return "unknown"
}

// SearchError is the only error type Search returns.
type SearchError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *SearchError) Error() string {
	switch e.Kind {
	case RateLimited:
		return "catalog search rate limited, retry later or configure an API key"
	case ServerError:
		return fmt.Sprintf("catalog server error (status %d), retry later", e.StatusCode)
	case ClientError:
		return fmt.Sprintf("catalog request failed with status %d", e.StatusCode)
	case TransportError:
		if e.Err != nil {
			return fmt.Sprintf("catalog request failed: %v", e.Err)
		}
		return "catalog request failed"
	}
	return "catalog search failed"
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
