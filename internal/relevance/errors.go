package relevance

import "fmt"

// AuthError indicates the API rejected the project/key pair.
type AuthError struct {
	Op     string
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("relevance: %s: authentication rejected (status %d), check project ID and API key", e.Op, e.Status)
}

// APIError indicates a non-auth HTTP failure from the API.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("relevance: %s: unexpected status %d", e.Op, e.Status)
	}

	return fmt.Sprintf("relevance: %s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}

// NetworkError wraps transport failures: DNS, refused connections, timeouts,
// canceled contexts.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("relevance: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
