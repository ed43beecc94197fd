package claimctl

import "fmt"

// NetworkError wraps transport-level failures of profile fetches and
// claim submissions. Retryable; the controller keeps working.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ClaimRejectedError means the server refused the claim, usually because
// the client's view of the cooldown was stale. Message is the server's
// human-readable explanation, passed through unchanged.
type ClaimRejectedError struct {
	Message string
}

func (e *ClaimRejectedError) Error() string {
	return e.Message
}
