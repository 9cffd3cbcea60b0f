package github

import (
	"fmt"
	"time"
)

// AuthenticationError indicates the provider rejected the supplied credential.
type AuthenticationError struct {
	Status int
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: the provider rejected the credential (status %d)", e.Status)
}

// RateLimitError indicates the provider refused the request because of rate
// limiting. ResetAt and RetryAfter are filled from the response headers when
// the provider sends them.
type RateLimitError struct {
	Status     int
	ResetAt    *time.Time
	RetryAfter *time.Duration
}

func (e *RateLimitError) Error() string {
	msg := fmt.Sprintf("rate limit exceeded (status %d)", e.Status)
	if e.ResetAt != nil {
		msg += fmt.Sprintf(", resets at %s", e.ResetAt.Format(time.RFC3339))
	}
	if e.RetryAfter != nil {
		msg += fmt.Sprintf(", retry after %s", e.RetryAfter)
	}
	return msg
}

// RemoteRequestError covers every non-2xx transport status not mapped to a
// more specific error.
type RemoteRequestError struct {
	Status int
}

func (e *RemoteRequestError) Error() string {
	return fmt.Sprintf("remote request failed with status %d", e.Status)
}

// RemoteApiError carries the application-level errors returned inside an
// otherwise successful transport response.
type RemoteApiError struct {
	Errors []ApiError
}

func (e *RemoteApiError) Error() string {
	if len(e.Errors) == 0 {
		return "remote api reported errors"
	}
	return fmt.Sprintf("remote api reported %d error(s): %s", len(e.Errors), e.Errors[0].Message)
}

// NotFoundError indicates the account handle resolved to no user.
type NotFoundError struct {
	Login string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no account found for handle %q", e.Login)
}

// NetworkError wraps a transport-level failure (connection refused, DNS,
// timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
