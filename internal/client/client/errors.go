package client

import (
	"errors"
	"fmt"
)

var (
	// ErrRequest reports a transport failure: DNS, TLS, connection reset or
	// an unexpected HTTP status on a download.
	ErrRequest = errors.New("request failed")
	// ErrDecode reports a response body that is not a valid envelope.
	ErrDecode = errors.New("malformed response")
	// ErrAuthentication is a non-OK envelope on one of the auth endpoints.
	ErrAuthentication = errors.New("authentication failed")
	// ErrUnauthorized means the access token was rejected; refreshing it may help.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAPI is any other non-OK envelope on an authenticated endpoint.
	ErrAPI = errors.New("api error")
)

// APIError is a failure declared by the server inside the response envelope.
type APIError struct {
	Op      string
	Code    int
	Message string
	Kind    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}
