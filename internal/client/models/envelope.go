package models

// MessageOK is the envelope message the portal uses for success.
const MessageOK = "OK"

// MessageNotAuthorized is the envelope message returned by authenticated
// endpoints when the access token is missing, expired or revoked.
const MessageNotAuthorized = "NOT_AUTHORIZED"

// Envelope is the {code, message, data} wrapper around every portal response.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// OK reports whether the server declared success and sent a payload.
func (e *Envelope[T]) OK() bool {
	return e.Message == MessageOK && e.Data != nil
}
