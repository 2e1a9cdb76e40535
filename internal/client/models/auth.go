// Package models holds the wire DTOs of the business portal API and the
// client-side token pair.
package models

import "github.com/dmitrijs2005/invoicextractor/internal/timex"

// Device identifies this client on every authentication call.
type Device struct {
	UID       string `json:"device_uid"`
	Name      string `json:"device_name"`
	OSVersion string `json:"device_os_version"`
}

type StartAuthenticationRequest struct {
	Device
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthenticationToken is returned by the start-authentication step. Only
// VerificationToken is required to continue.
type AuthenticationToken struct {
	Token                         string   `json:"token"`
	Phone                         string   `json:"phone"`
	Type                          string   `json:"type"`
	VerificationToken             string   `json:"verification_token"`
	VerificationCodeChannel       string   `json:"verification_code_channel"`
	VerificationCodeTarget        string   `json:"verification_code_target"`
	VerificationCodeLength        int      `json:"verification_code_length"`
	ResendWaitTimeSeconds         int      `json:"resend_wait_time_seconds"`
	AvailableVerificationChannels []string `json:"available_verification_channels"`
}

type CompleteAuthenticationRequest struct {
	Device
	VerificationToken string `json:"verification_token"`
	Code              string `json:"code"`
}

type RefreshTokenData struct {
	RefreshToken string `json:"refresh_token"`
}

// AccessTokenData carries a freshly issued access token. Expiry fields are
// tick timestamps and are informational only.
type AccessTokenData struct {
	AccessToken         string         `json:"access_token"`
	ExpiresTimestamp    timex.TickTime `json:"expires_timestamp"`
	NextUpdateTimestamp timex.TickTime `json:"next_update_timestamp"`
}

// TokenPair is what the token cache persists between runs.
type TokenPair struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}
