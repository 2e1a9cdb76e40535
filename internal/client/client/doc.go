// Package client talks to the business portal's private HTTP API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     three authentication steps, user info, associated companies, paginated
//     ride history and invoice download.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the API
//     version and the rotating session identifier to every call, adds the
//     bearer access token on authenticated endpoints and decodes the
//     {code, message, data} envelope into typed results.
//
// # Session identifier
//
// A fresh client starts with "<random uuid>b<unix seconds>". After every
// token issuance callers pass the new access token to UpdateSessionID, which
// reads (without verifying) its iat claim and data.business_admin_user_id
// claim and switches to "<admin user id>b<iat>".
//
// # Error Handling
//
// Failures are classified by sentinel errors matched with errors.Is:
// ErrRequest, ErrDecode, ErrAuthentication, ErrUnauthorized and ErrAPI.
// Server-declared failures are returned as *APIError, which unwraps to one of
// the last three.
//
// # Concurrency
//
// HTTPClient is meant for a single goroutine; the session identifier is not
// guarded.
package client
