package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims are the access token claims the session identifier is built
// from. data arrives either as an object or as a JSON-encoded string.
type sessionClaims struct {
	jwt.RegisteredClaims
	Data json.RawMessage `json:"data,omitempty"`
}

type dataClaim struct {
	BusinessAdminUserID int64 `json:"business_admin_user_id"`
}

// UpdateSessionID switches the session identifier to "<admin id>b<iat>"
// taken from the access token's claims. The signature is not verified. When
// the token cannot be parsed, iat is missing or the admin id is not positive
// the current identifier is kept and false is returned.
func (c *HTTPClient) UpdateSessionID(accessToken string) bool {
	id, ok := sessionIDFromToken(accessToken)
	if !ok {
		return false
	}
	c.sessionID = id
	return true
}

func sessionIDFromToken(accessToken string) (string, bool) {
	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return "", false
	}
	if claims.IssuedAt == nil || len(claims.Data) == 0 {
		return "", false
	}

	raw := []byte(claims.Data)
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		raw = []byte(s)
	}

	var data dataClaim
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", false
	}
	if data.BusinessAdminUserID <= 0 {
		return "", false
	}

	return fmt.Sprintf("%db%d", data.BusinessAdminUserID, claims.IssuedAt.Unix()), true
}
