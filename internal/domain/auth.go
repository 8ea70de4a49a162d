package domain

import "time"

// TokenIssuer signs admin session tokens after a successful login.
type TokenIssuer interface {
	Issue(adminID, loginID string, expiry time.Duration) (string, error)
}

// TokenVerifier validates an admin session token and returns the login ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
