package domain

import "context"

// AdminCredential is one operator login. Passwords are stored and compared as
// plain text; this application is explicitly outside any security-hardening
// scope and the admin check is a presence flag, not a security boundary.
// swagger:model AdminCredential
type AdminCredential struct {
	ID          string `json:"id,omitempty"`
	LoginID     string `json:"login_id"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// Bootstrap credential, implicitly valid even when no credentials are
// persisted (or when storage is unreachable).
const (
	BootstrapLoginID  = "admin"
	BootstrapPassword = "admin"
)

// AdminRepository stores operator credentials under admins/{id}.
type AdminRepository interface {
	List(ctx context.Context) ([]*AdminCredential, error)
	// Save upserts. A credential without an ID gets one assigned.
	Save(ctx context.Context, cred *AdminCredential) error
	Delete(ctx context.Context, id string) error
}

// AdminService manages operator credentials and checks logins.
type AdminService interface {
	// Authenticate accepts the bootstrap pair or an exact match against any
	// persisted credential. It returns ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, loginID, password string) (*AdminCredential, error)
	List(ctx context.Context) ([]*AdminCredential, error)
	Upsert(ctx context.Context, cred *AdminCredential) (*AdminCredential, error)
	Remove(ctx context.Context, id string) error
}
