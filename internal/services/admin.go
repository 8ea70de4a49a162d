package services

import (
	"context"
	"fmt"
	"strings"

	"meetingreg/internal/domain"
)

type adminService struct {
	repo domain.AdminRepository
}

// NewAdminService creates an AdminService over the credential repository.
func NewAdminService(repo domain.AdminRepository) domain.AdminService {
	return &adminService{repo: repo}
}

// Authenticate checks the bootstrap pair first so the dashboard stays
// reachable even when both stores are empty or down, then compares against
// the persisted list. Comparison is plain text; this check is a presence
// flag, not a security boundary.
func (s *adminService) Authenticate(ctx context.Context, loginID, password string) (*domain.AdminCredential, error) {
	if loginID == domain.BootstrapLoginID && password == domain.BootstrapPassword {
		return &domain.AdminCredential{
			LoginID:     domain.BootstrapLoginID,
			DisplayName: "기본 관리자",
		}, nil
	}

	creds, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	for _, cred := range creds {
		if cred.LoginID == loginID && cred.Password == password {
			return cred, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (s *adminService) List(ctx context.Context) ([]*domain.AdminCredential, error) {
	creds, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return creds, nil
}

func (s *adminService) Upsert(ctx context.Context, cred *domain.AdminCredential) (*domain.AdminCredential, error) {
	if strings.TrimSpace(cred.LoginID) == "" {
		return nil, domain.NewValidationError("login_id", "login_id is required")
	}
	if cred.Password == "" {
		return nil, domain.NewValidationError("password", "password is required")
	}
	if strings.TrimSpace(cred.DisplayName) == "" {
		return nil, domain.NewValidationError("display_name", "display_name is required")
	}
	if err := s.repo.Save(ctx, cred); err != nil {
		return nil, fmt.Errorf("save admin: %w", err)
	}
	return cred, nil
}

func (s *adminService) Remove(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("id", "id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}
