package services

import (
	"context"
	"errors"
	"fmt"

	"meetingreg/internal/domain"
)

type settingsService struct {
	repo domain.SettingsRepository
}

// NewSettingsService creates a SettingsService over the settings repository.
func NewSettingsService(repo domain.SettingsRepository) domain.SettingsService {
	return &settingsService{repo: repo}
}

// Get returns the persisted singleton, or the defaults while no save has
// happened yet. Defaults are not persisted on read; the document is only
// written through the CMS save action.
func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, settings *domain.Settings) error {
	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
