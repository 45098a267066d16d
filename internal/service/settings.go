package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, patch domain.SettingsPatch) (*domain.Settings, error) {
	if patch.SessionTimeoutMinutes != nil && *patch.SessionTimeoutMinutes < 1 {
		return nil, domain.NewValidationError("session_timeout_minutes", "session timeout must be at least one minute")
	}
	if patch.APIRateLimit != nil && *patch.APIRateLimit < 1 {
		return nil, domain.NewValidationError("api_rate_limit", "rate limit must be at least one request per minute")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	patch.Apply(settings)
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) RegenerateAPIKey(ctx context.Context) (string, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	key, err := newAPIKey()
	if err != nil {
		return "", err
	}
	settings.APIKey = key
	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return "", err
	}
	return key, nil
}

func newAPIKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return "ms_" + hex.EncodeToString(buf), nil
}
