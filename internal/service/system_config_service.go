package service

import (
	"context"
	"fmt"

	"github.com/edumetrics/assess-backend/internal/repository"
	"github.com/rs/zerolog"
)

// SystemConfigService exposes deployment-level settings. Only keys in
// the public allowlist ever reach unauthenticated clients.
type SystemConfigService struct {
	repo *repository.SystemConfigRepository
	log  zerolog.Logger
}

// Keys safe to expose to unauthenticated clients.
var publicConfigKeys = map[string]bool{
	"platform_name":       true,
	"registration_open":   true,
	"test_duration_label": true,
	"support_contact":     true,
}

// NewSystemConfigService creates a new SystemConfigService.
func NewSystemConfigService(repo *repository.SystemConfigRepository, log zerolog.Logger) *SystemConfigService {
	return &SystemConfigService{
		repo: repo,
		log:  log.With().Str("component", "system_config_service").Logger(),
	}
}

// GetPublic returns the allowlisted settings as a key/value map.
func (s *SystemConfigService) GetPublic(ctx context.Context) (map[string]string, error) {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	public := make(map[string]string)
	for _, e := range entries {
		if publicConfigKeys[e.Key] {
			public[e.Key] = e.Value
		}
	}
	return public, nil
}

// Set upserts one setting. Admin-facing.
func (s *SystemConfigService) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return fmt.Errorf("upsert config: %w", err)
	}
	s.log.Info().Str("key", key).Msg("System config updated")
	return nil
}
