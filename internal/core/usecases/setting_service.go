package usecases

import (
	"context"
	"fmt"

	"github.com/unaigarro/mapstamp/internal/core/domain"
	"github.com/unaigarro/mapstamp/internal/core/ports"
)

const apiKeyCacheKey = "settings:" + domain.SettingAPIKey

// SettingService reads and writes persisted configuration values.
type SettingService struct {
	settings ports.SettingRepository
	cache    ports.CacheService
}

// NewSettingService creates a new SettingService.
func NewSettingService(settings ports.SettingRepository, cache ports.CacheService) *SettingService {
	return &SettingService{settings: settings, cache: cache}
}

// APIKey returns the stored Static Maps API key, or "" when none has
// been configured yet. The value is cached briefly since it is read on
// every URL build.
func (s *SettingService) APIKey(ctx context.Context) (string, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, apiKeyCacheKey); err == nil {
			return string(data), nil
		}
	}

	setting, err := s.settings.Get(ctx, domain.SettingAPIKey)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return "", nil
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, apiKeyCacheKey, []byte(setting.Value), 60)
	}
	return setting.Value, nil
}

// SetAPIKey persists a new API key and invalidates the cached copy.
func (s *SettingService) SetAPIKey(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("api key must not be empty")
	}
	if err := s.settings.Set(ctx, domain.SettingAPIKey, key); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, apiKeyCacheKey)
	}
	return nil
}
