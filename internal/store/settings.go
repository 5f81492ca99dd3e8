package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/rcliao/ebbinghaus/internal/kv"
	"github.com/rcliao/ebbinghaus/internal/model"
)

// LoadSettings returns the stored settings object. Missing or unreadable
// settings yield an empty map.
func (s *Store) LoadSettings(ctx context.Context) (map[string]any, error) {
	raw, ok, err := s.kv.Get(ctx, kv.SettingsKey)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings := map[string]any{}
	if !ok {
		return settings, nil
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.log.Warn("stored settings are unreadable, using defaults",
			zap.String("key", kv.SettingsKey),
			zap.Error(fmt.Errorf("%w: %v", model.ErrStorageCorrupt, err)))
		return map[string]any{}, nil
	}
	if settings == nil {
		settings = map[string]any{}
	}
	return settings, nil
}

// SaveSettings replaces the stored settings object.
func (s *Store) SaveSettings(ctx context.Context, settings map[string]any) error {
	if settings == nil {
		settings = map[string]any{}
	}
	b, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: encode settings: %v", model.ErrInvalidArgument, err)
	}
	if err := s.kv.Set(ctx, kv.SettingsKey, string(b)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
