package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rcliao/ebbinghaus/internal/kv"
	"github.com/rcliao/ebbinghaus/internal/model"
)

// BundleVersion is written into every export.
const BundleVersion = "1.0"

// Bundle is the portable export format.
type Bundle struct {
	KnowledgePoints []model.KnowledgePoint `json:"knowledgePoints"`
	Settings        map[string]any         `json:"settings"`
	ExportDate      string                 `json:"exportDate"`
	Version         string                 `json:"version"`
}

// Export returns the full collection and settings as a bundle.
func (s *Store) Export(ctx context.Context) (*Bundle, error) {
	points, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.LoadSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &Bundle{
		KnowledgePoints: points,
		Settings:        settings,
		ExportDate:      s.clock.Today(),
		Version:         BundleVersion,
	}, nil
}

// Import replaces the collection with the bundle's points, after saving the
// current state under the backup key. Settings are replaced only when the
// bundle carries them. Ids are kept as given. Returns the imported count.
func (s *Store) Import(ctx context.Context, data []byte) (int, error) {
	return s.importBundle(ctx, data, true)
}

// RestoreBackup re-imports the snapshot taken by the last Import.
// The backup itself is left in place.
func (s *Store) RestoreBackup(ctx context.Context) (int, error) {
	raw, ok, err := s.kv.Get(ctx, kv.BackupKey)
	if err != nil {
		return 0, fmt.Errorf("load backup: %w", err)
	}
	if !ok {
		return 0, fmt.Errorf("%w: no backup has been taken", model.ErrNotFound)
	}
	return s.importBundle(ctx, []byte(raw), false)
}

type rawBundle struct {
	KnowledgePoints json.RawMessage `json:"knowledgePoints"`
	Settings        json.RawMessage `json:"settings"`
}

func (s *Store) importBundle(ctx context.Context, data []byte, backup bool) (int, error) {
	var rb rawBundle
	if err := json.Unmarshal(data, &rb); err != nil {
		return 0, fmt.Errorf("%w: parse bundle: %v", model.ErrInvalidArgument, err)
	}
	kp := bytes.TrimSpace(rb.KnowledgePoints)
	if len(kp) == 0 || kp[0] != '[' {
		return 0, fmt.Errorf("%w: knowledgePoints must be an array", model.ErrInvalidArgument)
	}
	points := []model.KnowledgePoint{}
	if err := json.Unmarshal(kp, &points); err != nil {
		return 0, fmt.Errorf("%w: knowledgePoints: %v", model.ErrInvalidArgument, err)
	}

	var settings map[string]any
	hasSettings := len(rb.Settings) > 0 && !bytes.Equal(bytes.TrimSpace(rb.Settings), []byte("null"))
	if hasSettings {
		if err := json.Unmarshal(rb.Settings, &settings); err != nil {
			return 0, fmt.Errorf("%w: settings: %v", model.ErrInvalidArgument, err)
		}
	}

	if backup {
		if err := s.snapshot(ctx); err != nil {
			return 0, err
		}
	}
	if err := s.SaveAll(ctx, points); err != nil {
		return 0, err
	}
	if hasSettings {
		if err := s.SaveSettings(ctx, settings); err != nil {
			return 0, err
		}
	}
	return len(points), nil
}

func (s *Store) snapshot(ctx context.Context) error {
	b, err := s.Export(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := s.kv.Set(ctx, kv.BackupKey, string(data)); err != nil {
		return fmt.Errorf("save backup: %w", err)
	}
	return nil
}
