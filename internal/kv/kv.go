// Package kv provides the whole-value key/value substrate the store
// persists into. Every Set replaces the value atomically.
package kv

import (
	"context"
	"fmt"

	"github.com/rcliao/ebbinghaus/internal/model"
)

// Keys used by the application.
const (
	PointsKey   = "my_ebbinghaus_knowledge_points"
	SettingsKey = "my_ebbinghaus_settings"
	BackupKey   = "my_ebbinghaus_backup"
)

// Substrate is a string-keyed store of string values.
type Substrate interface {
	// Get returns the value for key. ok is false when the key is unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value for key in a single write.
	// A rejected write wraps model.ErrStorageFull.
	Set(ctx context.Context, key, value string) error

	// Close releases the substrate.
	Close() error
}

// Quota wraps a substrate and rejects values larger than MaxBytes.
type Quota struct {
	Substrate
	MaxBytes int
}

// WithQuota limits value size. maxBytes <= 0 returns s unchanged.
func WithQuota(s Substrate, maxBytes int) Substrate {
	if maxBytes <= 0 {
		return s
	}
	return &Quota{Substrate: s, MaxBytes: maxBytes}
}

// Set rejects oversized values before they reach the backend.
func (q *Quota) Set(ctx context.Context, key, value string) error {
	if len(value) > q.MaxBytes {
		return fmt.Errorf("%w: %s is %d bytes, quota is %d", model.ErrStorageFull, key, len(value), q.MaxBytes)
	}
	return q.Substrate.Set(ctx, key, value)
}
