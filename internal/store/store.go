// Package store owns the knowledge point collection. Every operation reads
// the whole collection from the substrate and every mutation writes it back
// in one Set, so the persisted value is always a consistent snapshot.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rcliao/ebbinghaus/internal/clock"
	"github.com/rcliao/ebbinghaus/internal/ids"
	"github.com/rcliao/ebbinghaus/internal/kv"
	"github.com/rcliao/ebbinghaus/internal/model"
	"github.com/rcliao/ebbinghaus/internal/schedule"
)

// AddParams holds parameters for creating a knowledge point.
type AddParams struct {
	Title        string        `validate:"required"`
	Content      string        `validate:"required"`
	Tags         []string      `validate:"dive,required"`
	MasteryLevel model.Mastery `validate:"omitempty,oneof=mastered learning struggling"`
}

// Store is the knowledge point repository.
type Store struct {
	kv       kv.Substrate
	clock    clock.Clock
	ids      ids.Generator
	log      *zap.Logger
	validate *validator.Validate
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the system clock.
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIDs overrides the id generator.
func WithIDs(g ids.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// WithLogger sets the logger used for recovered storage problems.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a store persisting into sub.
func New(sub kv.Substrate, opts ...Option) *Store {
	s := &Store{
		kv:       sub,
		clock:    clock.System{},
		ids:      ids.NewULID(),
		log:      zap.NewNop(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the store clock's current date.
func (s *Store) Today() string {
	return s.clock.Today()
}

// LoadAll returns the collection in insertion order. A missing or corrupt
// value yields an empty collection; only substrate read failures are errors.
func (s *Store) LoadAll(ctx context.Context) ([]model.KnowledgePoint, error) {
	raw, ok, err := s.kv.Get(ctx, kv.PointsKey)
	if err != nil {
		return nil, fmt.Errorf("load knowledge points: %w", err)
	}
	points := []model.KnowledgePoint{}
	if !ok || strings.TrimSpace(raw) == "" {
		return points, nil
	}
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		s.log.Warn("stored knowledge points are unreadable, starting empty",
			zap.String("key", kv.PointsKey),
			zap.Error(fmt.Errorf("%w: %v", model.ErrStorageCorrupt, err)))
		return []model.KnowledgePoint{}, nil
	}
	if points == nil {
		// top-level JSON null
		points = []model.KnowledgePoint{}
	}
	return points, nil
}

// SaveAll replaces the persisted collection with points.
func (s *Store) SaveAll(ctx context.Context, points []model.KnowledgePoint) error {
	if points == nil {
		return fmt.Errorf("%w: collection must be a slice, got nil", model.ErrInvalidArgument)
	}
	b, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("encode knowledge points: %w", err)
	}
	if err := s.kv.Set(ctx, kv.PointsKey, string(b)); err != nil {
		return fmt.Errorf("save knowledge points: %w", err)
	}
	s.log.Debug("saved knowledge points", zap.Int("count", len(points)))
	return nil
}

// Add creates a knowledge point scheduled from today and appends it.
// Mastery defaults to struggling.
func (s *Store) Add(ctx context.Context, p AddParams) (*model.KnowledgePoint, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)
	p.Tags = cleanTags(p.Tags)
	if p.MasteryLevel == "" {
		p.MasteryLevel = model.Struggling
	}
	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}

	today := s.clock.Today()
	next, err := schedule.NextReviewDate(p.MasteryLevel, today, 0)
	if err != nil {
		return nil, err
	}

	points, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	kp := model.KnowledgePoint{
		ID:           s.ids.NewID(),
		Title:        p.Title,
		Content:      p.Content,
		MasteryLevel: p.MasteryLevel,
		Tags:         p.Tags,
		CreatedAt:    today,
		LastReviewed: nil,
		NextReview:   next,
		ReviewCount:  0,
	}
	points = append(points, kp)

	if err := s.SaveAll(ctx, points); err != nil {
		return nil, err
	}
	return &kp, nil
}

// Get returns the point with the given id.
func (s *Store) Get(ctx context.Context, id string) (*model.KnowledgePoint, error) {
	points, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(points, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	kp := points[i]
	return &kp, nil
}

// Update merges patch into the point with the given id and persists.
//
// When the patch changes the mastery level and carries no NextReview, the
// next review is rescheduled from today using the stored review count.
func (s *Store) Update(ctx context.Context, id string, patch model.Patch) (*model.KnowledgePoint, error) {
	if err := s.normalizePatch(&patch); err != nil {
		return nil, err
	}

	points, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(points, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	current := points[i]

	if patch.MasteryLevel != nil && *patch.MasteryLevel != current.MasteryLevel && patch.NextReview == nil {
		next, err := schedule.NextReviewDate(*patch.MasteryLevel, s.clock.Today(), current.ReviewCount)
		if err != nil {
			return nil, err
		}
		patch.NextReview = &next
		s.log.Debug("mastery changed, rescheduled",
			zap.String("id", id),
			zap.String("from", string(current.MasteryLevel)),
			zap.String("to", string(*patch.MasteryLevel)),
			zap.String("next_review", next))
	}

	updated := current.Clone()
	patch.Apply(&updated)
	points[i] = updated

	if err := s.SaveAll(ctx, points); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the point with the given id, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	points, err := s.LoadAll(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]model.KnowledgePoint, 0, len(points))
	for _, p := range points {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(points) {
		return false, nil
	}
	if err := s.SaveAll(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) normalizePatch(p *model.Patch) error {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return fmt.Errorf("%w: title must not be empty", model.ErrInvalidArgument)
		}
		p.Title = &t
	}
	if p.Content != nil {
		c := strings.TrimSpace(*p.Content)
		if c == "" {
			return fmt.Errorf("%w: content must not be empty", model.ErrInvalidArgument)
		}
		p.Content = &c
	}
	if p.MasteryLevel != nil && !p.MasteryLevel.IsValid() {
		return fmt.Errorf("%w: unknown mastery level %q", model.ErrInvalidArgument, *p.MasteryLevel)
	}
	if p.Tags != nil {
		tags := cleanTags(*p.Tags)
		p.Tags = &tags
	}
	if p.ReviewCount != nil && *p.ReviewCount < 0 {
		return fmt.Errorf("%w: negative review count", model.ErrInvalidArgument)
	}
	if p.NextReview != nil {
		if _, err := clock.Parse(*p.NextReview); err != nil {
			return fmt.Errorf("%w: next review: %v", model.ErrInvalidArgument, err)
		}
	}
	return nil
}

// cleanTags trims tags and drops empty ones. Never returns nil.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func indexOf(points []model.KnowledgePoint, id string) int {
	for i, p := range points {
		if p.ID == id {
			return i
		}
	}
	return -1
}
