package store

import (
	"context"
	"strings"

	"github.com/rcliao/ebbinghaus/internal/model"
	"github.com/rcliao/ebbinghaus/internal/schedule"
)

// All returns every point in insertion order.
func (s *Store) All(ctx context.Context) ([]model.KnowledgePoint, error) {
	return s.LoadAll(ctx)
}

// Due returns the points due today, in store order.
func (s *Store) Due(ctx context.Context) ([]model.KnowledgePoint, error) {
	points, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterDue(points, s.clock.Today()), nil
}

// ByMastery returns the points at the given level.
func (s *Store) ByMastery(ctx context.Context, level model.Mastery) ([]model.KnowledgePoint, error) {
	points, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterMastery(points, level), nil
}

// Search returns the points matching q. An empty query returns everything.
func (s *Store) Search(ctx context.Context, q string) ([]model.KnowledgePoint, error) {
	points, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return Match(points, q), nil
}

// FilterDue keeps points whose next review is on or before today.
func FilterDue(points []model.KnowledgePoint, today string) []model.KnowledgePoint {
	return filter(points, func(p model.KnowledgePoint) bool {
		return schedule.IsDue(p.NextReview, today)
	})
}

// FilterMastery keeps points at level.
func FilterMastery(points []model.KnowledgePoint, level model.Mastery) []model.KnowledgePoint {
	return filter(points, func(p model.KnowledgePoint) bool {
		return p.MasteryLevel == level
	})
}

// Match keeps points whose title, content, or any tag contains q,
// ignoring case.
func Match(points []model.KnowledgePoint, q string) []model.KnowledgePoint {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return filter(points, func(model.KnowledgePoint) bool { return true })
	}
	return filter(points, func(p model.KnowledgePoint) bool {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q) {
			return true
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
		return false
	})
}

func filter(points []model.KnowledgePoint, keep func(model.KnowledgePoint) bool) []model.KnowledgePoint {
	out := make([]model.KnowledgePoint, 0, len(points))
	for _, p := range points {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
