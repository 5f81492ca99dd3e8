package store

import (
	"context"

	"github.com/rcliao/ebbinghaus/internal/model"
	"github.com/rcliao/ebbinghaus/internal/schedule"
)

// Stats holds collection counts.
type Stats struct {
	Total      int    `json:"total"`
	Mastered   int    `json:"mastered"`
	Learning   int    `json:"learning"`
	Struggling int    `json:"struggling"`
	DueToday   int    `json:"due_today"`
	Today      string `json:"today"`
}

// Stats counts points by mastery level and due status.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	points, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(points, s.clock.Today()), nil
}

// Summarize computes Stats over a snapshot.
func Summarize(points []model.KnowledgePoint, today string) *Stats {
	st := &Stats{Total: len(points), Today: today}
	for _, p := range points {
		switch p.MasteryLevel {
		case model.Mastered:
			st.Mastered++
		case model.Learning:
			st.Learning++
		case model.Struggling:
			st.Struggling++
		}
		if schedule.IsDue(p.NextReview, today) {
			st.DueToday++
		}
	}
	return st
}
