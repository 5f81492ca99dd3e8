// Package session drives a review pass over the due queue.
//
// After every grade or skip the due queue is re-read from the store, so a
// point that is still due (a failed struggling point, offset 0) comes back
// in the same pass. The pass ends only when nothing is due.
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rcliao/ebbinghaus/internal/model"
)

// ErrNotReviewing is returned by review operations outside review mode.
var ErrNotReviewing = errors.New("session: not in review mode")

// Mode is the session's presentation state.
type Mode int

const (
	List Mode = iota
	Review
	Complete
)

func (m Mode) String() string {
	switch m {
	case List:
		return "list"
	case Review:
		return "review"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Store is what a session needs from the knowledge point store.
type Store interface {
	Due(ctx context.Context) ([]model.KnowledgePoint, error)
	Get(ctx context.Context, id string) (*model.KnowledgePoint, error)
	Update(ctx context.Context, id string, patch model.Patch) (*model.KnowledgePoint, error)
	Today() string
}

// State is a snapshot of the session.
type State struct {
	Mode   Mode     `json:"mode"`
	Queue  []string `json:"queue"`
	Cursor int      `json:"cursor"`
}

// Session holds the due queue as ids and a cursor into it. It never caches
// point fields across a grade.
type Session struct {
	store  Store
	log    *zap.Logger
	mode   Mode
	queue  []string
	cursor int
}

// New returns a session in list mode.
func New(store Store, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{store: store, log: log, mode: List}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	return State{
		Mode:   s.mode,
		Queue:  append([]string(nil), s.queue...),
		Cursor: s.cursor,
	}
}

// Progress returns the 1-based position in the queue and its length.
func (s *Session) Progress() (int, int) {
	if s.mode != Review {
		return 0, len(s.queue)
	}
	return s.cursor + 1, len(s.queue)
}

// Start loads the due queue and enters review mode. With nothing due it
// returns model.ErrDueQueueEmpty and stays in list mode.
func (s *Session) Start(ctx context.Context) error {
	due, err := s.store.Due(ctx)
	if err != nil {
		return fmt.Errorf("load due queue: %w", err)
	}
	if len(due) == 0 {
		return model.ErrDueQueueEmpty
	}
	s.queue = idsOf(due)
	s.cursor = 0
	s.mode = Review
	s.log.Debug("review started", zap.Int("due", len(s.queue)))
	return nil
}

// Current returns a fresh copy of the point under the cursor.
func (s *Session) Current(ctx context.Context) (*model.KnowledgePoint, error) {
	if s.mode != Review {
		return nil, ErrNotReviewing
	}
	return s.store.Get(ctx, s.queue[s.cursor])
}

// Grade applies result to the current point, persists it, and advances.
// A store failure aborts the review back to list mode; the queue is kept.
func (s *Session) Grade(ctx context.Context, result model.Result) error {
	if s.mode != Review {
		return ErrNotReviewing
	}
	if result != model.Success && result != model.Failure {
		return fmt.Errorf("%w: unknown result %q", model.ErrInvalidArgument, result)
	}

	id := s.queue[s.cursor]
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return s.abort(fmt.Errorf("grade %s: %w", id, err))
	}
	patch, err := PlanGrade(*p, result, s.store.Today())
	if err != nil {
		return s.abort(fmt.Errorf("grade %s: %w", id, err))
	}
	if _, err := s.store.Update(ctx, id, patch); err != nil {
		return s.abort(fmt.Errorf("grade %s: %w", id, err))
	}
	s.log.Debug("graded",
		zap.String("id", id),
		zap.String("result", string(result)),
		zap.String("mastery", string(*patch.MasteryLevel)),
		zap.String("next_review", *patch.NextReview))

	return s.advance(ctx)
}

// Skip advances without touching the current point.
func (s *Session) Skip(ctx context.Context) error {
	if s.mode != Review {
		return ErrNotReviewing
	}
	return s.advance(ctx)
}

// Exit returns to list mode.
func (s *Session) Exit() {
	s.mode = List
}

// advance moves the cursor against a freshly queried due queue, wrapping
// to the start while anything is still due.
func (s *Session) advance(ctx context.Context) error {
	next := s.cursor + 1
	due, err := s.store.Due(ctx)
	if err != nil {
		return s.abort(fmt.Errorf("reload due queue: %w", err))
	}
	s.queue = idsOf(due)

	switch {
	case next < len(s.queue):
		s.cursor = next
	case len(s.queue) > 0:
		s.cursor = 0
	default:
		s.cursor = 0
		s.mode = Complete
		s.log.Debug("review complete")
	}
	return nil
}

func (s *Session) abort(err error) error {
	s.mode = List
	s.log.Error("review aborted", zap.Error(err), zap.Strings("queue", s.queue), zap.Int("cursor", s.cursor))
	return err
}

func idsOf(points []model.KnowledgePoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.ID
	}
	return out
}
