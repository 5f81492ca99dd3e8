// Package schedule implements the fixed-interval forgetting-curve policy.
// Every function here is pure: same inputs, same outputs, no I/O.
package schedule

import (
	"fmt"

	"github.com/rcliao/ebbinghaus/internal/clock"
	"github.com/rcliao/ebbinghaus/internal/model"
)

// Intervals maps each mastery level to its day offsets, indexed by review
// count. Past the end of a row the last offset is reused.
var Intervals = map[model.Mastery][]int{
	model.Mastered:   {1, 3, 7, 15, 30},
	model.Learning:   {1, 2, 4, 8, 16},
	model.Struggling: {0, 1, 2, 4, 8},
}

// Offset returns the day offset for the given level and review count.
func Offset(m model.Mastery, reviewCount int) (int, error) {
	row, ok := Intervals[m]
	if !ok {
		return 0, fmt.Errorf("%w: unknown mastery level %q", model.ErrInvalidArgument, m)
	}
	if reviewCount < 0 {
		return 0, fmt.Errorf("%w: negative review count %d", model.ErrInvalidArgument, reviewCount)
	}
	return row[min(reviewCount, len(row)-1)], nil
}

// NextReviewDate returns anchor plus the offset selected by (m, reviewCount).
func NextReviewDate(m model.Mastery, anchor string, reviewCount int) (string, error) {
	if anchor == "" {
		return "", fmt.Errorf("%w: anchor date is required", model.ErrInvalidArgument)
	}
	days, err := Offset(m, reviewCount)
	if err != nil {
		return "", err
	}
	next, err := clock.AddDays(anchor, days)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidArgument, err)
	}
	return next, nil
}

// ApplyGrade returns the mastery level after a recall attempt.
// Success holds the level; failure demotes one step, stopping at struggling.
func ApplyGrade(current model.Mastery, result model.Result) model.Mastery {
	if result == model.Success {
		return current
	}
	switch current {
	case model.Mastered:
		return model.Learning
	default:
		return model.Struggling
	}
}

// IsDue reports whether a point scheduled for nextReview is due on today.
// An unset nextReview counts as due.
func IsDue(nextReview, today string) bool {
	if nextReview == "" {
		return true
	}
	// YYYY-MM-DD sorts lexically in calendar order.
	return today >= nextReview
}
