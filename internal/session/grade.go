package session

import (
	"fmt"

	"github.com/rcliao/ebbinghaus/internal/model"
	"github.com/rcliao/ebbinghaus/internal/schedule"
)

// PlanGrade computes the patch for grading p on today.
//
// Success keeps the mastery level, bumps the review count and stamps
// lastReviewed. Failure demotes, resets the count and leaves lastReviewed
// alone. Both carry an explicit nextReview so Update does not reschedule.
func PlanGrade(p model.KnowledgePoint, result model.Result, today string) (model.Patch, error) {
	var count int
	switch result {
	case model.Success:
		count = p.ReviewCount + 1
	case model.Failure:
		count = 0
	default:
		return model.Patch{}, fmt.Errorf("%w: unknown result %q", model.ErrInvalidArgument, result)
	}

	mastery := schedule.ApplyGrade(p.MasteryLevel, result)
	next, err := schedule.NextReviewDate(mastery, today, count)
	if err != nil {
		return model.Patch{}, err
	}

	patch := model.Patch{
		MasteryLevel: &mastery,
		NextReview:   &next,
		ReviewCount:  &count,
	}
	if result == model.Success {
		patch.LastReviewed = &today
	}
	return patch, nil
}
