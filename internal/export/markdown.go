// Package export renders knowledge points as human-readable documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/ebbinghaus/internal/model"
	"github.com/rcliao/ebbinghaus/internal/schedule"
	"github.com/rcliao/ebbinghaus/internal/store"
)

// Markdown writes a report grouped by mastery level, followed by totals and
// the list of points due on today.
func Markdown(w io.Writer, points []model.KnowledgePoint, today string) error {
	var b strings.Builder

	b.WriteString("# Knowledge Points\n\n")
	fmt.Fprintf(&b, "**Exported:** %s\n", today)
	fmt.Fprintf(&b, "**Count:** %d\n\n", len(points))
	b.WriteString("---\n\n")

	for _, level := range model.MasteryLevels {
		group := store.FilterMastery(points, level)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s (%d)\n\n", level.DisplayName(), len(group))
		for i, p := range group {
			writePoint(&b, i+1, p)
		}
	}

	st := store.Summarize(points, today)
	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- **Mastered:** %d\n", st.Mastered)
	fmt.Fprintf(&b, "- **Learning:** %d\n", st.Learning)
	fmt.Fprintf(&b, "- **Struggling:** %d\n", st.Struggling)
	fmt.Fprintf(&b, "- **Total:** %d\n\n", st.Total)

	due := dueWithDate(points, today)
	if len(due) > 0 {
		b.WriteString("## Due Today\n\n")
		for _, p := range due {
			fmt.Fprintf(&b, "- %s (%s)\n", p.Title, p.MasteryLevel.DisplayName())
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writePoint(b *strings.Builder, n int, p model.KnowledgePoint) {
	fmt.Fprintf(b, "### %d. %s\n\n", n, p.Title)
	fmt.Fprintf(b, "**Mastery:** %s\n", p.MasteryLevel.DisplayName())
	fmt.Fprintf(b, "**Reviews:** %d\n", p.ReviewCount)
	fmt.Fprintf(b, "**Created:** %s\n", p.CreatedAt)
	if p.LastReviewed != nil {
		fmt.Fprintf(b, "**Last reviewed:** %s\n", *p.LastReviewed)
	}
	fmt.Fprintf(b, "**Next review:** %s\n", p.NextReview)
	if len(p.Tags) > 0 {
		fmt.Fprintf(b, "**Tags:** %s\n", strings.Join(p.Tags, ", "))
	}
	b.WriteString("\n**Content:**\n\n")
	b.WriteString(p.Content)
	b.WriteString("\n\n---\n\n")
}

// dueWithDate lists due points that carry a schedule; unscheduled points
// are left out of the reminder.
func dueWithDate(points []model.KnowledgePoint, today string) []model.KnowledgePoint {
	var out []model.KnowledgePoint
	for _, p := range points {
		if p.NextReview != "" && schedule.IsDue(p.NextReview, today) {
			out = append(out, p)
		}
	}
	return out
}
