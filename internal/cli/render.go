package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rcliao/ebbinghaus/internal/model"
	"github.com/rcliao/ebbinghaus/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Faint(true)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	masteryStyles = map[model.Mastery]lipgloss.Style{
		model.Mastered:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		model.Learning:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		model.Struggling: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func renderMastery(m model.Mastery) string {
	if st, ok := masteryStyles[m]; ok {
		return st.Render(m.DisplayName())
	}
	return m.DisplayName()
}

// renderLine is the one-line list form of a point.
func renderLine(p model.KnowledgePoint) string {
	line := fmt.Sprintf("%s  %s  [%s]  next %s", metaStyle.Render(p.ID), titleStyle.Render(p.Title),
		renderMastery(p.MasteryLevel), p.NextReview)
	if len(p.Tags) > 0 {
		line += metaStyle.Render("  #" + strings.Join(p.Tags, " #"))
	}
	return line
}

func renderList(points []model.KnowledgePoint) string {
	if len(points) == 0 {
		return metaStyle.Render("(none)")
	}
	lines := make([]string, len(points))
	for i, p := range points {
		lines[i] = renderLine(p)
	}
	return strings.Join(lines, "\n")
}

// renderCard shows a full point.
func renderCard(p model.KnowledgePoint) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	b.WriteString("\n")
	meta := fmt.Sprintf("%s · reviews %d · created %s · next %s", p.MasteryLevel.DisplayName(), p.ReviewCount, p.CreatedAt, p.NextReview)
	if p.LastReviewed != nil {
		meta += " · last " + *p.LastReviewed
	}
	b.WriteString(metaStyle.Render(meta))
	if len(p.Tags) > 0 {
		b.WriteString("\n")
		b.WriteString(metaStyle.Render("#" + strings.Join(p.Tags, " #")))
	}
	b.WriteString("\n\n")
	b.WriteString(p.Content)
	return cardStyle.Render(b.String())
}

func renderStats(st *store.Stats) string {
	rows := []string{
		titleStyle.Render("Today " + st.Today),
		fmt.Sprintf("%-11s %d", "Due", st.DueToday),
		fmt.Sprintf("%-11s %s", "Mastered", masteryStyles[model.Mastered].Render(fmt.Sprint(st.Mastered))),
		fmt.Sprintf("%-11s %s", "Learning", masteryStyles[model.Learning].Render(fmt.Sprint(st.Learning))),
		fmt.Sprintf("%-11s %s", "Struggling", masteryStyles[model.Struggling].Render(fmt.Sprint(st.Struggling))),
		fmt.Sprintf("%-11s %d", "Total", st.Total),
	}
	return cardStyle.Render(strings.Join(rows, "\n"))
}
