package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/ebbinghaus/internal/store"
)

type yamlPoint struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	MasteryLevel string   `yaml:"mastery"`
	Tags         []string `yaml:"tags,omitempty"`
	CreatedAt    string   `yaml:"created"`
	LastReviewed *string  `yaml:"last_reviewed"`
	NextReview   string   `yaml:"next_review"`
	ReviewCount  int      `yaml:"review_count"`
	Content      string   `yaml:"content"`
}

type yamlBundle struct {
	Version         string         `yaml:"version"`
	ExportDate      string         `yaml:"export_date"`
	Settings        map[string]any `yaml:"settings,omitempty"`
	KnowledgePoints []yamlPoint    `yaml:"knowledge_points"`
}

// YAML writes the bundle as a YAML document. Multi-line content is emitted
// as a literal block so Markdown stays readable.
func YAML(w io.Writer, b *store.Bundle) error {
	out := yamlBundle{
		Version:         b.Version,
		ExportDate:      b.ExportDate,
		Settings:        b.Settings,
		KnowledgePoints: make([]yamlPoint, 0, len(b.KnowledgePoints)),
	}
	for _, p := range b.KnowledgePoints {
		out.KnowledgePoints = append(out.KnowledgePoints, yamlPoint{
			ID:           p.ID,
			Title:        p.Title,
			MasteryLevel: string(p.MasteryLevel),
			Tags:         p.Tags,
			CreatedAt:    p.CreatedAt,
			LastReviewed: p.LastReviewed,
			NextReview:   p.NextReview,
			ReviewCount:  p.ReviewCount,
			Content:      p.Content,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
