// Package model defines the knowledge point data types.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Mastery is the self-assessed familiarity with a knowledge point.
type Mastery string

const (
	Mastered   Mastery = "mastered"
	Learning   Mastery = "learning"
	Struggling Mastery = "struggling"
)

// MasteryLevels lists the valid levels, strongest first.
var MasteryLevels = []Mastery{Mastered, Learning, Struggling}

var masteryNames = map[Mastery]string{
	Mastered:   "Mastered",
	Learning:   "Learning",
	Struggling: "Struggling",
}

// IsValid reports whether m is one of the known levels.
func (m Mastery) IsValid() bool {
	_, ok := masteryNames[m]
	return ok
}

// DisplayName returns a human-readable label, or "Unknown".
func (m Mastery) DisplayName() string {
	if name, ok := masteryNames[m]; ok {
		return name
	}
	return "Unknown"
}

// ParseMastery converts s into a Mastery.
func ParseMastery(s string) (Mastery, error) {
	m := Mastery(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: unknown mastery level %q (valid: mastered, learning, struggling)", ErrInvalidArgument, s)
	}
	return m, nil
}

// Result is the outcome of a single recall attempt.
type Result string

const (
	Success Result = "success"
	Failure Result = "failure"
)

// KnowledgePoint is a single study item tracked for spaced repetition.
// Dates are civil days formatted as YYYY-MM-DD.
type KnowledgePoint struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	MasteryLevel Mastery  `json:"masteryLevel"`
	Tags         []string `json:"tags"`
	CreatedAt    string   `json:"createdAt"`
	LastReviewed *string  `json:"lastReviewed"`
	NextReview   string   `json:"nextReview"`
	ReviewCount  int      `json:"reviewCount"`

	// Extra holds fields written by other versions of the app so they
	// survive a load/save cycle.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownFields must match the json tags above.
var knownFields = map[string]bool{
	"id": true, "title": true, "content": true, "masteryLevel": true, "tags": true,
	"createdAt": true, "lastReviewed": true, "nextReview": true, "reviewCount": true,
}

type pointFields KnowledgePoint

// MarshalJSON writes the known fields followed by any preserved unknown ones.
func (p KnowledgePoint) MarshalJSON() ([]byte, error) {
	f := pointFields(p)
	if f.Tags == nil {
		f.Tags = []string{}
	}
	b, err := json.Marshal(f)
	if err != nil || len(p.Extra) == 0 {
		return b, err
	}

	extra, err := json.Marshal(p.Extra)
	if err != nil {
		return nil, err
	}
	// Splice the two objects: {...known} + {...extra}
	var buf bytes.Buffer
	buf.Write(b[:len(b)-1])
	buf.WriteByte(',')
	buf.Write(extra[1:])
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the known fields and stashes the rest in Extra.
func (p *KnowledgePoint) UnmarshalJSON(data []byte) error {
	var f pointFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if knownFields[k] {
			delete(raw, k)
		}
	}
	if len(raw) > 0 {
		f.Extra = raw
	} else {
		f.Extra = nil
	}
	*p = KnowledgePoint(f)
	return nil
}

// Clone returns a deep copy of the point.
func (p KnowledgePoint) Clone() KnowledgePoint {
	out := p
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	if p.LastReviewed != nil {
		v := *p.LastReviewed
		out.LastReviewed = &v
	}
	if p.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Patch is a partial update to a knowledge point. Nil fields are left as is.
type Patch struct {
	Title        *string
	Content      *string
	MasteryLevel *Mastery
	Tags         *[]string
	LastReviewed *string
	NextReview   *string
	ReviewCount  *int
}

// Apply shallow-merges the patch into p.
func (pt Patch) Apply(p *KnowledgePoint) {
	if pt.Title != nil {
		p.Title = *pt.Title
	}
	if pt.Content != nil {
		p.Content = *pt.Content
	}
	if pt.MasteryLevel != nil {
		p.MasteryLevel = *pt.MasteryLevel
	}
	if pt.Tags != nil {
		p.Tags = append([]string{}, (*pt.Tags)...)
	}
	if pt.LastReviewed != nil {
		v := *pt.LastReviewed
		p.LastReviewed = &v
	}
	if pt.NextReview != nil {
		p.NextReview = *pt.NextReview
	}
	if pt.ReviewCount != nil {
		p.ReviewCount = *pt.ReviewCount
	}
}
