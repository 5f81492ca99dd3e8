package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMastery(t *testing.T) {
	for _, m := range MasteryLevels {
		got, err := ParseMastery(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMastery("expert")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseMastery("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Mastered", Mastered.DisplayName())
	assert.Equal(t, "Learning", Learning.DisplayName())
	assert.Equal(t, "Struggling", Struggling.DisplayName())
	assert.Equal(t, "Unknown", Mastery("x").DisplayName())
}

func TestMarshalNilTagsAsEmptyArray(t *testing.T) {
	b, err := json.Marshal(KnowledgePoint{ID: "a", MasteryLevel: Learning})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"tags":[]`)
	assert.Contains(t, string(b), `"lastReviewed":null`)
}

func TestUnknownFieldsPreserved(t *testing.T) {
	in := `{"id":"a","title":"t","content":"c","masteryLevel":"learning","tags":["x"],` +
		`"createdAt":"2024-01-01","lastReviewed":"2024-01-02","nextReview":"2024-01-03","reviewCount":2,` +
		`"color":"red","pinned":true}`

	var p KnowledgePoint
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	assert.Equal(t, "a", p.ID)
	assert.Equal(t, "2024-01-02", *p.LastReviewed)
	assert.Equal(t, 2, p.ReviewCount)
	require.Len(t, p.Extra, 2)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestNoExtraWhenAllFieldsKnown(t *testing.T) {
	var p KnowledgePoint
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","nextReview":"2024-01-01"}`), &p))
	assert.Nil(t, p.Extra)
}

func TestCloneIsDeep(t *testing.T) {
	day := "2024-01-02"
	p := KnowledgePoint{
		ID:           "a",
		Tags:         []string{"x"},
		LastReviewed: &day,
		Extra:        map[string]json.RawMessage{"k": json.RawMessage(`1`)},
	}
	c := p.Clone()
	c.Tags[0] = "y"
	*c.LastReviewed = "2030-01-01"
	c.Extra["k"] = json.RawMessage(`2`)

	assert.Equal(t, "x", p.Tags[0])
	assert.Equal(t, "2024-01-02", *p.LastReviewed)
	assert.Equal(t, json.RawMessage(`1`), p.Extra["k"])
}

func TestPatchApply(t *testing.T) {
	p := KnowledgePoint{ID: "a", Title: "old", MasteryLevel: Mastered, ReviewCount: 4, NextReview: "2024-01-01"}
	title := "new"
	m := Learning
	count := 0
	last := "2024-01-10"
	tags := []string{"t"}
	Patch{Title: &title, MasteryLevel: &m, ReviewCount: &count, LastReviewed: &last, Tags: &tags}.Apply(&p)

	assert.Equal(t, "new", p.Title)
	assert.Equal(t, Learning, p.MasteryLevel)
	assert.Equal(t, 0, p.ReviewCount)
	assert.Equal(t, "2024-01-10", *p.LastReviewed)
	assert.Equal(t, []string{"t"}, p.Tags)
	assert.Equal(t, "2024-01-01", p.NextReview, "unset fields are untouched")
	assert.Equal(t, "a", p.ID)
}
