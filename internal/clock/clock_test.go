package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemToday(t *testing.T) {
	got := System{}.Today()
	_, err := Parse(got)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(Layout), got)
}

func TestFixed(t *testing.T) {
	c := Fixed("2024-01-10")
	assert.Equal(t, "2024-01-10", c.Today())
	assert.Equal(t, c.Today(), c.Today())
}

func TestFormatDropsTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 5, 0, 0, 1, 0, time.Local)
	night := time.Date(2024, 3, 5, 23, 59, 59, 0, time.Local)
	assert.Equal(t, "2024-03-05", Format(morning))
	assert.Equal(t, Format(morning), Format(night))
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2024-01-10", 0, "2024-01-10"},
		{"2024-01-10", 1, "2024-01-11"},
		{"2024-01-31", 1, "2024-02-01"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2023-02-28", 1, "2023-03-01"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-01-01", 30, "2024-01-31"},
		{"2024-03-09", 2, "2024-03-11"},
		{"2024-11-02", 2, "2024-11-04"},
	}
	for _, tt := range tests {
		got, err := AddDays(tt.date, tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s + %d", tt.date, tt.n)
	}
}

func TestAddDaysInvalid(t *testing.T) {
	_, err := AddDays("2024/01/10", 1)
	assert.Error(t, err)
	_, err = AddDays("", 1)
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	n, err := DaysBetween("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	n, err = DaysBetween("2024-01-10", "2024-01-09")
	require.NoError(t, err)
	assert.Equal(t, -1, n)
}
