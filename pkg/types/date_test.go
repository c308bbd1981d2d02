package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOf(t *testing.T) {
	// 2025-01-06 понедельник
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.Equal(t, i, WeekdayOf(monday.AddDate(0, 0, i)))
	}
}

func TestWeekdayOf_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	late := time.Date(2025, 1, 12, 23, 30, 0, 0, loc)
	assert.Equal(t, 6, WeekdayOf(late))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", FormatDate(d))
	assert.Equal(t, time.UTC, d.Location())

	_, err = ParseDate("01.03.2025")
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	d := DateOnly(time.Date(2025, 5, 4, 18, 45, 12, 0, time.Local))
	assert.Equal(t, time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC), d)
}
