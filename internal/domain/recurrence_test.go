package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecurrencePattern(t *testing.T) {
	for _, valid := range []string{"daily", "weekly", "monthly"} {
		p, err := ParseRecurrencePattern(valid)
		require.NoError(t, err)
		assert.Equal(t, RecurrencePattern(valid), p)
	}

	_, err := ParseRecurrencePattern("yearly")
	assert.ErrorIs(t, err, ErrUnknownPattern)

	_, err = ParseRecurrencePattern("")
	assert.ErrorIs(t, err, ErrUnknownPattern)
}

func TestRecurrencePattern_NextDate(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		pattern RecurrencePattern
		from    time.Time
		want    time.Time
	}{
		{name: "daily", pattern: PatternDaily, from: date(2025, time.January, 6), want: date(2025, time.January, 7)},
		{name: "daily month rollover", pattern: PatternDaily, from: date(2025, time.January, 31), want: date(2025, time.February, 1)},
		{name: "weekly", pattern: PatternWeekly, from: date(2025, time.January, 6), want: date(2025, time.January, 13)},
		{name: "weekly year rollover", pattern: PatternWeekly, from: date(2025, time.December, 29), want: date(2026, time.January, 5)},
		{name: "monthly", pattern: PatternMonthly, from: date(2025, time.March, 15), want: date(2025, time.April, 15)},
		{name: "monthly december to january", pattern: PatternMonthly, from: date(2025, time.December, 15), want: date(2026, time.January, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.NextDate(tt.from))
		})
	}
}
