package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		rule     Recurrence
		interval int
		want     time.Time
		ok       bool
	}{
		{"daily adds one day", Daily, 0, base.AddDate(0, 0, 1), true},
		{"weekly adds seven days", Weekly, 0, base.AddDate(0, 0, 7), true},
		{"monthly adds one month", Monthly, 0, time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC), true},
		{"custom adds interval days", Custom, 3, base.AddDate(0, 0, 3), true},
		{"custom zero interval behaves as one", Custom, 0, base.AddDate(0, 0, 1), true},
		{"custom negative interval behaves as one", Custom, -5, base.AddDate(0, 0, 1), true},
		{"none yields no occurrence", None, 1, time.Time{}, false},
		{"unknown rule yields no occurrence", Recurrence("yearly"), 1, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextOccurrence(base, tt.rule, tt.interval)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			}
		})
	}
}

func TestNextOccurrenceMonthlyEndOfMonth(t *testing.T) {
	// Jan 31 + 1 month normalizes into March (2024 is a leap year: Mar 2).
	base := time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC)
	got, ok := NextOccurrence(base, Monthly, 0)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), got)
}

func TestNextOccurrenceChains(t *testing.T) {
	// Advancing one hop at a time must stay deterministic.
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		next, ok := NextOccurrence(cur, Weekly, 0)
		require.True(t, ok)
		cur = next
	}
	assert.Equal(t, time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), cur)
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2024-01-08T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseTime("not-a-date")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestValid(t *testing.T) {
	for _, r := range []Recurrence{None, Daily, Weekly, Monthly, Custom} {
		assert.True(t, Valid(r), string(r))
	}
	assert.False(t, Valid(Recurrence("hourly")))
	assert.False(t, Valid(Recurrence("")))
}
