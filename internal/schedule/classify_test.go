package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifierBuckets(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ts       time.Time
		overdue  bool
		dueToday bool
	}{
		{"yesterday is overdue", now.AddDate(0, 0, -1), true, false},
		{"last month is overdue", now.AddDate(0, -1, 0), true, false},
		{"this morning is due today", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false, true},
		{"tonight is due today", time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC), false, true},
		{"tomorrow is neither", now.AddDate(0, 0, 1), false, false},
		{"next year is neither", now.AddDate(1, 0, 0), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overdue, IsOverdueAt(tt.ts, now))
			assert.Equal(t, tt.dueToday, IsDueTodayAt(tt.ts, now))
		})
	}
}

func TestClassifierMutuallyExclusive(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	for d := -400; d <= 400; d += 7 {
		ts := now.AddDate(0, 0, d).Add(3 * time.Hour)
		if IsOverdueAt(ts, now) && IsDueTodayAt(ts, now) {
			t.Fatalf("timestamp %s is both overdue and due today", ts)
		}
	}
}

func TestClassifierUsesDayGranularity(t *testing.T) {
	// A timestamp earlier in the clock today is not overdue.
	now := time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC)
	assert.False(t, IsOverdueAt(earlier, now))
	assert.True(t, IsDueTodayAt(earlier, now))
}
