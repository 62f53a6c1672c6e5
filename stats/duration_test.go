package stats_test

import (
	"testing"
	"time"

	"github.com/erzer12/y-ultimate/stats"
)

func TestDurationHours(t *testing.T) {
	start := time.Date(2025, time.May, 12, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want float64
	}{
		{"ninety minutes", start.Add(90 * time.Minute), 1.5},
		{"two hours", start.Add(2 * time.Hour), 2.0},
		{"zero", start, 0},
		{"end before start goes negative", start.Add(-30 * time.Minute), -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stats.DurationHours(start, tt.end); got != tt.want {
				t.Errorf("DurationHours() = %v, want %v", got, tt.want)
			}
		})
	}
}
