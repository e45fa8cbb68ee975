package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now, "0 seconds ago"},
		{"one second", now.Add(-time.Second), "1 seconds ago"},
		{"under a minute", now.Add(-59 * time.Second), "59 seconds ago"},
		{"exactly one minute", now.Add(-time.Minute), "1 minute ago"},
		{"several minutes", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"exactly one hour", now.Add(-time.Hour), "1 hour ago"},
		{"several hours", now.Add(-23 * time.Hour), "23 hours ago"},
		{"exactly one day", now.Add(-24 * time.Hour), "1 day ago"},
		{"several days", now.Add(-72 * time.Hour), "3 days ago"},
		{"future clamps to zero", now.Add(30 * time.Second), "0 seconds ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(now, tt.t))
		})
	}
}
