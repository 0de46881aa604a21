package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 seconds"},
		{500 * time.Millisecond, "0 seconds"},
		{1 * time.Second, "1 second"},
		{42 * time.Second, "42 seconds"},
		{90 * time.Second, "1 minute 30 seconds"},
		{2 * time.Minute, "2 minutes"},
		{1 * time.Hour, "1 hour"},
		{25*time.Hour + 61*time.Second, "1 day 1 hour 1 minute 1 second"},
		{48 * time.Hour, "2 days"},
		{-3 * time.Second, "0 seconds"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatElapsed(tc.d), "duration %v", tc.d)
	}
}

func TestRecordsPerSecond(t *testing.T) {
	assert.InDelta(t, 50.0, RecordsPerSecond(100, 2*time.Second), 0.001)
	assert.Zero(t, RecordsPerSecond(100, 0))
	assert.Zero(t, RecordsPerSecond(100, -time.Second))
	assert.Zero(t, RecordsPerSecond(0, time.Second))
}
