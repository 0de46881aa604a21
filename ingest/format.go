package ingest

import (
	"fmt"
	"strings"
	"time"
)

// FormatElapsed renders a duration as "D day(s) H hour(s) M minute(s)
// S second(s)", omitting zero-valued units. A duration under one second
// renders as "0 seconds".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	parts := make([]string, 0, 4)
	appendUnit := func(value int64, unit string) {
		if value == 0 {
			return
		}
		if value == 1 {
			parts = append(parts, fmt.Sprintf("1 %s", unit))
			return
		}
		parts = append(parts, fmt.Sprintf("%d %ss", value, unit))
	}

	appendUnit(days, "day")
	appendUnit(hours, "hour")
	appendUnit(minutes, "minute")
	appendUnit(seconds, "second")

	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, " ")
}

// RecordsPerSecond computes the ingest rate for the final summary.
func RecordsPerSecond(count int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(count) / elapsed.Seconds()
}
