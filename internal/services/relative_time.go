package services

import (
	"fmt"
	"time"
)

// RelativeTime formats how long ago t happened relative to now, matching
// the dashboard's display convention: "42 seconds ago", "1 minute ago",
// "3 hours ago", "2 days ago".
func RelativeTime(now, t time.Time) string {
	diff := int64(now.Sub(t).Seconds())
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < 60:
		return fmt.Sprintf("%d seconds ago", diff)
	case diff < 3600:
		minutes := diff / 60
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	case diff < 86400:
		hours := diff / 3600
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	default:
		days := diff / 86400
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	}
}

func plural(n int64) string {
	if n > 1 {
		return "s"
	}
	return ""
}
