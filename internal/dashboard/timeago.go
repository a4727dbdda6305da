package dashboard

import (
	"fmt"
	"time"
)

// timeAgo renders how long ago t happened in coarse human buckets. Months
// are counted as 30 days.
func timeAgo(t, now time.Time) string {
	secs := int64(now.Sub(t).Seconds())
	if secs < 60 {
		return "Just now"
	}
	if secs < 3600 {
		return plural(secs/60, "minute")
	}
	if secs < 86400 {
		return plural(secs/3600, "hour")
	}
	if secs < 2592000 {
		return plural(secs/86400, "day")
	}
	return plural(secs/2592000, "month")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
