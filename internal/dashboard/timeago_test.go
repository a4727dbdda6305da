package dashboard

import (
	"testing"
	"time"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds round to just now", 45 * time.Second, "Just now"},
		{"under a minute boundary", 59 * time.Second, "Just now"},
		{"one minute", 60 * time.Second, "1 minute ago"},
		{"minutes", 25 * time.Minute, "25 minutes ago"},
		{"one hour", time.Hour, "1 hour ago"},
		{"hours", 7 * time.Hour, "7 hours ago"},
		{"one day", 24 * time.Hour, "1 day ago"},
		{"days", 12 * 24 * time.Hour, "12 days ago"},
		{"one month", 30 * 24 * time.Hour, "1 month ago"},
		{"months", 100 * 24 * time.Hour, "3 months ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := timeAgo(now.Add(-tc.ago), now)
			if got != tc.want {
				t.Errorf("timeAgo(%v ago) = %q, want %q", tc.ago, got, tc.want)
			}
		})
	}
}
