// internal/utils/timeago_test.go
package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgoBuckets(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		offset time.Duration
		want   string
	}{
		{30 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{time.Hour, "1 hour ago"},
		{25 * time.Hour, "1 day ago"},
		{40 * 24 * time.Hour, "1 month ago"},
		{2 * 365 * 24 * time.Hour, "2 years ago"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, TimeAgo(now.Add(-tc.offset), now))
	}
}

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "short", TruncateContent("short", 10))
	assert.Equal(t, "abcde...", TruncateContent("abcdefgh", 5))
}
