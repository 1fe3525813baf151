package schema

import (
	"fmt"
	"strings"
	"time"
)

// DatasetKey derives the stable storage key for a repository: {owner}_{repo}.
func DatasetKey(owner, repo string) string {
	return owner + "_" + repo
}

// ParseRepoRef splits an "owner/repo" argument into its parts.
// Both parts must be non-empty and free of further slashes.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(ref), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", ref)
	}
	return parts[0], parts[1], nil
}

// BucketStart truncates t to the start of its bucket in UTC.
// Day buckets start at midnight; week buckets start on Monday.
func BucketStart(t time.Time, bucket Bucket) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if bucket != WeekBucket {
		return day
	}
	// Shift back to Monday. Sunday is weekday 0 in Go, hence the +6 fold.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// BucketStep returns the function advancing a date by one bucket.
func BucketStep(bucket Bucket) func(time.Time) time.Time {
	days := 1
	if bucket == WeekBucket {
		days = 7
	}
	return func(t time.Time) time.Time {
		return t.AddDate(0, 0, days)
	}
}

// FormatBucketDate renders a bucket date for tables, CSV and chart labels.
func FormatBucketDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
