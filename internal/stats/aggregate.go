// Package stats buckets commit history into calendar days and derives
// aggregate figures from the buckets. Day keys are UTC calendar dates:
// aggregation and calendar rendering share the one timezone convention.
package stats

import (
	"time"

	"github.com/gitpulse-io/gitpulse/internal/models"
)

const DayKeyFormat = "2006-01-02"

// DayKey truncates a timestamp to its UTC calendar date.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyFormat)
}

// BucketByDay groups commits into a sparse day-key -> count map. Commits
// whose author date could not be parsed (zero time) are excluded, so the sum
// of all counts equals the number of commits with a usable date.
func BucketByDay(commits []models.Commit) map[string]int {
	buckets := make(map[string]int, len(commits))
	for _, c := range commits {
		if c.AuthorDate.IsZero() {
			continue
		}
		buckets[DayKey(c.AuthorDate)]++
	}
	return buckets
}

// CommitsOnDay filters commits down to those sharing day's UTC calendar date,
// preserving the original (reverse-chronological) order.
func CommitsOnDay(commits []models.Commit, day time.Time) []models.Commit {
	key := DayKey(day)

	var matched []models.Commit
	for _, c := range commits {
		if c.AuthorDate.IsZero() {
			continue
		}
		if DayKey(c.AuthorDate) == key {
			matched = append(matched, c)
		}
	}
	return matched
}
