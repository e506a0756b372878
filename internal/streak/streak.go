// Package streak computes daily-goal streaks from calendar date keys.
package streak

import (
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// ContinuityTolerance is how far the gap between two completion dates may
// drift from exactly 24h and still count as consecutive days.
const ContinuityTolerance = 5 * time.Minute

// Stats is the streak state kept in a user record.
// An empty LastCompletedDate means the goal was never completed.
type Stats struct {
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
	LastCompletedDate string `json:"last_completed_date,omitempty"`
}

// DateKey returns the calendar date of t in t's location, e.g. "2024-01-05".
func DateKey(t time.Time) string {
	return t.Format(common.DateKeyLayout)
}

// ParseDateKey parses a date key as midnight UTC.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(common.DateKeyLayout, key)
}

// Advance returns the stats after completing the goal on completionDateKey.
//
// Completing twice on the same date key returns prev unchanged. Otherwise the
// streak continues only when the two dates are one day apart, measured as the
// absolute difference between the parsed midnights; any gap, or a missing or
// unparsable previous date, restarts it at 1. LongestStreak never
// decreases.
func Advance(prev Stats, completionDateKey string) Stats {
	if prev.LastCompletedDate != "" && prev.LastCompletedDate == completionDateKey {
		return prev
	}

	next := Stats{
		CurrentStreak:     1,
		LongestStreak:     prev.LongestStreak,
		LastCompletedDate: completionDateKey,
	}
	if consecutive(prev.LastCompletedDate, completionDateKey) {
		next.CurrentStreak = prev.CurrentStreak + 1
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	return next
}

func consecutive(prevKey, key string) bool {
	if prevKey == "" {
		return false
	}
	prev, err := ParseDateKey(prevKey)
	if err != nil {
		return false
	}
	cur, err := ParseDateKey(key)
	if err != nil {
		return false
	}

	return absDuration(absDuration(cur.Sub(prev))-24*time.Hour) <= ContinuityTolerance
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
