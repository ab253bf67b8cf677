package schedule

import (
	"fmt"
	"time"
)

// ResolveNearest resolves a day.month fragment to the calendar date nearest
// to now, trying the same day and month in the previous, the current and
// the next year. Candidates are taken at local noon in now's location, so
// DST shifts around midnight cannot flip the comparison. On a tie the
// earlier year wins.
//
// A candidate that does not exist in its year (Feb 29 outside leap years)
// is skipped; if no candidate exists, an error is returned.
func ResolveNearest(day, month int, now time.Time) (time.Time, error) {
	loc := now.Location()

	var (
		best     time.Time
		bestDiff time.Duration
		found    bool
	)

	for _, year := range []int{now.Year() - 1, now.Year(), now.Year() + 1} {
		cand := time.Date(year, time.Month(month), day, 12, 0, 0, 0, loc)
		// time.Date normalizes nonexistent dates (Feb 29 becomes Mar 1),
		// which the roundtrip check catches.
		if cand.Day() != day || cand.Month() != time.Month(month) {
			continue
		}

		diff := now.Sub(cand)
		if diff < 0 {
			diff = -diff
		}

		if !found || diff < bestDiff {
			best = cand
			bestDiff = diff
			found = true
		}
	}

	if !found {
		return time.Time{}, fmt.Errorf("no year near %s has a date %02d.%02d",
			now.Format("2006-01-02"), day, month)
	}

	return best, nil
}
