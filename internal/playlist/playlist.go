// Package playlist assembles parsed songs and a resolved date into a
// printable, archivable record.
package playlist

import (
	"errors"
	"fmt"
	"path"
	"time"

	"orbplaylist/internal/model"
	"orbplaylist/internal/schedule"
)

// ErrNoDate reports a page that yielded songs but no schedule date.
// Formatting songs under a guessed date would archive them under the
// wrong day, so this is a hard error.
var ErrNoDate = errors.New("page has songs but no schedule date")

// Record is one day's playlist for one station. Built once per fetch,
// immutable afterwards.
type Record struct {
	Station    string
	Songs      []model.SongEntry
	Date       time.Time
	DaysOffset int
}

// Build resolves the parsed date fragment against now and combines it with
// the parsed songs.
func Build(station string, res *schedule.Result, daysOffset int, now time.Time) (*Record, error) {
	if res.Date == nil {
		return nil, ErrNoDate
	}

	date, err := schedule.ResolveNearest(res.Date.Day, res.Date.Month, now)
	if err != nil {
		return nil, fmt.Errorf("resolving schedule date: %w", err)
	}

	return &Record{
		Station:    station,
		Songs:      res.Songs,
		Date:       date,
		DaysOffset: daysOffset,
	}, nil
}

// FormattedDate renders the resolved date as "Dow YYYY-MM-DD" in the
// process's local timezone.
func (r *Record) FormattedDate() string {
	return r.Date.Local().Format("Mon 2006-01-02")
}

// Lines renders one tab-separated line per song.
func (r *Record) Lines() []string {
	formatted := r.FormattedDate()
	lines := make([]string, 0, len(r.Songs))
	for _, s := range r.Songs {
		lines = append(lines, fmt.Sprintf("%s %s\t%s", formatted, s.Time, s.Title))
	}
	return lines
}

// Content renders the archive file body: one song per line, each line
// newline-terminated, no header.
func (r *Record) Content() []byte {
	var buf []byte
	for _, line := range r.Lines() {
		buf = append(buf, line...)
		buf = append(buf, '\n')
	}
	return buf
}

// ArchiveKey returns the store key for this record,
// <station>/<YYYY>/<MM>/<YYYY-MM-DD>.tsv.
func (r *Record) ArchiveKey() string {
	d := r.Date.Local()
	return path.Join(r.Station, d.Format("2006"), d.Format("01"), d.Format("2006-01-02")+".tsv")
}
