// Package schedule parses station playlist pages and resolves the
// yearless schedule date they carry.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"orbplaylist/internal/model"
)

var (
	// Cell 0 must look like a broadcast time, HH:MM or HH:MM:SS.
	timePattern = regexp.MustCompile(`^\d+:\d+(:\d+)?$`)
	// Day.month fragment in the active schedule tab, e.g. "Mon 24.03".
	datePattern = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\b`)
)

// Result holds the songs and the schedule date fragment of one page.
// Date is nil when no schedule tab yielded a usable fragment.
type Result struct {
	Songs []model.SongEntry   `json:"songs"`
	Date  *model.DateFragment `json:"date,omitempty"`
}

// Parse extracts the playlist rows and the schedule date fragment from raw
// markup. Rows keep their document order. The class selectors match
// whitespace-delimited class tokens, so "not-tablelist-schedule-foo" is
// never picked up.
func Parse(markup string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	res := &Result{}

	doc.Find("table.tablelist-schedule tr").Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})

		if len(cells) < 2 || cells[0] == "" || cells[1] == "" {
			return
		}
		// Rows marked "live" are the station's now-playing marker, not songs.
		if strings.EqualFold(cells[0], "live") {
			return
		}
		if !timePattern.MatchString(cells[0]) {
			return
		}

		res.Songs = append(res.Songs, model.SongEntry{
			Time:  cells[0],
			Title: cells[1],
			Cells: cells,
		})
	})

	doc.Find("ul.playlist__schedule, ol.playlist__schedule").EachWithBreak(func(i int, list *goquery.Selection) bool {
		text := strings.TrimSpace(list.Find("li.active").First().Text())
		m := datePattern.FindStringSubmatch(text)
		if m == nil {
			return true
		}

		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			return true
		}

		res.Date = &model.DateFragment{Day: day, Month: month}
		return false
	})

	return res, nil
}
