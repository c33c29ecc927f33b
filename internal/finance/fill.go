package finance

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/san-kum/tslab/internal/dynamo"
)

const (
	FillNone     = ""
	FillForward  = "ffill"
	FillBackward = "bfill"
)

// BusinessDays returns every Monday-to-Friday date in [start, end].
func BusinessDays(start, end time.Time) []time.Time {
	start = truncateDay(start)
	end = truncateDay(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Reindex places bars onto the business days between start and end. Days
// without a bar take the previous bar (ffill) or the next one (bfill); days
// with nothing to copy from are NaN. Bars outside the range are dropped.
func Reindex(bars []Bar, start, end time.Time, method string) ([]Bar, error) {
	if method != FillForward && method != FillBackward {
		return nil, fmt.Errorf("finance: fill %q: %w", method, dynamo.ErrUnknownMethod)
	}

	sorted := append([]Bar(nil), bars...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	days := BusinessDays(start, end)
	out := make([]Bar, len(days))

	if method == FillForward {
		j := 0
		var last *Bar
		for i, d := range days {
			for j < len(sorted) && !truncateDay(sorted[j].Date).After(d) {
				last = &sorted[j]
				j++
			}
			out[i] = fillFrom(d, last)
		}
		return out, nil
	}

	j := len(sorted) - 1
	var next *Bar
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		for j >= 0 && !truncateDay(sorted[j].Date).Before(d) {
			next = &sorted[j]
			j--
		}
		out[i] = fillFrom(d, next)
	}
	return out, nil
}

func fillFrom(d time.Time, b *Bar) Bar {
	if b == nil {
		return emptyBar(d)
	}
	c := *b
	c.Date = d
	return c
}

// Complete reports whether no bar has a NaN close.
func Complete(bars []Bar) bool {
	for _, b := range bars {
		if math.IsNaN(b.Close) {
			return false
		}
	}
	return true
}
