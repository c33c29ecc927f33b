package finance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/tslab/internal/dynamo"
)

const dateLayout = "2006-01-02"

// Fields lists the bar columns in the order they appear in quote files.
var Fields = []string{"Open", "High", "Low", "Close", "Volume"}

// ErrNoData indicates a quote file without any parsable rows.
var ErrNoData = errors.New("finance: no data")

// Bar is one trading day. Missing fields are NaN.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

func (b Bar) field(name string) float64 {
	switch name {
	case "Open":
		return b.Open
	case "High":
		return b.High
	case "Low":
		return b.Low
	case "Close":
		return b.Close
	case "Volume":
		return b.Volume
	}
	return math.NaN()
}

func knownField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

func emptyBar(date time.Time) Bar {
	nan := math.NaN()
	return Bar{Date: date, Open: nan, High: nan, Low: nan, Close: nan, Volume: nan}
}

// History is the bar sequence of one symbol.
type History struct {
	Symbol string
	Bars   []Bar
	fields []string
}

// Columns returns the exposed field names.
func (h *History) Columns() []string {
	if len(h.fields) == 0 {
		return Fields
	}
	return h.fields
}

// Column returns one field across all bars, or nil if the field is not exposed.
func (h *History) Column(name string) []float64 {
	if !slices.Contains(h.Columns(), name) {
		return nil
	}
	out := make([]float64, len(h.Bars))
	for i, b := range h.Bars {
		out[i] = b.field(name)
	}
	return out
}

func (h *History) Dates() []time.Time {
	out := make([]time.Time, len(h.Bars))
	for i, b := range h.Bars {
		out[i] = b.Date
	}
	return out
}

// Series converts the exposed columns to a series named "<symbol>.<field>".
func (h *History) Series() *dynamo.Series {
	s := &dynamo.Series{}
	for _, f := range h.Columns() {
		s.Names = append(s.Names, h.Symbol+"."+f)
		s.Columns = append(s.Columns, h.Column(f))
	}
	return s
}

// Select restricts the exposed columns. Unknown names are an error.
func (h *History) Select(columns []string) error {
	if len(columns) == 0 {
		h.fields = nil
		return nil
	}
	for _, c := range columns {
		if !knownField(c) {
			return fmt.Errorf("finance: unknown column %q: %w", c, dynamo.ErrInvalidArgument)
		}
	}
	h.fields = append([]string(nil), columns...)
	return nil
}

// Sort orders bars by date.
func (h *History) Sort(descending bool) {
	sort.SliceStable(h.Bars, func(i, j int) bool {
		if descending {
			return h.Bars[i].Date.After(h.Bars[j].Date)
		}
		return h.Bars[i].Date.Before(h.Bars[j].Date)
	})
}

// ParseCSV reads daily bars. The header must contain a Date column; any of
// the price/volume columns may be absent. Rows with an unparsable date are
// skipped, unparsable values become NaN.
func ParseCSV(r io.Reader) ([]Bar, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}

	dateIdx := -1
	idx := make(map[string]int, len(Fields))
	for i, h := range header {
		h = strings.TrimSpace(strings.Trim(h, "\"\ufeff"))
		if strings.EqualFold(h, "date") {
			dateIdx = i
			continue
		}
		for _, f := range Fields {
			if strings.EqualFold(h, f) {
				idx[f] = i
			}
		}
	}
	if dateIdx == -1 {
		return nil, fmt.Errorf("finance: header %v has no Date column: %w", header, ErrNoData)
	}

	value := func(record []string, f string) float64 {
		i, ok := idx[f]
		if !ok || i >= len(record) {
			return math.NaN()
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
		if err != nil {
			return math.NaN()
		}
		return v
	}

	var bars []Bar
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if dateIdx >= len(record) {
			continue
		}
		date, err := time.Parse(dateLayout, strings.TrimSpace(record[dateIdx]))
		if err != nil {
			continue
		}
		bars = append(bars, Bar{
			Date:   date,
			Open:   value(record, "Open"),
			High:   value(record, "High"),
			Low:    value(record, "Low"),
			Close:  value(record, "Close"),
			Volume: value(record, "Volume"),
		})
	}

	if len(bars) == 0 {
		return nil, ErrNoData
	}
	return bars, nil
}
