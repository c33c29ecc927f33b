package storage

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/tslab/internal/dynamo"
)

type ExportData struct {
	Metadata RunMetadata           `json:"metadata"`
	Index    []string              `json:"index"`
	Columns  map[string][]*float64 `json:"columns"`
}

// ExportJSON writes a run as indented JSON. NaN and Inf become null.
func ExportJSON(w io.Writer, meta *RunMetadata, series *dynamo.Series, index []string) error {
	data := ExportData{
		Metadata: *meta,
		Index:    index,
		Columns:  make(map[string][]*float64, len(series.Names)),
	}

	for i, name := range series.Names {
		col := make([]*float64, len(series.Columns[i]))
		for j, v := range series.Columns[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			col[j] = &v
		}
		data.Columns[name] = col
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportRun loads a run and writes it with ExportJSON.
func (s *Store) ExportRun(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, index, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, meta, series, index)
}
