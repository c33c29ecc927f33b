package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/tslab/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
	indexColumn  = "index"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes how a stored series was produced. Source is the
// parent run for transforms, or the quote symbol for fetched data.
type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed,omitempty"`
	Params    map[string]float64 `json:"params,omitempty"`
	Source    string             `json:"source,omitempty"`
	Columns   []string           `json:"columns"`
	Length    int                `json:"length"`
}

// Save writes meta and the series under a new run directory and returns the
// run id. index labels the rows (dates for fetched data); nil numbers them.
func (s *Store) Save(meta RunMetadata, series *dynamo.Series, index []string) (string, error) {
	if index != nil && len(index) != series.Len() {
		return "", fmt.Errorf("storage: %d index labels for %d rows: %w", len(index), series.Len(), dynamo.ErrInvalidArgument)
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Kind, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Columns = series.Names
	meta.Length = series.Len()

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), series, index); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeries(path string, series *dynamo.Series, index []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := append([]string{indexColumn}, series.Names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < series.Len(); i++ {
		label := strconv.Itoa(i)
		if index != nil {
			label = index[i]
		}
		row := []string{label}
		for _, col := range series.Columns {
			if i < len(col) {
				row = append(row, strconv.FormatFloat(col[i], 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads a run's columns back along with its index labels. Blank
// cells, left by columns shorter than the run, are not returned.
func (s *Store) LoadSeries(runID string) (*dynamo.Series, []string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("storage: %s: empty series file", runID)
	}

	names := records[0][1:]
	series := &dynamo.Series{
		Names:   append([]string(nil), names...),
		Columns: make([][]float64, len(names)),
	}
	index := make([]string, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		index = append(index, record[0])
		for j := 1; j < len(record) && j <= len(names); j++ {
			if record[j] == "" {
				continue
			}
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: %s: column %s: %w", runID, names[j-1], err)
			}
			series.Columns[j-1] = append(series.Columns[j-1], v)
		}
	}

	return series, index, nil
}
