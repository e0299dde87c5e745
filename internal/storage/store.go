package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/chaosdata/internal/analysis"
	"github.com/san-kum/chaosdata/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	System      string             `json:"system"`
	Preset      string             `json:"preset,omitempty"`
	Label       string             `json:"label,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        uint64             `json:"seed"`
	Realization int                `json:"realization"`
	Integrator  string             `json:"integrator,omitempty"`
	Length      int                `json:"length"`
	Columns     []string           `json:"columns"`
	Params      map[string]float64 `json:"params,omitempty"`
	Summary     []analysis.Summary `json:"summary,omitempty"`
}

// Save writes a run directory holding series.csv and metadata.json. The
// ID, timestamp, length and columns are filled in from the series.
// Metadata is written last, so a run only becomes visible to List once
// both files exist. On failure the run directory is removed.
func (s *Store) Save(meta RunMetadata, series *experiment.Series) (string, error) {
	meta.ID = fmt.Sprintf("%s_%s", series.System, uuid.Must(uuid.NewV7()).String())
	meta.System = series.System
	meta.Timestamp = time.Now()
	meta.Length = series.Len()
	meta.Columns = series.Columns

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeRun(runDir, meta, series); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return meta.ID, nil
}

func writeRun(runDir string, meta RunMetadata, series *experiment.Series) error {
	csvFile, err := os.Create(filepath.Join(runDir, seriesFile))
	if err != nil {
		return err
	}
	if err := WriteCSV(csvFile, series); err != nil {
		csvFile.Close()
		return err
	}
	if err := csvFile.Close(); err != nil {
		return err
	}
	return writeJSON(filepath.Join(runDir, metadataFile), meta)
}

// WriteCSV writes a header row and one row per sample. Values use the
// shortest representation that parses back to the same float64.
func WriteCSV(w io.Writer, series *experiment.Series) error {
	cw := csv.NewWriter(w)

	header := []string{"i"}
	if series.Times != nil {
		header = append(header, "t")
	}
	header = append(header, series.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, state := range series.States {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(i))
		if series.Times != nil {
			row = append(row, formatFloat(series.Times[i]))
		}
		for _, v := range state {
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

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

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// SeriesPath is the CSV file of a run.
func (s *Store) SeriesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, seriesFile)
}

func (s *Store) LoadSeries(runID string) (*experiment.Series, error) {
	file, err := os.Open(s.SeriesPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	series, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s series: %w", runID, err)
	}

	if meta, err := s.Load(runID); err == nil {
		series.System = meta.System
	}
	return series, nil
}

// ReadCSV parses the format written by WriteCSV.
func ReadCSV(r io.Reader) (*experiment.Series, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) < 1 || records[0][0] != "i" {
		return nil, errors.New("missing header")
	}

	header := records[0]
	first := 1
	series := &experiment.Series{}
	if len(header) > 1 && header[1] == "t" {
		first = 2
		series.Times = make([]float64, 0, len(records)-1)
	}
	series.Columns = append([]string(nil), header[first:]...)
	series.States = make([][]float64, 0, len(records)-1)

	for line, record := range records[1:] {
		if series.Times != nil {
			t, err := strconv.ParseFloat(record[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line+2, err)
			}
			series.Times = append(series.Times, t)
		}

		state := make([]float64, len(record)-first)
		for j := range state {
			v, err := strconv.ParseFloat(record[first+j], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line+2, err)
			}
			state[j] = v
		}
		series.States = append(series.States, state)
	}

	return series, nil
}

// CopySeries copies the CSV file of a run to dst.
func (s *Store) CopySeries(runID, dst string) error {
	src, err := os.Open(s.SeriesPath(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
