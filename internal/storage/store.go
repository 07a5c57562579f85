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
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/qwalk/internal/walk"
)

const (
	metadataFile     = "metadata.json"
	distributionFile = "distribution.csv"
)

var (
	// ErrInvalidRunID indicates a run id that could escape the data directory.
	ErrInvalidRunID = errors.New("storage: invalid run id")

	// ErrEmptyRun indicates an attempt to save a distribution without bins.
	ErrEmptyRun = errors.New("storage: empty distribution")
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

type RunMetadata struct {
	ID          string       `json:"id"`
	Walk        walk.Kind    `json:"walk"`
	Timestamp   time.Time    `json:"timestamp"`
	Seed        uint64       `json:"seed"`
	Qubits      int          `json:"qubits,omitempty"`
	Steps       int          `json:"steps"`
	Repetitions int          `json:"repetitions"`
	Coin        walk.Coin    `json:"coin,omitempty"`
	Bias        float64      `json:"bias,omitempty"`
	Start       *int         `json:"start,omitempty"`
	Summary     walk.Summary `json:"summary"`
}

func (s *Store) Save(p walk.Params, d *walk.Distribution) (string, error) {
	if d.Empty() {
		return "", ErrEmptyRun
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%s", d.Kind, now.Format("20060102T150405"), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Walk:        d.Kind,
		Timestamp:   now,
		Seed:        p.Seed,
		Steps:       p.Steps,
		Repetitions: p.Repetitions,
		Start:       p.Start,
		Summary:     d.Stats(),
	}
	switch d.Kind {
	case walk.KindQuantum:
		meta.Qubits, meta.Coin = p.Qubits, p.Coin
	case walk.KindRandom:
		meta.Bias = p.Bias
	}

	if err := writeRun(runDir, meta, d); err != nil {
		_ = os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, d *walk.Distribution) error {
	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(runDir, distributionFile), func(w io.Writer) error {
		return WriteCSV(w, d)
	})
}

// writeFile creates path and closes it after write, reporting the first error.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns all readable runs, oldest first.
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadDistribution(runID string) (*walk.Distribution, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	dir, _ := s.runDir(runID)

	file, err := os.Open(filepath.Join(dir, distributionFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	d, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	d.Kind = meta.Walk
	return d, nil
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

// Export is the JSON document written by ExportJSON.
type Export struct {
	Metadata     *RunMetadata       `json:"metadata"`
	Distribution *walk.Distribution `json:"distribution"`
}

func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	d, err := s.LoadDistribution(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export{Metadata: meta, Distribution: d})
}

// WriteCSV writes one "position,count,probability" row per bin.
func WriteCSV(w io.Writer, d *walk.Distribution) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"position", "count", "probability"}); err != nil {
		return err
	}
	for i := 0; i < d.Len(); i++ {
		row := []string{
			strconv.Itoa(d.Positions[i]),
			strconv.Itoa(d.Counts[i]),
			strconv.FormatFloat(d.Probabilities[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of WriteCSV. Probabilities are recomputed from
// the counts, so rounding in the file does not accumulate.
func ReadCSV(r io.Reader) (*walk.Distribution, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int)
	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("row %d: expected position,count", i)
		}
		pos, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		n, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		counts[pos] = n
	}
	return walk.FromCounts("", counts), nil
}
