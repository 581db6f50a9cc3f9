package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// header is the fixed column order. Reads and writes must agree on it
// or the trend chart renders garbage.
var header = []string{"日付", "レベル", "モデル", "感想", "スコア"}

// CSVRecorder persists records to a single CSV file. Append reads the
// full table and rewrites it with the new row; not a byte-level append,
// but append-only from the caller's perspective. A single local user is
// assumed, so the mutex only guards against overlapping handlers in
// one process.
type CSVRecorder struct {
	path string
	mu   sync.Mutex
}

func NewCSVRecorder(path string) (*CSVRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to ensure log dir: %w", err)
		}
	}
	return &CSVRecorder{path: path}, nil
}

func (r *CSVRecorder) Load() ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *CSVRecorder) Append(record Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}
	records = append(records, record)

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open write: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.Date, rec.Level, rec.Model, rec.Reflection, strconv.Itoa(rec.Score)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func (r *CSVRecorder) load() ([]Record, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("open read: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(header)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		score, err := strconv.Atoi(row[4])
		if err != nil {
			// skip rows with a non-integer score
			continue
		}
		records = append(records, Record{
			Date:       row[0],
			Level:      row[1],
			Model:      row[2],
			Reflection: row[3],
			Score:      score,
		})
	}
	return records, nil
}
