package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Aggregator collects normalized records from all sites and assigns
// final identity and ordering. It owns the only mutable collection in
// the pipeline; scrapers never touch it directly.
type Aggregator struct {
	records   []Record
	finalized bool
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add appends a normalized record. Calling Add after Finalize panics:
// the dataset is immutable once identity is assigned.
func (a *Aggregator) Add(rec Record) {
	if a.finalized {
		panic("dataset: Add after Finalize")
	}
	a.records = append(a.records, rec)
}

// Len returns the number of collected records.
func (a *Aggregator) Len() int { return len(a.records) }

// Finalize orders the collection and assigns sequential ids and 0-based
// indices. The order is deterministic regardless of which site reported
// first: title, then site, then url.
func (a *Aggregator) Finalize() []Record {
	if !a.finalized {
		sort.SliceStable(a.records, func(i, j int) bool {
			ri, rj := a.records[i], a.records[j]
			if ri.Title != rj.Title {
				return ri.Title < rj.Title
			}
			if ri.Site != rj.Site {
				return ri.Site < rj.Site
			}
			return ri.URL < rj.URL
		})
		for i := range a.records {
			a.records[i].ID = i
			a.records[i].Index = i
		}
		a.finalized = true
	}
	return a.records
}

// WriteDataset persists records as one indented JSON array. Sinhala text
// is written as-is, not escaped. A write failure here is fatal to the
// run: there is no partial-dataset recovery.
func WriteDataset(records []Record, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		f.Close()
		return fmt.Errorf("encode dataset %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	return nil
}

// ReadDataset loads a previously written dataset file.
func ReadDataset(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", path, err)
	}
	return records, nil
}
