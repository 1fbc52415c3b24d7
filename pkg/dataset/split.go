package dataset

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"sort"

	"github.com/j-ranasinghe/Web-Scraping-News-Articles/pkg/scraper"
)

// SplitOptions controls the train/dev/test split.
type SplitOptions struct {
	TestFraction float64
	DevFraction  float64
	Seed         int64
}

// Splits holds the three partitions of a dataset.
type Splits struct {
	Train []Record
	Dev   []Record
	Test  []Record
}

// Split partitions records into train/dev/test, stratified by site so
// each partition keeps the site mix of the whole dataset. The shuffle is
// seeded, so the same records and seed always produce the same split.
// Indices are reassigned 0-based within each partition; ids are kept.
//
// A fraction of zero yields an empty partition, so a dev-only or
// test-only split is expressible. Fractions that leave no room for
// training data are an error, not a panic.
func Split(records []Record, opts SplitOptions) (Splits, error) {
	if opts.TestFraction < 0 || opts.DevFraction < 0 {
		return Splits{}, fmt.Errorf("split fractions must not be negative: test=%v dev=%v",
			opts.TestFraction, opts.DevFraction)
	}
	if opts.TestFraction+opts.DevFraction >= 1 {
		return Splits{}, fmt.Errorf("split fractions leave no training data: test=%v dev=%v",
			opts.TestFraction, opts.DevFraction)
	}

	bySite := make(map[scraper.Site][]Record)
	for _, rec := range records {
		bySite[rec.Site] = append(bySite[rec.Site], rec)
	}

	// Iterate sites in a fixed order so the split does not depend on map
	// iteration.
	sites := make([]scraper.Site, 0, len(bySite))
	for site := range bySite {
		sites = append(sites, site)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i] < sites[j] })

	rng := rand.New(rand.NewSource(opts.Seed))
	var out Splits

	for _, site := range sites {
		group := bySite[site]
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})

		nTest := int(float64(len(group)) * opts.TestFraction)
		nDev := int(float64(len(group)) * opts.DevFraction)

		out.Test = append(out.Test, group[:nTest]...)
		out.Dev = append(out.Dev, group[nTest:nTest+nDev]...)
		out.Train = append(out.Train, group[nTest+nDev:]...)
	}

	reindex(out.Train)
	reindex(out.Dev)
	reindex(out.Test)
	return out, nil
}

func reindex(records []Record) {
	for i := range records {
		records[i].Index = i
	}
}

// WriteSplits writes train.json, dev.json and test.json under dir.
func WriteSplits(s Splits, dir string) error {
	for name, records := range map[string][]Record{
		"train.json": s.Train,
		"dev.json":   s.Dev,
		"test.json":  s.Test,
	} {
		if err := WriteDataset(records, filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// WriteChunks splits one partition into files of at most size records,
// named <setType>_set_1.json, <setType>_set_2.json, ... under
// dir/<setType>. Downstream annotation tooling works on these chunks.
func WriteChunks(records []Record, dir, setType string, size int) error {
	if size <= 0 {
		size = 500
	}

	chunkDir := filepath.Join(dir, setType)
	for i := 0; i*size < len(records); i++ {
		start := i * size
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		path := filepath.Join(chunkDir, fmt.Sprintf("%s_set_%d.json", setType, i+1))
		if err := WriteDataset(records[start:end], path); err != nil {
			return err
		}
	}
	return nil
}
