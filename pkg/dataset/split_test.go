package dataset

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/j-ranasinghe/Web-Scraping-News-Articles/pkg/scraper"
)

func splitInput() []Record {
	var records []Record
	id := 0
	for _, site := range []scraper.Site{scraper.SiteHiru, scraper.SiteWikipedia} {
		for i := 0; i < 50; i++ {
			records = append(records, Record{
				Category: CategoryLocal,
				Site:     site,
				URL:      fmt.Sprintf("https://example.lk/%d", id),
				Title:    fmt.Sprintf("මාතෘකාව %d", id),
				Context:  fmt.Sprintf("පාඨය %d", id),
				ID:       id,
				Index:    id,
			})
			id++
		}
	}
	return records
}

func TestSplitProportionsAndStratification(t *testing.T) {
	splits, err := Split(splitInput(), SplitOptions{TestFraction: 0.1, DevFraction: 0.1, Seed: 42})
	require.NoError(t, err)

	require.Len(t, splits.Test, 10)
	require.Len(t, splits.Dev, 10)
	require.Len(t, splits.Train, 80)

	// Each partition keeps the 50/50 site mix.
	for _, part := range [][]Record{splits.Train, splits.Dev, splits.Test} {
		counts := make(map[scraper.Site]int)
		for _, rec := range part {
			counts[rec.Site]++
		}
		require.Equal(t, counts[scraper.SiteHiru], counts[scraper.SiteWikipedia])
	}
}

func TestSplitRejectsFractionsWithoutTrainingData(t *testing.T) {
	tests := []struct {
		name string
		opts SplitOptions
	}{
		{"overlapping", SplitOptions{TestFraction: 0.6, DevFraction: 0.6, Seed: 42}},
		{"sum exactly one", SplitOptions{TestFraction: 0.5, DevFraction: 0.5, Seed: 42}},
		{"negative test", SplitOptions{TestFraction: -0.1, DevFraction: 0.1, Seed: 42}},
		{"negative dev", SplitOptions{TestFraction: 0.1, DevFraction: -0.1, Seed: 42}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Split(splitInput(), tc.opts)
			require.Error(t, err)
		})
	}
}

func TestSplitZeroFractionYieldsEmptyPartition(t *testing.T) {
	splits, err := Split(splitInput(), SplitOptions{TestFraction: 0, DevFraction: 0.1, Seed: 42})
	require.NoError(t, err)

	require.Empty(t, splits.Test)
	require.Len(t, splits.Dev, 10)
	require.Len(t, splits.Train, 90)
}

func TestSplitReindexesEachPartition(t *testing.T) {
	splits, err := Split(splitInput(), SplitOptions{TestFraction: 0.1, DevFraction: 0.1, Seed: 42})
	require.NoError(t, err)

	for _, part := range [][]Record{splits.Train, splits.Dev, splits.Test} {
		for i, rec := range part {
			require.Equal(t, i, rec.Index)
		}
	}
}

func TestSplitKeepsIDsDisjoint(t *testing.T) {
	splits, err := Split(splitInput(), SplitOptions{TestFraction: 0.1, DevFraction: 0.1, Seed: 42})
	require.NoError(t, err)

	seen := make(map[int]bool)
	total := 0
	for _, part := range [][]Record{splits.Train, splits.Dev, splits.Test} {
		for _, rec := range part {
			require.False(t, seen[rec.ID], "id %d in two partitions", rec.ID)
			seen[rec.ID] = true
			total++
		}
	}
	require.Equal(t, 100, total)
}

func TestSplitDeterministicForSeed(t *testing.T) {
	a, err := Split(splitInput(), SplitOptions{TestFraction: 0.1, DevFraction: 0.1, Seed: 42})
	require.NoError(t, err)
	b, err := Split(splitInput(), SplitOptions{TestFraction: 0.1, DevFraction: 0.1, Seed: 42})
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := Split(splitInput(), SplitOptions{TestFraction: 0.1, DevFraction: 0.1, Seed: 43})
	require.NoError(t, err)
	require.NotEqual(t, a.Test, c.Test)
}

func TestWriteSplitsAndChunks(t *testing.T) {
	dir := t.TempDir()
	splits, err := Split(splitInput(), SplitOptions{TestFraction: 0.1, DevFraction: 0.1, Seed: 42})
	require.NoError(t, err)

	require.NoError(t, WriteSplits(splits, dir))

	train, err := ReadDataset(filepath.Join(dir, "train.json"))
	require.NoError(t, err)
	require.Equal(t, splits.Train, train)

	require.NoError(t, WriteChunks(splits.Train, dir, "train", 30))

	// 80 records at 30 per chunk -> 3 files.
	var chunked []Record
	for i := 1; i <= 3; i++ {
		chunk, err := ReadDataset(filepath.Join(dir, "train", fmt.Sprintf("train_set_%d.json", i)))
		require.NoError(t, err)
		require.LessOrEqual(t, len(chunk), 30)
		chunked = append(chunked, chunk...)
	}
	require.Equal(t, splits.Train, chunked)
}
