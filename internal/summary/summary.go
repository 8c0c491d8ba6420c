package summary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"seqscope/internal/common"
	"seqscope/internal/reader"
	"seqscope/internal/source"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stats describes one record file.
type Stats struct {
	Path       string
	Records    int
	Residues   int64
	MinLen     int
	MaxLen     int
	N50        int
	GCFraction float64 // GC / Bases
	GC         int64   // G and C symbols
	Bases      int64   // unambiguous nucleotides (A, C, G, T, U)
	Malformed  int
}

// MeanLen is the average payload length.
func (s Stats) MeanLen() float64 {
	if s.Records == 0 {
		return 0
	}
	return float64(s.Residues) / float64(s.Records)
}

// accumulator folds records into Stats.
type accumulator struct {
	stats   Stats
	lengths []int
}

func (a *accumulator) add(rec common.Record) {
	n := rec.Len()
	if a.stats.Records == 0 || n < a.stats.MinLen {
		a.stats.MinLen = n
	}
	if n > a.stats.MaxLen {
		a.stats.MaxLen = n
	}
	a.stats.Records++
	a.stats.Residues += int64(n)
	a.lengths = append(a.lengths, n)

	for i := 0; i < len(rec.Sequence); i++ {
		switch rec.Sequence[i] {
		case 'G', 'C', 'g', 'c':
			a.stats.GC++
			a.stats.Bases++
		case 'A', 'T', 'U', 'a', 't', 'u':
			a.stats.Bases++
		}
	}
}

func (a *accumulator) finish() Stats {
	a.stats.N50 = n50(a.lengths, a.stats.Residues)
	a.stats.GCFraction = gcFraction(a.stats.GC, a.stats.Bases)
	return a.stats
}

// n50 is the length L such that records of length >= L hold at least half
// of all residues.
func n50(lengths []int, total int64) int {
	if len(lengths) == 0 {
		return 0
	}
	sorted := append([]int(nil), lengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	var running int64
	for _, l := range sorted {
		running += int64(l)
		if running*2 >= total {
			return l
		}
	}
	return sorted[len(sorted)-1]
}

// Reader drains r, counting and skipping malformed records.
func Reader(ctx context.Context, r *reader.Reader) (Stats, error) {
	var acc accumulator
	for {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		rec, ok, err := r.Next()
		if errors.Is(err, reader.ErrMalformedRecord) {
			acc.stats.Malformed++
			continue
		}
		if err != nil {
			return Stats{}, err
		}
		if !ok {
			return acc.finish(), nil
		}
		acc.add(rec)
	}
}

// File summarizes a single file inside its own reader scope.
func File(ctx context.Context, path string, opts ...reader.Option) (Stats, error) {
	start := time.Now()

	var stats Stats
	err := reader.RunScoped(source.Path(path), func(r *reader.Reader) error {
		var err error
		stats, err = Reader(ctx, r)
		return err
	}, opts...)
	if err != nil {
		return Stats{}, fmt.Errorf("summary: %s: %w", path, err)
	}
	stats.Path = path

	common.LogDuration(start, "summarized file",
		zap.String("path", path), zap.Int("records", stats.Records), zap.Int("malformed", stats.Malformed))
	return stats, nil
}

// Files summarizes paths concurrently, at most workers at a time (<= 0 means
// one per path). Each file gets its own reader. Results follow input order;
// the first failure cancels the remaining work.
func Files(ctx context.Context, paths []string, workers int, opts ...reader.Option) ([]Stats, error) {
	results := make([]Stats, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		g.Go(func() error {
			stats, err := File(ctx, path, opts...)
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Total folds per-file stats into one. GCFraction is recomputed from the
// summed counts; N50 needs every length and is left zero.
func Total(all []Stats) Stats {
	var t Stats
	t.Path = "total"
	for _, s := range all {
		t.Malformed += s.Malformed
		if s.Records == 0 {
			continue
		}
		if t.Records == 0 || s.MinLen < t.MinLen {
			t.MinLen = s.MinLen
		}
		if s.MaxLen > t.MaxLen {
			t.MaxLen = s.MaxLen
		}
		t.Records += s.Records
		t.Residues += s.Residues
		t.GC += s.GC
		t.Bases += s.Bases
	}
	t.GCFraction = gcFraction(t.GC, t.Bases)
	return t
}

func gcFraction(gc, bases int64) float64 {
	if bases == 0 {
		return 0
	}
	return float64(gc) / float64(bases)
}
