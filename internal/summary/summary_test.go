package summary_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seqscope/internal/alphabet"
	"seqscope/internal/reader"
	"seqscope/internal/source"
	"seqscope/internal/summary"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const threeRecords = ">human\nACCGTGATGTAGAGACCACGGGCCC\n>mouse\nCCCAGTGTGTAACA\n>cat\nAGTGTGTGTTGTGCCCG\n"

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestFileStats(t *testing.T) {
	path := writeFile(t, t.TempDir(), "three.fa", threeRecords)

	stats, err := summary.File(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, path, stats.Path)
	require.Equal(t, 3, stats.Records)
	require.Equal(t, int64(25+14+17), stats.Residues)
	require.Equal(t, 14, stats.MinLen)
	require.Equal(t, 25, stats.MaxLen)
	// sorted desc: 25, 17, 14; 25*2 < 56, (25+17)*2 >= 56
	require.Equal(t, 17, stats.N50)
	require.Zero(t, stats.Malformed)
	require.InDelta(t, 56.0/3.0, stats.MeanLen(), 1e-9)

	gc := strings.Count("ACCGTGATGTAGAGACCACGGGCCCCCCAGTGTGTAACAAGTGTGTGTTGTGCCCG", "G") +
		strings.Count("ACCGTGATGTAGAGACCACGGGCCCCCCAGTGTGTAACAAGTGTGTGTTGTGCCCG", "C")
	require.InDelta(t, float64(gc)/56.0, stats.GCFraction, 1e-9)
}

func TestGCFractionIgnoresAmbiguity(t *testing.T) {
	r, err := reader.New(mustOpen(t, ">x\nGGNNNNAT\n"))
	require.NoError(t, err)
	defer r.Close()

	stats, err := summary.Reader(context.Background(), r)
	require.NoError(t, err)
	require.InDelta(t, 0.5, stats.GCFraction, 1e-9)
	require.Equal(t, int64(8), stats.Residues)
}

func TestMalformedRecordsAreCountedAndSkipped(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mixed.fa", ">a\nACGT\n>b\nAC!T\n>c\nGG\n>empty\n")

	stats, err := summary.File(context.Background(), path, reader.WithAlphabet(alphabet.DNA))
	require.NoError(t, err)
	require.Equal(t, 2, stats.Records)
	require.Equal(t, 2, stats.Malformed)
}

func TestFileInvalidFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.fa", "not a record file\n")

	_, err := summary.File(context.Background(), path)
	require.ErrorIs(t, err, reader.ErrInvalidFormat)
}

func TestFilesPreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 1; i <= 12; i++ {
		var sb strings.Builder
		for j := 0; j < i; j++ {
			fmt.Fprintf(&sb, ">f%d_r%d\n%s\n", i, j, strings.Repeat("AC", j+1))
		}
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("f%02d.fa", i), sb.String()))
	}

	all, err := summary.Files(context.Background(), paths, 3)
	require.NoError(t, err)
	require.Len(t, all, len(paths))
	for i, s := range all {
		require.Equal(t, paths[i], s.Path)
		require.Equal(t, i+1, s.Records)
		require.Equal(t, 2, s.MinLen)
		require.Equal(t, 2*(i+1), s.MaxLen)
	}

	total := summary.Total(all)
	require.Equal(t, 78, total.Records)
	require.Equal(t, 2, total.MinLen)
	require.Equal(t, 24, total.MaxLen)
	require.InDelta(t, 0.5, total.GCFraction, 1e-9)
}

func TestFilesFailsFast(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "ok.fa", threeRecords),
		filepath.Join(dir, "missing.fa"),
		writeFile(t, dir, "ok2.fa", threeRecords),
	}

	_, err := summary.Files(context.Background(), paths, 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilesHonoursCancellation(t *testing.T) {
	path := writeFile(t, t.TempDir(), "three.fa", threeRecords)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := summary.Files(ctx, []string{path, path}, 1)
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestTotalCombinesBaseCounts(t *testing.T) {
	dir := t.TempDir()
	// a: GC 2 of 2 bases, 8 residues. b: GC 0 of 8 bases, 8 residues.
	a := writeFile(t, dir, "a.fa", ">a\nGCNNNNNN\n")
	b := writeFile(t, dir, "b.fa", ">b\nATATATAT\n")

	all, err := summary.Files(context.Background(), []string{a, b}, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), all[0].GC)
	require.Equal(t, int64(2), all[0].Bases)
	require.InDelta(t, 1.0, all[0].GCFraction, 1e-9)

	total := summary.Total(all)
	require.Equal(t, int64(16), total.Residues)
	require.Equal(t, int64(2), total.GC)
	require.Equal(t, int64(10), total.Bases)
	require.InDelta(t, 0.2, total.GCFraction, 1e-9)
}

func TestTotalEmpty(t *testing.T) {
	total := summary.Total(nil)
	require.Zero(t, total.Records)
	require.Zero(t, total.GCFraction)
}

func mustOpen(t *testing.T, s string) io.ReadCloser {
	t.Helper()
	rc, err := source.String(s)()
	require.NoError(t, err)
	return rc
}
