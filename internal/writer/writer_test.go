package writer_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seqscope/internal/common"
	"seqscope/internal/reader"
	"seqscope/internal/source"
	"seqscope/internal/writer"

	"github.com/stretchr/testify/require"
)

func TestWriteWrapsPayload(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  string
	}{
		{"SingleLine", 0, ">human primate\nACCGTGATGT\n"},
		{"Width4", 4, ">human primate\nACCG\nTGAT\nGT\n"},
		{"ExactMultiple", 5, ">human primate\nACCGT\nGATGT\n"},
		{"NegativeMeansSingleLine", -3, ">human primate\nACCGTGATGT\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := writer.New(&buf, tt.width)
			require.NoError(t, w.Write(common.Record{ID: "human", Description: "primate", Sequence: "ACCGTGATGT"}))
			require.NoError(t, w.Flush())
			require.Equal(t, tt.want, buf.String())
			require.Equal(t, 1, w.Len())
		})
	}
}

func TestWriteRejectsMissingID(t *testing.T) {
	w := writer.New(&bytes.Buffer{}, 0)
	require.Error(t, w.Write(common.Record{Sequence: "ACGT"}))
	require.Zero(t, w.Len())
}

func TestWriteAllRoundTripsThroughReader(t *testing.T) {
	input := ">human\nACCGTGATGTAGAGACCACGGGCCC\n>mouse lab\nCCCAGTGTGTAACA\n>cat\nAGTGTGTGTTGTGCCCG\n"

	var buf bytes.Buffer
	w := writer.New(&buf, 7)
	err := reader.RunScoped(source.String(input), func(r *reader.Reader) error {
		n, err := w.WriteAll(r)
		require.Equal(t, 3, n)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	want, err := reader.Collect(source.String(input))
	require.NoError(t, err)
	got, err := reader.Collect(source.Bytes(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFileWriterBulk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bulk.fa")

	fw, err := writer.Create(path, writer.DefaultWidth)
	require.NoError(t, err)
	require.Equal(t, path, fw.Path())

	const n = 256
	expected := make([]common.Record, 0, n)
	for i := 0; i < n; i++ {
		rec := common.Record{
			ID:          fmt.Sprintf("seq%03d", i),
			Description: fmt.Sprintf("batch %d", i/64),
			Sequence:    strings.Repeat("ACGT", i%50+1),
		}
		expected = append(expected, rec)
		require.NoError(t, fw.Write(rec))
	}
	require.Equal(t, n, fw.Len())
	require.NoError(t, fw.Close())
	require.NoError(t, fw.Close())
	require.Error(t, fw.Write(expected[0]))

	err = reader.RunScoped(source.File(path), func(r *reader.Reader) error {
		common.RequireMatchesIterator(t, r, expected)
		return nil
	})
	require.NoError(t, err)
}

func TestCreateTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fa")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("junk\n", 100)), 0o644))

	fw, err := writer.Create(path, 0)
	require.NoError(t, err)
	require.NoError(t, fw.Write(common.Record{ID: "cat", Sequence: "AGTG"}))
	require.NoError(t, fw.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, ">cat\nAGTG\n", string(data))
}
