package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"seqscope/internal/common"
	"seqscope/internal/index"

	"github.com/stretchr/testify/require"
)

const sample = ">a first\nACGT\n>b\nXX!!\n>c\n"

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.fa")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	return path
}

func TestInspectRecordsIgnoresAlphabet(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, inspectRecords(&out, writeSample(t)))
	require.Contains(t, out.String(), `Record 0: offset=0 length=4 id="a"`)
	require.Contains(t, out.String(), `Record 1: offset=14 length=4 id="b"`)
	require.Contains(t, out.String(), `Record 2: offset=22 length=0 id="c"`)
	require.Contains(t, out.String(), "Total records: 3")
}

func TestInspectIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "good.fa")
	require.NoError(t, os.WriteFile(path, []byte(">a\nACGT\n>b\nGG\n"), 0o644))
	ix, err := index.Build(path)
	require.NoError(t, err)
	require.NoError(t, index.Save(ix, common.IndexPath(path)))

	var out bytes.Buffer
	require.NoError(t, inspectIndex(&out, common.IndexPath(path)))
	require.Contains(t, out.String(), "source_size=14")
	require.Contains(t, out.String(), "magic=0x31495153")
	require.Contains(t, out.String(), `Record 1: offset=8 length=2 id="b"`)
}

func TestInspectIndexRejectsShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.sqi")
	require.NoError(t, os.WriteFile(path, []byte("SQI"), 0o644))

	var out bytes.Buffer
	require.ErrorIs(t, inspectIndex(&out, path), index.ErrCorruptIndex)
}
