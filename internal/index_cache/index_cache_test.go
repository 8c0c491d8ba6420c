package index_cache

import (
	"os"
	"path/filepath"
	"testing"

	"seqscope/internal/common"
	"seqscope/internal/index"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIndexBuildsThenCaches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.fa")
	writeFile(t, path, ">a\nACGT\n>b\nGG\n")

	c := New(2)
	ix, err := c.Index(path)
	require.NoError(t, err)
	require.Equal(t, 2, ix.Len())
	require.Equal(t, 1, c.Len())

	again, err := c.Index(path)
	require.NoError(t, err)
	require.Same(t, ix, again)
}

func TestIndexPrefersSavedIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.fa")
	writeFile(t, path, ">a\nACGT\n")

	built, err := index.Build(path)
	require.NoError(t, err)
	require.NoError(t, index.Save(built, common.IndexPath(path)))

	ix, err := New(0).Index(path)
	require.NoError(t, err)
	require.Equal(t, built.Entries(), ix.Entries())
}

func TestGetDropsStaleEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.fa")
	writeFile(t, path, ">a\nACGT\n")

	c := New(4)
	_, err := c.Index(path)
	require.NoError(t, err)

	writeFile(t, path, ">a\nACGT\n>b\nGG\n")
	_, ok := c.Get(path)
	require.False(t, ok)
	require.Equal(t, 0, c.Len())

	ix, err := c.Index(path)
	require.NoError(t, err)
	require.Equal(t, 2, ix.Len())
}

func TestEviction(t *testing.T) {
	dir := t.TempDir()
	c := New(2)
	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(dir, string(rune('a'+i))+".fa")
		writeFile(t, paths[i], ">x\nACGT\n")
		_, err := c.Index(paths[i])
		require.NoError(t, err)
	}

	require.Equal(t, 2, c.Len())
	_, ok := c.Get(paths[0])
	require.False(t, ok)
	_, ok = c.Get(paths[2])
	require.True(t, ok)
}
