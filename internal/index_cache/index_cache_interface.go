package index_cache

import (
	"seqscope/internal/index"
	"seqscope/internal/reader"
)

// IndexCache keeps recently used indexes in memory, keyed by source path,
// so repeated lookups against the same file skip loading or rebuilding.
type IndexCache interface {
	// Get returns the cached index for path if it still matches the file on disk.
	Get(path string) (*index.Index, bool)

	// Put stores an index for path, evicting the least recently used entry when full.
	Put(path string, ix *index.Index)

	// Index returns the cached index, or loads <path>.sqi, or builds one.
	Index(path string, opts ...reader.Option) (*index.Index, error)

	// Len returns the number of cached indexes.
	Len() int
}
