package index_cache

import (
	"errors"
	"io/fs"
	"os"
	"sync"

	"seqscope/internal/common"
	"seqscope/internal/index"
	"seqscope/internal/reader"

	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"
)

const DefaultCapacity = 16

type lruCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

var _ IndexCache = (*lruCache)(nil)

// New returns an LRU index cache holding at most capacity indexes.
func New(capacity int) IndexCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &lruCache{cache: lru.New(capacity)}
}

func (c *lruCache) Get(path string) (*index.Index, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.cache.Get(path)
	if !ok {
		return nil, false
	}
	ix := v.(*index.Index)

	info, err := os.Stat(path)
	if err != nil || info.Size() != ix.SourceSize() {
		c.cache.Remove(path)
		return nil, false
	}
	return ix, true
}

func (c *lruCache) Put(path string, ix *index.Index) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(path, ix)
}

func (c *lruCache) Index(path string, opts ...reader.Option) (*index.Index, error) {
	if ix, ok := c.Get(path); ok {
		return ix, nil
	}

	ix, err := index.Load(common.IndexPath(path))
	if err != nil || !matchesSource(path, ix) {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			common.Logger().Warn("ignoring unreadable index", zap.String("path", path), zap.Error(err))
		}
		if ix, err = index.Build(path, opts...); err != nil {
			return nil, err
		}
	}

	c.Put(path, ix)
	return ix, nil
}

func (c *lruCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

func matchesSource(path string, ix *index.Index) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() == ix.SourceSize()
}
