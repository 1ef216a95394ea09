package loader

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"hermannm.dev/devlog/log"
	"hermannm.dev/salesdash/sales"
	"hermannm.dev/wrap"
)

// Identifies one version of a source file. A cached table is only reused while the file's
// identity is unchanged.
type SourceID struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Cache is a single-slot memo of the table loaded from one source path. A table is built
// in full before it is published, so readers never see a partial table. Failed loads are
// never cached.
type Cache struct {
	path string
	load func(path string) (sales.Table, error)

	lock  sync.RWMutex
	entry *cacheEntry

	// Incremented by Clear, so that a load started before a clear is not published after it
	generation uint64

	loads singleflight.Group
}

type cacheEntry struct {
	id    SourceID
	table sales.Table
}

func NewCache(path string) *Cache {
	return &Cache{path: path, load: Load}
}

// Same as NewCache, but with a custom load function instead of Load.
func NewCacheWithLoader(path string, load func(path string) (sales.Table, error)) *Cache {
	return &Cache{path: path, load: load}
}

func (cache *Cache) Path() string {
	return cache.path
}

// Returns the cached table if the source is unchanged since it was loaded, and otherwise
// loads it. Concurrent callers that miss share one load.
func (cache *Cache) Get(ctx context.Context) (sales.Table, error) {
	id, err := cache.sourceID()
	if err != nil {
		return sales.Table{}, err
	}

	cache.lock.RLock()
	entry := cache.entry
	generation := cache.generation
	cache.lock.RUnlock()

	if entry != nil && entry.id == id {
		return entry.table, nil
	}

	result := cache.loads.DoChan(cache.path, func() (any, error) {
		table, err := cache.load(cache.path)
		if err != nil {
			return nil, err
		}

		cache.lock.Lock()
		if cache.generation == generation {
			cache.entry = &cacheEntry{id: id, table: table}
		}
		cache.lock.Unlock()

		log.Info(
			"loaded sales data",
			slog.String("source", cache.path),
			slog.Int("records", table.Len()),
			slog.String("loadId", table.LoadID().String()),
		)
		return table, nil
	})

	select {
	case <-ctx.Done():
		return sales.Table{}, wrap.Error(ctx.Err(), "stopped waiting for sales data to load")
	case res := <-result:
		if res.Err != nil {
			return sales.Table{}, res.Err
		}
		return res.Val.(sales.Table), nil
	}
}

// Drops the cached table, so the next Get reads the source again.
func (cache *Cache) Clear() {
	cache.lock.Lock()
	cache.entry = nil
	cache.generation++
	cache.lock.Unlock()

	cache.loads.Forget(cache.path)
}

func (cache *Cache) Reload(ctx context.Context) (sales.Table, error) {
	cache.Clear()
	return cache.Get(ctx)
}

// Returns the currently cached table without touching the source.
func (cache *Cache) Cached() (table sales.Table, ok bool) {
	cache.lock.RLock()
	defer cache.lock.RUnlock()

	if cache.entry == nil {
		return sales.Table{}, false
	}
	return cache.entry.table, true
}

func (cache *Cache) sourceID() (SourceID, error) {
	absolutePath, err := filepath.Abs(cache.path)
	if err != nil {
		absolutePath = cache.path
	}

	info, err := os.Stat(cache.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SourceID{}, &LoadError{Kind: SourceNotFound, Source: cache.path, Cause: err}
		}
		return SourceID{}, &LoadError{Kind: ParseFailure, Source: cache.path, Cause: err}
	}

	return SourceID{Path: absolutePath, Size: info.Size(), ModTime: info.ModTime()}, nil
}
