package symbols

import (
	"errors"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics counts lookups against a Cache.
type CacheMetrics struct {
	Hit  prometheus.Counter
	Miss prometheus.Counter
}

// NewCacheMetrics creates CacheMetrics and registers them with reg, if reg is
// non-nil.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symdiff_symbol_file_cache_hit_total",
			Help: "Number of symbol file loads served from the cache.",
		}),
		Miss: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symdiff_symbol_file_cache_miss_total",
			Help: "Number of symbol file loads which had to parse the file.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Hit, m.Miss)
	}
	return m
}

// fileKey identifies one version of a file on disk. Rewriting the file in
// place changes size or mtime; replacing it changes the inode.
type fileKey struct {
	path  string
	stat  stat
	size  int64
	mtime int64
}

// Cache keeps recently parsed symbol files so that unchanged files are not
// parsed again.
type Cache struct {
	files   *lru.Cache[fileKey, *File]
	metrics *CacheMetrics
}

// NewCache creates a Cache holding up to size files.
func NewCache(size int, metrics *CacheMetrics) (*Cache, error) {
	c, err := lru.New[fileKey, *File](size)
	if err != nil {
		return nil, fmt.Errorf("lru create %w", err)
	}
	if metrics == nil {
		metrics = NewCacheMetrics(nil)
	}
	return &Cache{files: c, metrics: metrics}, nil
}

// Load returns the parsed file at path, parsing it only if the file changed
// since it was last loaded.
func (c *Cache) Load(path string) (*File, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &FileNotFoundError{Path: path}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	key := fileKey{
		path:  path,
		stat:  statFromFileInfo(fi),
		size:  fi.Size(),
		mtime: fi.ModTime().UnixNano(),
	}
	if f, ok := c.files.Get(key); ok {
		c.metrics.Hit.Inc()
		return f, nil
	}
	c.metrics.Miss.Inc()

	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.files.Add(key, f)
	return f, nil
}

// Len returns the number of cached files.
func (c *Cache) Len() int { return c.files.Len() }
