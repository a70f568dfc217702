package pxrem

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/sugawarayuuta/sonnet"
	"go.trai.ch/zerr"
)

// DefaultCacheFile is the cache document name used when no path is configured
const DefaultCacheFile = ".pxrem-cache.json"

const cacheFilePerm = 0o644

// Cache is a single-document, revision-keyed cache of generated utilities.
//
// The whole document is replaced on every write and mirrored in memory so that
// repeated reads within one process never touch the disk. There is no locking:
// concurrent writers race and the last one wins.
type Cache struct {
	path   string
	memory CacheEntry
	logger *slog.Logger
}

// NewCache creates a cache backed by the JSON document at path.
// A nil logger discards log output.
func NewCache(path string, logger *slog.Logger) *Cache {
	if path == "" {
		path = DefaultCacheFile
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Cache{path: path, logger: logger}
}

// Path returns the backing file path
func (c *Cache) Path() string {
	return c.path
}

// Read returns the cached entry.
//
// The memory mirror is returned when present. Otherwise the backing file is
// decoded and mirrored. A file that cannot be decoded is treated as corrupt:
// the failure is logged, the file is removed best-effort and no entry is returned.
func (c *Cache) Read() (CacheEntry, bool) {
	if c.memory != nil {
		return c.memory, true
	}

	if _, err := os.Stat(c.path); err != nil {
		return nil, false
	}

	entry, err := c.load()
	if err != nil {
		c.logger.Error("cache read error", "path", c.path, "error", err)
		_ = os.Remove(c.path)
		return nil, false
	}
	if entry == nil {
		return nil, false
	}

	c.memory = entry
	return entry, true
}

func (c *Cache) load() (CacheEntry, error) {
	//nolint:gosec // Path comes from trusted configuration
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, zerr.Wrap(err, ErrCacheRead.Error())
	}

	var entry CacheEntry
	dec := sonnet.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&entry); err != nil {
		return nil, zerr.Wrap(err, ErrCacheDecode.Error())
	}
	if dec.More() {
		return nil, zerr.With(ErrCacheDecode, "reason", "trailing data after cache document")
	}

	return entry, nil
}

// Lookup returns the utilities cached under key
func (c *Cache) Lookup(key string) (*UtilityMap, bool) {
	entry, ok := c.Read()
	if !ok {
		return nil, false
	}
	utilities, ok := entry[key]
	if !ok || utilities == nil {
		return nil, false
	}
	return utilities, true
}

// Write replaces the whole cache document with entry.
//
// Writing is best-effort: a failure is logged and returned, and the memory
// mirror keeps its previous state. Callers are free to ignore the error.
func (c *Cache) Write(entry CacheEntry) error {
	data, err := sonnet.Marshal(entry)
	if err != nil {
		err = zerr.Wrap(err, ErrCacheEncode.Error())
		c.logger.Error("cache write error", "path", c.path, "error", err)
		return err
	}

	if err := atomicWriteFile(c.path, data, cacheFilePerm); err != nil {
		err = zerr.Wrap(err, ErrCacheWrite.Error())
		c.logger.Error("cache write error", "path", c.path, "error", err)
		return err
	}

	c.memory = entry
	c.logger.Debug("cache written", "path", c.path, "revisions", len(entry))
	return nil
}

// Forget drops the memory mirror so the next Read goes to disk
func (c *Cache) Forget() {
	c.memory = nil
}

// Clear removes the backing file and the memory mirror.
// A missing file is not an error.
func (c *Cache) Clear() error {
	c.memory = nil
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, ErrCacheRemove.Error())
	}
	return nil
}
