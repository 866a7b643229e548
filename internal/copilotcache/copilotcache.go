// Package copilotcache implements a content-addressed cache of copilot
// JSON definitions under $CACHE_DIR/copilot/<code>.json. Downloading the
// definitions is a caller's responsibility; this package only owns placing
// bytes a caller already fetched into, and reading them back out of, the
// cache directory.
package copilotcache

import (
	"os"
	"path/filepath"

	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/maadirs"
)

// Cache is a content-addressed store of downloaded copilot definitions,
// rooted at $CACHE_DIR/copilot.
type Cache struct {
	dirs *maadirs.Dirs
}

// New builds a Cache rooted at dirs.Cache.
func New(dirs *maadirs.Dirs) *Cache {
	return &Cache{dirs: dirs}
}

// Has reports whether code is already cached.
func (c *Cache) Has(code string) bool {
	_, err := os.Stat(c.dirs.CopilotCacheFile(code))
	return err == nil
}

// Get reads the cached bytes for code, failing if absent.
func (c *Cache) Get(code string) ([]byte, error) {
	path := c.dirs.CopilotCacheFile(code)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "reading cached copilot file %s", path)
	}
	return data, nil
}

// Put writes data into the cache under code, creating the copilot
// directory if needed.
func (c *Cache) Put(code string, data []byte) error {
	path := c.dirs.CopilotCacheFile(code)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperr.Wrap(apperr.KindConfig, err, "creating copilot cache directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperr.Wrap(apperr.KindConfig, err, "writing cached copilot file %s", path)
	}
	return nil
}

// Clean removes one cached copilot file by code, a no-op if absent.
func (c *Cache) Clean(code string) error {
	err := os.Remove(c.dirs.CopilotCacheFile(code))
	if err != nil && !os.IsNotExist(err) {
		return apperr.Wrap(apperr.KindConfig, err, "removing cached copilot file")
	}
	return nil
}
