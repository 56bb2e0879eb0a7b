// Package cache stores generated IFJcode23 keyed by a digest of the source,
// the compiler version and the generator options, so unchanged projects are
// not recompiled.
package cache

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/vyPal/ifjc/lib/compiler"
)

// EnvDir overrides the cache location.
const EnvDir = "IFJC_CACHE"

type Cache struct {
	Dir string
}

// Open returns the user's cache, creating its directory if needed.
func Open() (*Cache, error) {
	dir := os.Getenv(EnvDir)
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, errors.Wrap(err, "locating cache directory")
		}
		dir = filepath.Join(base, "ifjc")
	}
	return New(dir)
}

func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(err, "creating cache directory")
	}
	return &Cache{Dir: dir}, nil
}

// Key digests everything the generated code depends on.
func Key(src []byte, version string, opts compiler.Options) string {
	h := md5.New()
	fmt.Fprintf(h, "%s\x00%t\x00%s\x00", version, opts.Comments, opts.Header)
	h.Write(src)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.Dir, key+".ifjcode")
}

func (c *Cache) Get(key string) (string, bool) {
	code, err := os.ReadFile(c.path(key))
	if err != nil {
		return "", false
	}
	return string(code), true
}

// Put stores code under key. The entry appears atomically, so a concurrent
// Get never sees a partial file.
func (c *Cache) Put(key, code string) error {
	tmp, err := os.CreateTemp(c.Dir, key+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating cache entry")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, code); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing cache entry")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "writing cache entry")
	}
	return errors.Wrap(os.Rename(tmp.Name(), c.path(key)), "storing cache entry")
}

// Clear removes every entry and returns how many there were.
func (c *Cache) Clear() (int, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return 0, errors.Wrap(err, "reading cache directory")
	}
	n := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".ifjcode") {
			continue
		}
		if err := os.Remove(filepath.Join(c.Dir, entry.Name())); err != nil {
			return n, errors.Wrap(err, "removing cache entry")
		}
		n++
	}
	return n, nil
}
