// Package cache implements a content-hash-keyed disk cache of parsed
// global-scope facade snapshots (SPEC_FULL §4.9), so a repeatedly
// `%default`-ed file doesn't need to be re-lexed and re-evaluated on every
// run. Adapted from internal/driver's DiskCache: same struct shape,
// atomic temp-file-then-rename Put, msgpack payload, DropAll-by-rename
// idiom — the payload itself is now a facade.Node snapshot instead of a
// module's compiled metadata.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"confparser/internal/facade"
)

// diskCacheSchemaVersion guards against decoding a payload written by an
// older, incompatible facade.Node shape.
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 content hash, used to key cached entries by the
// exact bytes of the source file that produced them.
type Digest [sha256.Size]byte

// Sum hashes content into a Digest.
func Sum(content []byte) Digest {
	return sha256.Sum256(content)
}

// IsZero reports whether d is the zero digest (never a real hash).
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}

// DiskCache stores facade snapshots on disk, keyed by Digest. Thread-safe
// for concurrent access, matching the concurrent prefetch/evaluation
// model of SPEC_FULL §4.10.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk, schema-versioned wrapper around a cached
// facade.Node snapshot.
type DiskPayload struct {
	Schema  uint16
	Snippet facade.Node
}

// OpenDiskCache initializes and returns a disk cache at the standard
// XDG_CACHE_HOME-relative location for app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes and returns a disk cache rooted at dir
// directly, bypassing the XDG_CACHE_HOME lookup — used when
// driver.Options.CacheDir is set (as tests do) to get a deterministic cache
// location instead of the OS-standard one.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "facades", hexKey+".mp")
}

// Put serializes and writes a facade snapshot to the disk cache under key,
// replacing any existing entry atomically.
func (c *DiskCache) Put(key Digest, snapshot facade.Node) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err = os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", err)
		}
	}()

	payload := DiskPayload{Schema: diskCacheSchemaVersion, Snippet: snapshot}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes the facade snapshot stored under key. found
// is false (with a nil error) when no entry exists, and when an entry
// exists but was written under an older schema version.
func (c *DiskCache) Get(key Digest) (snapshot facade.Node, found bool, err error) {
	if c == nil {
		return facade.Node{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return facade.Node{}, false, nil
		}
		return facade.Node{}, false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()

	var payload DiskPayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return facade.Node{}, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return facade.Node{}, false, nil
	}
	return payload.Snippet, true, nil
}

// DropAll invalidates the cache, useful after a schema or facade format
// change: the directory is renamed out of the way then removed.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
