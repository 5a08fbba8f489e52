// Package cache persists per-file lint results between runs.
//
// Entries are keyed by the file content hash combined with a digest of
// the effective configuration, so any change to either the file or the
// rule settings invalidates the entry. Payloads are msgpack-encoded and
// written atomically (temp file + rename).
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"simplint/internal/config"
	"simplint/internal/diag"
	"simplint/internal/source"
)

// schema is bumped whenever the payload layout or the diagnostic
// semantics change in a way that makes older entries unusable.
const schema uint16 = 1

// Finding is the serialized form of one diagnostic. Spans are stored as
// byte offsets and refitted with the current FileID on a cache hit.
type Finding struct {
	Code     uint16 `msgpack:"c"`
	Severity uint8  `msgpack:"s"`
	Start    uint32 `msgpack:"a"`
	End      uint32 `msgpack:"b"`
	Message  string `msgpack:"m"`
}

type payload struct {
	Schema   uint16    `msgpack:"v"`
	Findings []Finding `msgpack:"f"`
}

// Cache is a directory-backed result store. The zero value is not
// usable; construct with Open.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open creates (if needed) and returns the cache directory for app,
// honoring XDG_CACHE_HOME with a ~/.cache fallback.
func Open(app string) (*Cache, error) {
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
	return &Cache{dir: dir}, nil
}

// OpenAt returns a cache rooted at an explicit directory. Used by tests
// and by the --cache-dir flag.
func OpenAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir reports the root directory of the cache.
func (c *Cache) Dir() string {
	return c.dir
}

// ConfigDigest hashes the effective configuration. Any settings change
// yields a new digest and therefore cold lookups.
func ConfigDigest(cfg *config.Config) ([32]byte, error) {
	raw, err := msgpack.Marshal(cfg)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(raw), nil
}

// Key combines a file content hash with a config digest.
func Key(contentHash, configDigest [32]byte) [32]byte {
	h := sha256.New()
	h.Write(contentHash[:])
	h.Write(configDigest[:])
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *Cache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put stores the findings for key. The write is atomic so a concurrent
// reader never observes a torn entry.
func (c *Cache) Put(key [32]byte, findings []Finding) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	enc := msgpack.NewEncoder(tmp)
	if err := enc.Encode(payload{Schema: schema, Findings: findings}); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Get loads the findings for key. A missing entry, a schema mismatch or
// a corrupt file all report (nil, false, nil): the caller re-lints.
func (c *Cache) Get(key [32]byte) ([]Finding, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, false, nil
	}
	if p.Schema != schema {
		return nil, false, nil
	}
	return p.Findings, true, nil
}

// DropAll discards every entry. The directory is renamed aside first so
// an interrupted removal cannot leave a half-empty live cache.
func (c *Cache) DropAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().UTC().Format("20060102T150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// Encode converts live diagnostics into cacheable findings.
func Encode(items []diag.Diagnostic) []Finding {
	out := make([]Finding, 0, len(items))
	for _, d := range items {
		out = append(out, Finding{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	return out
}

// Decode rebuilds diagnostics from cached findings, attaching the
// FileID the file received in the current run.
func Decode(findings []Finding, file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(findings))
	for _, f := range findings {
		out = append(out, diag.Diagnostic{
			Code:     diag.Code(f.Code),
			Severity: diag.Severity(f.Severity),
			Message:  f.Message,
			Primary:  source.Span{File: file, Start: f.Start, End: f.End},
		})
	}
	return out
}
