package program

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"slide/internal/ast"
	"slide/internal/emit"
)

// diskCacheSchemaVersion guards against stale entries after a format change;
// bump it whenever CachedResult's shape changes.
const diskCacheSchemaVersion uint16 = 1

// CacheKey identifies one (source content, analysis context) pair.
type CacheKey [32]byte

// KeyFor hashes src together with the parts of ctx that affect analysis
// output, so a precision or lint-flag change invalidates stale entries
// without needing a separate cache per context.
func KeyFor(src []byte, ctx ProgramContext) CacheKey {
	h := sha256.New()
	h.Write(src)
	h.Write([]byte{byte(ctx.Precision), byte(ctx.Precision >> 8), byte(ctx.Precision >> 16), byte(ctx.Precision >> 24)})
	if ctx.LintEnabled {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	var key CacheKey
	copy(key[:], h.Sum(nil))
	return key
}

// CachedNote is Note flattened to plain fields msgpack can round-trip.
type CachedNote struct {
	Msg string
}

// CachedDiagnostic is diag.Diagnostic flattened for disk storage. Fixes are
// intentionally dropped: they carry a FixThunk interface value that cannot
// be serialized, and the cache's only reader, the root command's
// --cache-dir path, prints cached diagnostics without applying fixes.
type CachedDiagnostic struct {
	Severity uint8
	Code     string
	Message  string
	Notes    []CachedNote
}

// CachedResult is the on-disk, process-independent projection of a Result:
// rendered text rather than live ast.ExprIDs, since those are only
// meaningful within the *ast.Graph that produced them and that graph is
// never itself persisted.
type CachedResult struct {
	Schema          uint16
	OriginalText    []string
	SimplifiedText  []string
	Diagnostics     []CachedDiagnostic
	DiagnosticCount int
}

// ToCached renders res against g into a disk-persistable projection.
func ToCached(g *ast.Graph, res *Result) *CachedResult {
	cached := &CachedResult{
		Schema:          diskCacheSchemaVersion,
		OriginalText:    make([]string, len(res.Original.Stmts)),
		SimplifiedText:  make([]string, len(res.Simplified)),
		Diagnostics:     make([]CachedDiagnostic, len(res.Diagnostics)),
		DiagnosticCount: len(res.Diagnostics),
	}
	for i, s := range res.Original.Stmts {
		cached.OriginalText[i] = emit.Stmt(g, s, emit.Pretty, emit.Config{})
	}
	for i, id := range res.Simplified {
		cached.SimplifiedText[i] = emit.Expr(g, id, emit.Pretty, emit.Config{})
	}
	for i, d := range res.Diagnostics {
		notes := make([]CachedNote, len(d.Notes))
		for j, n := range d.Notes {
			notes[j] = CachedNote{Msg: n.Msg}
		}
		cached.Diagnostics[i] = CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     d.Code.String(),
			Message:  d.Message,
			Notes:    notes,
		}
	}
	return cached
}

// DiskCache stores CachedResult payloads keyed by content hash under a
// caller-chosen directory (CLI `--cache-dir`), grounded on teacher
// vovakirdan-surge's internal/driver/dcache.go DiskCache (same atomic
// temp-file-then-rename write, same RWMutex guarding concurrent access).
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache creates (if needed) and returns a disk cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key CacheKey) string {
	return filepath.Join(c.dir, "analyses", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes payload for key.
func (c *DiskCache) Put(key CacheKey, payload *CachedResult) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get reads and deserializes the payload for key, reporting false if absent.
func (c *DiskCache) Get(key CacheKey) (*CachedResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload CachedResult
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

