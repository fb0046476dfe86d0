// Package mockreader provides in-memory contracts.Reader/CacheStore test
// doubles for the pre-roll worker's tests and the demo CLI. Base Reader
// implements only contracts.Reader; PreviewSized and CacheClearable are
// added via decorator wrappers so tests can exercise both the
// capability-present and capability-absent paths with a type assertion.
package mockreader

import (
	"sync"

	"github.com/openshot-go/prerollcache/internal/contracts"
	"github.com/openshot-go/prerollcache/internal/frame"
)

// Cache is an in-memory contracts.CacheStore.
type Cache struct {
	mu       sync.Mutex
	frames   map[int64]*frame.Frame
	maxBytes int64
}

// NewCache returns an empty Cache with the given byte budget (0 = unlimited).
func NewCache(maxBytes int64) *Cache {
	return &Cache{frames: make(map[int64]*frame.Frame), maxBytes: maxBytes}
}

func (c *Cache) Contains(n int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.frames[n]
	return ok
}

func (c *Cache) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func (c *Cache) GetMaxBytes() int64 { return c.maxBytes }

// Add inserts f, keyed by its frame number.
func (c *Cache) Add(f *frame.Frame) {
	c.mu.Lock()
	c.frames[f.Number] = f
	c.mu.Unlock()
}

// Clear empties the cache, simulating ClearAllCache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.frames = make(map[int64]*frame.Frame)
	c.mu.Unlock()
}

var _ contracts.CacheStore = (*Cache)(nil)

// Reader is an in-memory contracts.Reader. Every GetFrame call that isn't
// out of bounds inserts the produced frame into its Cache and is recorded
// in call order, retrievable via Calls for assertions on fetch order.
type Reader struct {
	mu    sync.Mutex
	info  contracts.ReaderInfo
	cache *Cache

	// MaxFrame bounds valid frame numbers to [1, MaxFrame]; requests
	// outside that range return contracts.ErrOutOfBoundsFrame. Zero means
	// unbounded.
	MaxFrame int64

	calls      []int64
	clearCalls int
}

// NewReader returns a Reader reporting info and backed by cache.
func NewReader(info contracts.ReaderInfo, cache *Cache) *Reader {
	return &Reader{info: info, cache: cache}
}

func (r *Reader) Info() contracts.ReaderInfo { return r.info }

func (r *Reader) GetCache() contracts.CacheStore { return r.cache }

// GetFrame returns contracts.ErrOutOfBoundsFrame for n < 1, and for
// n > MaxFrame when MaxFrame is set; otherwise it synthesizes a blank frame numbered n,
// deposits it in the cache, and records the call.
func (r *Reader) GetFrame(n int64) (*frame.Frame, error) {
	r.mu.Lock()
	if n < 1 || (r.MaxFrame > 0 && n > r.MaxFrame) {
		r.mu.Unlock()
		return nil, contracts.ErrOutOfBoundsFrame
	}
	r.calls = append(r.calls, n)
	r.mu.Unlock()

	f := frame.NewBlankFrame()
	f.Number = n
	r.cache.Add(f)
	return f, nil
}

// Calls returns the frame numbers requested via GetFrame, in call order.
func (r *Reader) Calls() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, len(r.calls))
	copy(out, r.calls)
	return out
}

// ClearCalls returns how many times clearAllCache has run, via either
// decorator wrapper.
func (r *Reader) ClearCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearCalls
}

func (r *Reader) clearAllCache() {
	r.mu.Lock()
	r.clearCalls++
	r.mu.Unlock()
	r.cache.Clear()
}

var _ contracts.Reader = (*Reader)(nil)

// previewClearable wraps a Reader, adding both PreviewSize and
// ClearAllCache at once.
type previewClearable struct {
	*Reader
	width, height int
}

func (p previewClearable) PreviewSize() (int, int) { return p.width, p.height }
func (p previewClearable) ClearAllCache()          { p.Reader.clearAllCache() }

// WithPreviewSize wraps r so it additionally satisfies contracts.PreviewSized,
// reporting (width, height) as its preview dimensions.
func WithPreviewSize(r *Reader, width, height int) contracts.Reader {
	return previewSizedReader{Reader: r, width: width, height: height}
}

type previewSizedReader struct {
	*Reader
	width, height int
}

func (p previewSizedReader) PreviewSize() (int, int) { return p.width, p.height }

// WithCacheClearable wraps r so it additionally satisfies
// contracts.CacheClearable.
func WithCacheClearable(r *Reader) contracts.Reader {
	return cacheClearableReader{Reader: r}
}

type cacheClearableReader struct {
	*Reader
}

func (c cacheClearableReader) ClearAllCache() { c.Reader.clearAllCache() }

// WithPreviewAndClearable wraps r so it satisfies both capability
// interfaces at once.
func WithPreviewAndClearable(r *Reader, width, height int) contracts.Reader {
	return previewClearable{Reader: r, width: width, height: height}
}
