package preroll

import (
	"context"
	"testing"

	"github.com/openshot-go/prerollcache/internal/contracts"
	"github.com/openshot-go/prerollcache/internal/frame"
	"github.com/openshot-go/prerollcache/internal/mockreader"
	"github.com/openshot-go/prerollcache/internal/settings"
)

func testInfo() contracts.ReaderInfo {
	return contracts.ReaderInfo{
		Width: 10, Height: 10,
		FPS:        contracts.FrameRate{Num: 30, Den: 1},
		SampleRate: 48000,
		Channels:   2,
	}
}

func newTestWorker(t *testing.T, reader contracts.Reader, st *settings.Static) *Worker {
	t.Helper()
	return New(reader, st, nil)
}

func staticSettings(minPreroll, maxPreroll int) *settings.Static {
	s := settings.Defaults()
	s.MinPreroll = minPreroll
	s.MaxPreroll = maxPreroll
	return s
}

// Scenario 1: cold start, forward play.
func TestPass_ColdStartForwardPlay(t *testing.T) {
	cache := mockreader.NewCache(0)
	reader := mockreader.NewReader(testInfo(), cache)
	st := staticSettings(4, 8)
	w := newTestWorker(t, reader, st)

	w.SetSpeed(1)
	w.Play()

	w.pass(context.Background())

	calls := reader.Calls()
	want := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d: %v", len(calls), len(want), calls)
	}
	for i, n := range want {
		if calls[i] != n {
			t.Fatalf("call %d: got frame %d, want %d", i, calls[i], n)
		}
	}
	if !w.IsReady() {
		t.Fatalf("expected isReady true after visiting %d frames with min_preroll=4", len(calls))
	}
}

// Scenario 2: mid-playback seek outside window clears the cache and resets
// the work counter.
func TestSeekPreroll_DiscontiguousJumpClearsCache(t *testing.T) {
	cache := mockreader.NewCache(0)
	base := mockreader.NewReader(testInfo(), cache)
	reader := mockreader.WithCacheClearable(base)
	st := staticSettings(4, 8)
	w := New(reader, st, nil)

	// Prime state as if mid-playback, caching 100..108.
	w.mu.Lock()
	w.st.currentDisplayFrame = 100
	w.st.requestedDisplayFrame = 100
	w.st.lastSpeed = 1
	w.st.cachedFrameCount = 9
	w.mu.Unlock()
	cache.Add(&frame.Frame{Number: 100})

	w.SeekPreroll(500, true)

	if base.ClearCalls() != 1 {
		t.Fatalf("expected ClearAllCache called once, got %d", base.ClearCalls())
	}
	if got := w.CachedFrameCount(); got != 0 {
		t.Fatalf("expected cached_frame_count reset to 0, got %d", got)
	}
	if got := w.RequestedDisplayFrame(); got != 500 {
		t.Fatalf("expected requested_display_frame 500, got %d", got)
	}
	if w.IsReady() {
		t.Fatalf("expected isReady false immediately after a discontiguous seek")
	}
}

// Scenario 3: pausing mid-playback latches should_pause_cache, recomputes
// the window from the byte budget, and the next pass makes no further
// fetches.
func TestPass_PauseFillsAheadThenSkips(t *testing.T) {
	cache := mockreader.NewCache(1 << 30) // 1 GiB
	info := contracts.ReaderInfo{
		Width: 1024, Height: 1024, // ~4 MiB/frame of image alone
		FPS:        contracts.FrameRate{Num: 30, Den: 1},
		SampleRate: 48000,
		Channels:   2,
	}
	reader := mockreader.NewReader(info, cache)
	st := staticSettings(4, 8)
	st.Percent = 0.9
	st.MaxFramesLimit = 200
	w := New(reader, st, nil)

	w.mu.Lock()
	w.st.lastSpeed = 1 // was playing forward before the pause
	w.mu.Unlock()
	w.SetSpeed(0)
	w.Play()

	w.pass(context.Background())

	w.mu.Lock()
	paused := w.st.shouldPauseCache
	window := w.st.maxFramesAhead
	w.mu.Unlock()
	if !paused {
		t.Fatalf("expected should_pause_cache latched true after first paused pass")
	}
	if window <= 8 || window > 200 {
		t.Fatalf("expected recomputed window clamped to (8, 200], got %d", window)
	}
	if len(reader.Calls()) == 0 {
		t.Fatalf("expected the paused-filling pass to fetch frames")
	}

	before := len(reader.Calls())
	w.pass(context.Background())
	if after := len(reader.Calls()); after != before {
		t.Fatalf("expected skip mode to make no further fetches, got %d new calls", after-before)
	}
}

// Scenario 4: reverse play visits frames in descending order.
func TestPass_ReversePlay(t *testing.T) {
	cache := mockreader.NewCache(0)
	reader := mockreader.NewReader(testInfo(), cache)
	st := staticSettings(4, 8)
	w := New(reader, st, nil)

	w.mu.Lock()
	w.st.currentDisplayFrame = 50
	w.st.requestedDisplayFrame = 50
	w.st.lastSpeed = -1 // steady-state reverse, established by a prior pass
	w.mu.Unlock()
	w.SetSpeed(-1)
	w.Play()

	w.pass(context.Background())

	calls := reader.Calls()
	want := []int64{50, 49, 48, 47, 46, 45, 44, 43, 42}
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d: %v", len(calls), len(want), calls)
	}
	for i, n := range want {
		if calls[i] != n {
			t.Fatalf("call %d: got frame %d, want %d", i, calls[i], n)
		}
	}
}

// Scenario 5: a speed change mid-window breaks the pass at the next
// checkpoint.
func TestPass_SpeedChangeMidWindowBreaks(t *testing.T) {
	cache := mockreader.NewCache(0)
	reader := &speedFlippingReader{Reader: mockreader.NewReader(testInfo(), cache), flipAt: 105}
	st := staticSettings(4, 8)
	w := New(reader, st, nil)

	w.mu.Lock()
	w.st.currentDisplayFrame = 100
	w.st.requestedDisplayFrame = 100
	w.mu.Unlock()
	reader.worker = w
	w.SetSpeed(1)
	w.Play()

	w.pass(context.Background())

	calls := reader.Calls()
	if len(calls) == 0 {
		t.Fatalf("expected at least one fetch before the speed flip")
	}
	if calls[len(calls)-1] != 105 {
		t.Fatalf("expected the pass to break right after frame 105, last call was %d", calls[len(calls)-1])
	}
}

type speedFlippingReader struct {
	*mockreader.Reader
	flipAt int64
	worker *Worker
}

func (r *speedFlippingReader) GetFrame(n int64) (*frame.Frame, error) {
	f, err := r.Reader.GetFrame(n)
	if n == r.flipAt && r.worker != nil {
		r.worker.SetSpeed(2)
	}
	return f, err
}

// Scenario 6: caching disabled makes no fetches, only syncs the display
// frame.
func TestPass_CachingDisabled(t *testing.T) {
	cache := mockreader.NewCache(0)
	reader := mockreader.NewReader(testInfo(), cache)
	st := staticSettings(4, 8)
	st.CachingEnabled = false
	w := New(reader, st, nil)

	w.Seek(7)
	w.SetSpeed(1)
	w.Play()

	w.pass(context.Background())

	if len(reader.Calls()) != 0 {
		t.Fatalf("expected no GetFrame calls with caching disabled, got %v", reader.Calls())
	}
	if got := w.CurrentDisplayFrame(); got != 7 {
		t.Fatalf("expected current_display_frame synced to 7, got %d", got)
	}
}

// Stop() must be observed by Run within one pass.
func TestRun_StopExitsPromptly(t *testing.T) {
	cache := mockreader.NewCache(0)
	reader := mockreader.NewReader(testInfo(), cache)
	st := staticSettings(4, 8)
	w := New(reader, st, nil)
	w.SetSpeed(0)
	w.Play()

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	w.Stop()
	<-done // would hang forever on failure; the test's own timeout catches that
}

// GetBytes is a pure function: equal inputs always produce equal outputs.
func TestGetBytes_Deterministic(t *testing.T) {
	a := GetBytes(1920, 1080, 48000, 2, 29.97)
	b := GetBytes(1920, 1080, 48000, 2, 29.97)
	if a != b {
		t.Fatalf("GetBytes not stable for identical inputs: %d != %d", a, b)
	}
	if a <= int64(1920*1080*4) {
		t.Fatalf("expected GetBytes to include a positive audio term, got %d", a)
	}
}

func TestGetBytes_NonPositiveFPS(t *testing.T) {
	got := GetBytes(10, 10, 48000, 2, 0)
	want := int64(10 * 10 * 4)
	if got != want {
		t.Fatalf("GetBytes with fps<=0: got %d, want %d (image term only)", got, want)
	}
}

// ErrOutOfBoundsFrame must never propagate out of a pass.
func TestPass_OutOfBoundsFrameSwallowed(t *testing.T) {
	cache := mockreader.NewCache(0)
	reader := mockreader.NewReader(testInfo(), cache)
	reader.MaxFrame = 3
	st := staticSettings(1, 8)
	w := New(reader, st, nil)

	w.mu.Lock()
	w.st.currentDisplayFrame = 1
	w.st.requestedDisplayFrame = 1
	w.mu.Unlock()
	w.SetSpeed(1)
	w.Play()

	w.pass(context.Background()) // frames 4..9 are out of bounds; must not panic or hang

	if got := w.CachedFrameCount(); got != 9 {
		t.Fatalf("expected cached_frame_count to count every visit including out-of-bounds ones, got %d", got)
	}
}
