// Package preroll implements the pre-roll cache worker: a single goroutine
// that keeps a bounded window of frames resident in the reader's cache
// around the current playhead, consistent with direction, speed, pause
// state, and the cache's byte budget. It is the core of this module.
package preroll

import (
	"sync"

	"github.com/openshot-go/prerollcache/internal/contracts"
	"github.com/openshot-go/prerollcache/internal/frame"
	"github.com/openshot-go/prerollcache/internal/logger"
)

// AbsoluteMaxFramesAhead defensively bounds the paused-filling window even
// if a huge byte budget and tiny frames would otherwise compute something
// absurd. Resolves spec's open question about the settings-sourced clamp
// alone not being enough.
const AbsoluteMaxFramesAhead = 100_000

// state is the cross-goroutine handoff: the UI writes speed/isPlaying/
// requestedDisplayFrame, the worker writes the rest. Guarded by one mutex,
// per DESIGN NOTES preferring a single critical section over atomics.
type state struct {
	speed                 int
	lastSpeed             int
	isPlaying             bool
	currentDisplayFrame   int64
	requestedDisplayFrame int64
	cachedFrameCount      int64
	minFramesAhead        int
	maxFramesAhead        int
	shouldPauseCache      bool
	lastCachedFrame       *frame.Frame
}

// Worker is the pre-roll cache worker. Zero value is not usable; build one
// with New.
type Worker struct {
	mu sync.Mutex
	st state

	reader   contracts.Reader
	settings contracts.Settings
	log      *logger.Logger
}

// New builds a Worker bound to reader and settings. log may be nil, in
// which case logging is a no-op.
func New(reader contracts.Reader, settings contracts.Settings, log *logger.Logger) *Worker {
	if log == nil {
		log = logger.Noop()
	}
	return &Worker{
		reader:   reader,
		settings: settings,
		log:      log,
		st: state{
			currentDisplayFrame:   1,
			requestedDisplayFrame: 1,
			minFramesAhead:        settings.MinPrerollFrames(),
			maxFramesAhead:        settings.MaxPrerollFrames(),
		},
	}
}

// Speed returns the current playback speed (0 = paused, negative = reverse).
func (w *Worker) Speed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st.speed
}

// SetSpeed is called by the UI to change playback speed.
func (w *Worker) SetSpeed(speed int) {
	w.mu.Lock()
	w.st.speed = speed
	w.mu.Unlock()
}

// IsPlaying reports whether the worker's main loop is currently active.
func (w *Worker) IsPlaying() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st.isPlaying
}

// Play starts the worker loop. Idempotent.
func (w *Worker) Play() {
	w.mu.Lock()
	w.st.isPlaying = true
	w.mu.Unlock()
}

// Stop requests the worker loop exit. The loop notices within one pass.
func (w *Worker) Stop() {
	w.mu.Lock()
	w.st.isPlaying = false
	w.mu.Unlock()
}

// CurrentDisplayFrame returns the frame the worker last synced to, worker-owned.
func (w *Worker) CurrentDisplayFrame() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st.currentDisplayFrame
}

// RequestedDisplayFrame returns the frame the UI last asked to display.
func (w *Worker) RequestedDisplayFrame() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st.requestedDisplayFrame
}

// LastSpeed returns the most recent nonzero speed observed, used to pick
// pre-roll direction while paused.
func (w *Worker) LastSpeed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st.lastSpeed
}

// CachedFrameCount returns the current work counter isReady gates on.
func (w *Worker) CachedFrameCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st.cachedFrameCount
}

// LastCachedFrame returns the most recently fetched frame, a diagnostic
// field only; it is not used for any sizing decision.
func (w *Worker) LastCachedFrame() *frame.Frame {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st.lastCachedFrame
}

// isReady reports whether enough frames have been visited in the current
// window for the UI to safely start playback.
func (w *Worker) isReady() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.st.cachedFrameCount > int64(w.st.minFramesAhead)
}

// IsReady is the exported form isReady, polled by the UI before starting
// display.
func (w *Worker) IsReady() bool {
	return w.isReady()
}

// clearPauseLatch centralizes should_pause_cache's reset, called from every
// path spec lists: seek-out-of-range, cache-empty detection, and resume.
// Caller must hold w.mu.
func (w *Worker) clearPauseLatch() {
	w.st.shouldPauseCache = false
}
