package preroll

import (
	"github.com/openshot-go/prerollcache/internal/contracts"
	"github.com/openshot-go/prerollcache/internal/metrics"
)

// Seek sets requested_display_frame = n. Does not block and performs no
// housekeeping; use SeekPreroll when a discontiguous jump needs cache
// invalidation and a fresh pre-roll.
func (w *Worker) Seek(n int64) {
	if n < 1 {
		n = 1
	}
	w.mu.Lock()
	w.st.requestedDisplayFrame = n
	w.mu.Unlock()
}

// SeekPreroll performs the same write as Seek, plus the pre-pass
// housekeeping spec describes for a user-initiated jump:
//
//  1. previous_frame = n - sign(last_speed), clamped to >= 1.
//  2. If the cache does not contain previous_frame, a discontiguous jump is
//     assumed and the reader-as-timeline's entire cache is cleared, via the
//     CacheClearable capability if the reader has it.
//  3. If startPreroll is true and n is not yet cached, cached_frame_count
//     resets to 0 (so isReady goes false until the new window fills) and,
//     if currently paused, should_pause_cache clears.
//
// The requested_display_frame write and the cached_frame_count reset share
// one critical section, so a worker pass after SeekPreroll returns always
// observes both together.
func (w *Worker) SeekPreroll(n int64, startPreroll bool) {
	if n < 1 {
		n = 1
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	sign := 0
	switch {
	case w.st.lastSpeed > 0:
		sign = 1
	case w.st.lastSpeed < 0:
		sign = -1
	}
	previousFrame := n - int64(sign)
	if previousFrame < 1 {
		previousFrame = 1
	}

	cache := w.reader.GetCache()
	if cache == nil || !cache.Contains(previousFrame) {
		if clearable, ok := w.reader.(contracts.CacheClearable); ok {
			clearable.ClearAllCache()
			metrics.CacheClearsTotal.Inc()
		}
	}

	if startPreroll && (cache == nil || !cache.Contains(n)) {
		w.st.cachedFrameCount = 0
		metrics.PrerollResetsTotal.WithLabelValues(metrics.ResetReasonSeek).Inc()
		if w.st.speed == 0 {
			w.clearPauseLatch()
		}
	}

	w.st.requestedDisplayFrame = n
}
