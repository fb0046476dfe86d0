package preroll

import (
	"context"
	"errors"
	"time"

	"github.com/openshot-go/prerollcache/internal/contracts"
	"github.com/openshot-go/prerollcache/internal/metrics"
)

// Run is the worker goroutine's entry point. It owns the main loop and
// returns when ctx is cancelled (the external thread-shutdown flag) or
// Stop() clears is_playing, whichever happens first.
func (w *Worker) Run(ctx context.Context) {
	for w.IsPlaying() && !w.isCancelled(ctx) {
		w.pass(ctx)
	}
}

// isCancelled centralizes the external should-exit flag check referenced
// throughout the main loop.
func (w *Worker) isCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// pass runs one iteration of the worker's main loop, steps 1-10.
func (w *Worker) pass(ctx context.Context) {
	// 1. Snapshot settings.
	minFramesAhead := w.settings.MinPrerollFrames()
	maxFramesAhead := w.settings.MaxPrerollFrames()
	enableCaching := w.settings.PlaybackCachingEnabled()
	percentAhead := w.settings.PercentAhead()
	maxFramesLimit := w.settings.MaxFrames()

	w.mu.Lock()
	w.st.minFramesAhead = minFramesAhead
	w.st.maxFramesAhead = maxFramesAhead
	w.mu.Unlock()

	info := w.reader.Info()

	// 2. Compute frame duration, in microseconds, floating point.
	fps := info.FPS.ToFloat()
	if fps <= 0 {
		fps = 30.0
		w.log.Once("preroll-nonpositive-fps", "preroll: reader reports non-positive fps, defaulting to 30.0")
	}
	frameDuration := 1e6 / fps

	// 3. Snapshot current_speed.
	currentSpeed := w.Speed()

	cache := w.reader.GetCache()

	// 4. Cache-empty detect: an external agent purged the cache.
	w.mu.Lock()
	if cache == nil || cache.Count() == 0 {
		w.clearPauseLatch()
		w.st.cachedFrameCount = 0
		w.mu.Unlock()
		metrics.PrerollResetsTotal.WithLabelValues(metrics.ResetReasonEmptyCache).Inc()
	} else {
		w.mu.Unlock()
	}

	// 5. Determine increment: initially current_speed itself.
	increment := currentSpeed

	w.mu.Lock()
	shouldPauseCache := w.st.shouldPauseCache
	lastSpeed := w.st.lastSpeed
	w.mu.Unlock()

	// 6. Decide pass mode.
	switch {
	case (currentSpeed == 0 && shouldPauseCache) || !enableCaching:
		// Skip mode: sync and sleep, no fetches this pass.
		w.syncDisplayFrame()
		sleepHalfFrame(ctx, frameDuration)
		return

	case currentSpeed == 0:
		// Paused-but-filling mode.
		w.mu.Lock()
		w.st.shouldPauseCache = true
		w.mu.Unlock()

		width, height := info.Width, info.Height
		if preview, ok := w.reader.(contracts.PreviewSized); ok {
			if pw, ph := preview.PreviewSize(); pw > 0 && ph > 0 {
				width, height = pw, ph
			}
		}
		bytesPerFrame := GetBytes(width, height, info.SampleRate, info.Channels, fps)

		if cache != nil && bytesPerFrame > 0 {
			if maxBytes := cache.GetMaxBytes(); maxBytes > 0 {
				computed := int64(float64(maxBytes) / float64(bytesPerFrame) * percentAhead)
				if computed > int64(maxFramesLimit) {
					computed = int64(maxFramesLimit)
				}
				if computed > AbsoluteMaxFramesAhead {
					computed = AbsoluteMaxFramesAhead
				}
				if computed > 0 {
					maxFramesAhead = int(computed)
				}
			}
		}

		// Fill in the direction last moved; cold start (last_speed == 0)
		// defaults forward rather than falling through to reverse.
		if lastSpeed >= 0 {
			increment = 1
		} else {
			increment = -1
		}

	default:
		// Playing mode.
		w.mu.Lock()
		w.clearPauseLatch()
		w.mu.Unlock()
		increment = currentSpeed
	}

	w.mu.Lock()
	w.st.maxFramesAhead = maxFramesAhead
	w.mu.Unlock()
	metrics.WindowSize.Set(float64(maxFramesAhead))

	// 7. Compute window.
	startingFrame := w.CurrentDisplayFrame()
	var endingFrame int64
	if lastSpeed >= 0 {
		endingFrame = startingFrame + int64(maxFramesAhead)
	} else {
		endingFrame = startingFrame - int64(maxFramesAhead)
	}
	if startingFrame < 1 {
		startingFrame = 1
	}
	if endingFrame < 1 {
		endingFrame = 1
	}

	windowLow, windowHigh := startingFrame, endingFrame
	if windowLow > windowHigh {
		windowLow, windowHigh = windowHigh, windowLow
	}

	// 8. Iterate the window.
	var uncachedFrameCount int64
	step := int64(increment)
	if step == 0 {
		step = 1
	}

	for cacheFrame := startingFrame; (step > 0 && cacheFrame <= endingFrame) || (step < 0 && cacheFrame >= endingFrame); cacheFrame += step {
		if cacheFrame < 1 {
			break
		}

		w.mu.Lock()
		w.st.cachedFrameCount++
		w.mu.Unlock()

		if cache == nil || !cache.Contains(cacheFrame) {
			direction := metrics.DirectionForward
			if step < 0 {
				direction = metrics.DirectionReverse
			}
			metrics.FramesRequestedTotal.WithLabelValues(direction).Inc()

			f, err := w.reader.GetFrame(cacheFrame)
			if err != nil {
				if !errors.Is(err, contracts.ErrOutOfBoundsFrame) {
					w.log.Warn("preroll: reader.GetFrame(%d): %v", cacheFrame, err)
					metrics.ReaderErrorsTotal.Inc()
					break
				}
			} else {
				w.mu.Lock()
				w.st.lastCachedFrame = f
				w.mu.Unlock()
				uncachedFrameCount++
			}
		} else {
			metrics.FramesAlreadyCachedTotal.Inc()
		}

		// Cancellation checkpoints, evaluated after each frame.
		requested := w.RequestedDisplayFrame()
		current := w.CurrentDisplayFrame()
		if requested != current && (requested < windowLow || requested > windowHigh) {
			w.mu.Lock()
			w.clearPauseLatch()
			w.mu.Unlock()
			break
		}
		if w.Speed() != currentSpeed {
			break
		}
		if !w.IsPlaying() {
			break
		}
		if w.isCancelled(ctx) {
			break
		}
	}

	// 9. Window post-processing.
	w.mu.Lock()
	resetThreshold := currentSpeed == 1 && w.st.cachedFrameCount > int64(maxFramesAhead) && uncachedFrameCount > int64(minFramesAhead)
	if resetThreshold {
		w.st.cachedFrameCount = 0
	}
	w.st.currentDisplayFrame = w.st.requestedDisplayFrame
	if currentSpeed != 0 {
		w.st.lastSpeed = currentSpeed
	}
	cachedFrameCount := w.st.cachedFrameCount
	w.mu.Unlock()

	if resetThreshold {
		metrics.PrerollResetsTotal.WithLabelValues(metrics.ResetReasonThreshold).Inc()
	}
	metrics.CachedFrameCount.Set(float64(cachedFrameCount))

	// 10. Sleep.
	sleepHalfFrame(ctx, frameDuration)
}

// syncDisplayFrame performs skip mode's current_display_frame <-
// requested_display_frame sync.
func (w *Worker) syncDisplayFrame() {
	w.mu.Lock()
	w.st.currentDisplayFrame = w.st.requestedDisplayFrame
	w.mu.Unlock()
}

// sleepHalfFrame sleeps for frameDurationUs/2 microseconds, waking early if
// ctx is cancelled.
func sleepHalfFrame(ctx context.Context, frameDurationUs float64) {
	d := time.Duration(frameDurationUs / 2 * float64(time.Microsecond))
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
