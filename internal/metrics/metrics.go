// Package metrics publishes Prometheus counters and gauges describing the
// pre-roll worker's behavior: how many frames it requests, how many were
// already resident, and how often it resets or clears the cache. Grounded
// in the promauto style used elsewhere in this project's lineage.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "prerollcache"

var (
	// FramesRequestedTotal counts calls the worker makes to
	// Reader.GetFrame, labeled by direction (forward/reverse).
	FramesRequestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_requested_total",
			Help:      "Total number of frames requested from the reader by the pre-roll worker",
		},
		[]string{"direction"},
	)

	// FramesAlreadyCachedTotal counts window visits that found the frame
	// already resident.
	FramesAlreadyCachedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_already_cached_total",
			Help:      "Total number of window visits that found the frame already resident",
		},
	)

	// PrerollResetsTotal counts every reset of cached_frame_count back to
	// zero, labeled by the reason.
	PrerollResetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preroll_resets_total",
			Help:      "Total number of times cached_frame_count was reset to zero",
		},
		[]string{"reason"},
	)

	// CacheClearsTotal counts invocations of the reader's ClearAllCache.
	CacheClearsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_clears_total",
			Help:      "Total number of times the worker invoked ClearAllCache",
		},
	)

	// WindowSize reports the current max_frames_ahead value.
	WindowSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "window_size_frames",
			Help:      "Current size of the pre-roll window, in frames",
		},
	)

	// CachedFrameCount reports the current cached_frame_count work
	// counter (the isReady gate).
	CachedFrameCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cached_frame_count",
			Help:      "Current value of the pre-roll work counter gating isReady",
		},
	)

	// ReaderErrorsTotal counts propagated (non-out-of-bounds) reader
	// errors the worker catches and logs.
	ReaderErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reader_errors_total",
			Help:      "Total number of non-out-of-bounds reader errors caught by the worker",
		},
	)
)

// Reset reason label values.
const (
	ResetReasonEmptyCache = "empty_cache"
	ResetReasonThreshold  = "threshold"
	ResetReasonSeek       = "seek"
)

// Direction label values.
const (
	DirectionForward = "forward"
	DirectionReverse = "reverse"
)
