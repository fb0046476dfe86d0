// Package contracts defines the external collaborators the pre-roll worker
// depends on: the reader (frame synthesizer), its cache store, and the
// process-wide settings singleton. These are interface-only — the worker
// never implements them, only consumes them. See internal/mockreader for
// test doubles and internal/settings for the production Settings
// implementation.
package contracts

import (
	"errors"

	"github.com/openshot-go/prerollcache/internal/frame"
)

// ErrOutOfBoundsFrame is returned by Reader.GetFrame when the requested
// frame number is outside the timeline's valid range. It is expected and
// routinely hit at timeline edges; the pre-roll worker swallows it.
var ErrOutOfBoundsFrame = errors.New("contracts: frame number out of bounds")

// FrameRate is a rational frames-per-second value. It provides ToFloat
// (a float64) only; there is no separate ToDouble method.
type FrameRate struct {
	Num int
	Den int
}

// ToFloat returns the frame rate as a floating point value. A zero or
// negative denominator yields 0, signaling "unknown" to callers.
func (r FrameRate) ToFloat() float64 {
	if r.Den <= 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// ReaderInfo carries the reader's stream parameters.
type ReaderInfo struct {
	Width      int
	Height     int
	FPS        FrameRate
	SampleRate int
	Channels   int
}

// Reader is the upstream frame synthesizer. Calling GetFrame has the side
// effect of inserting the produced frame into the reader's cache store.
type Reader interface {
	Info() ReaderInfo
	GetFrame(number int64) (*frame.Frame, error)
	GetCache() CacheStore
}

// PreviewSized is an optional capability a Reader may additionally
// implement when it is timeline-typed: the preview render size, which may
// be smaller than Info().Width/Height and therefore shrinks the per-frame
// byte estimate used while paused. Query it with a type assertion —
// never downcast.
type PreviewSized interface {
	PreviewSize() (width, height int)
}

// CacheClearable is an optional capability a Reader may additionally
// implement when it is timeline-typed: the ability to discard its entire
// cache, used when a seek jumps to a discontiguous frame.
type CacheClearable interface {
	ClearAllCache()
}

// CacheStore is the bounded, keyed container the reader deposits produced
// frames into. The worker consumes only this contract — eviction policy and
// byte accounting are the store's own business.
type CacheStore interface {
	Contains(number int64) bool
	Count() int
	GetMaxBytes() int64
}

// Settings exposes the process-wide pre-roll tunables.
type Settings interface {
	MinPrerollFrames() int
	MaxPrerollFrames() int
	PercentAhead() float64
	MaxFrames() int
	PlaybackCachingEnabled() bool
}
