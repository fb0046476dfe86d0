package frame

import "testing"

// Canvas dimensions and each channel's baseline must follow spec §4.1:
// height = 200*channels + 20*(channels-1), baseline Y = row's vertical
// midpoint. This exercises 3 channels, where a per-row increment bug
// (advancing by the cumulative padding instead of the fixed 20px gap)
// would only show up at 3+ channels.
func TestRenderWaveformImage_MultiChannelBaselines(t *testing.T) {
	f := NewAudioFrame(1, 4, 3)
	for c := range f.Audio.Channels {
		f.Audio.Channels[c] = []float64{0, 0, 0, 0}
	}

	canvas, overRange := f.renderWaveformImage()
	if overRange {
		t.Fatalf("expected no over-range samples")
	}

	wantWidth, wantHeight := 4, 200*3+20*2
	if got := canvas.Bounds().Dx(); got != wantWidth {
		t.Fatalf("canvas width: got %d, want %d", got, wantWidth)
	}
	if got := canvas.Bounds().Dy(); got != wantHeight {
		t.Fatalf("canvas height: got %d, want %d", got, wantHeight)
	}

	wantBaselines := []int{100, 320, 540}
	for i, y := range wantBaselines {
		if got := canvas.RGBAAt(0, y); got != waveformLine {
			t.Fatalf("channel %d baseline at y=%d: got %v, want the waveform line color drawn at the silent-sample point", i, y, got)
		}
	}
}

func TestRenderWaveformImage_NoSamples(t *testing.T) {
	f := NewAudioFrame(1, 0, 2)

	canvas, overRange := f.renderWaveformImage()
	if overRange {
		t.Fatalf("expected no over-range samples")
	}
	if got := canvas.Bounds().Dx(); got != 720 {
		t.Fatalf("canvas width: got %d, want 720", got)
	}
	if got := canvas.Bounds().Dy(); got != 480 {
		t.Fatalf("canvas height: got %d, want 480", got)
	}
}

func TestRenderWaveformImage_OverRangeDetected(t *testing.T) {
	f := NewAudioFrame(1, 2, 1)
	f.Audio.Channels[0] = []float64{1.5, 0}

	_, overRange := f.renderWaveformImage()
	if !overRange {
		t.Fatalf("expected over-range sample to be detected")
	}
}
