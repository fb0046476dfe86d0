package frame

import (
	"image/color"
	"testing"
)

func TestClone_IsDeepCopy(t *testing.T) {
	f := NewBlankFrame()
	f.Number = 42
	g := f.Clone()

	g.Image.img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	g.Audio.Channels[0][0] = 0.5
	g.Number = 99

	if f.Number != 42 {
		t.Fatalf("mutating clone's Number affected original: got %d, want 42", f.Number)
	}
	if got := f.Image.img.RGBAAt(0, 0); got != DefaultBlankImageColor {
		t.Fatalf("mutating clone's image affected original: got %v, want %v", got, DefaultBlankImageColor)
	}
	if f.Audio.Channels[0][0] != 0.0 {
		t.Fatalf("mutating clone's audio affected original: got %v, want 0", f.Audio.Channels[0][0])
	}
}

func TestCopyFrom_SelfAssignmentSafe(t *testing.T) {
	f := NewBlankFrame()
	f.CopyFrom(f)
	if f.Image == nil || f.Image.img == nil {
		t.Fatalf("self-assignment corrupted the frame's image")
	}
	if f.Audio == nil {
		t.Fatalf("self-assignment corrupted the frame's audio")
	}
}

func TestAddAudio_MixAdds(t *testing.T) {
	f := NewAudioFrame(1, 4, 2)
	f.Audio.Channels[0] = []float64{0.1, 0.2, 0.3, 0.4}

	source := []float64{1, 1, 1}
	if err := f.AddAudio(0, 1, source, 3, 0.5); err != nil {
		t.Fatalf("AddAudio: %v", err)
	}

	want := []float64{0.1, 0.7, 0.8, 0.9}
	for i, w := range want {
		if diff := f.Audio.Channels[0][i] - w; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("channel 0 sample %d: got %v, want %v", i, f.Audio.Channels[0][i], w)
		}
	}
	// Other channel untouched.
	for i, v := range f.Audio.Channels[1] {
		if v != 0 {
			t.Fatalf("channel 1 sample %d unexpectedly modified: %v", i, v)
		}
	}
}

func TestAddAudio_ChannelOutOfRange(t *testing.T) {
	f := NewAudioFrame(1, 4, 2)
	if err := f.AddAudio(5, 0, []float64{1}, 1, 1.0); err != ErrChannelOutOfRange {
		t.Fatalf("got %v, want ErrChannelOutOfRange", err)
	}
}

func TestAddAudio_SampleWindowOutOfRange(t *testing.T) {
	f := NewAudioFrame(1, 4, 2)
	if err := f.AddAudio(0, 2, []float64{1, 1, 1}, 3, 1.0); err != ErrSampleWindowOutOfRange {
		t.Fatalf("got %v, want ErrSampleWindowOutOfRange", err)
	}
}

func TestNewBlankFrame_Defaults(t *testing.T) {
	f := NewBlankFrame()
	if f.Width() != DefaultWidth || f.Height() != DefaultHeight {
		t.Fatalf("got %dx%d, want %dx%d", f.Width(), f.Height(), DefaultWidth, DefaultHeight)
	}
	if got := f.Image.img.RGBAAt(0, 0); got != DefaultBlankImageColor {
		t.Fatalf("blank frame fill: got %v, want %v (red)", got, DefaultBlankImageColor)
	}
	if f.Audio.NumChannels() != DefaultChannels || f.Audio.NumSamples() != DefaultSamples {
		t.Fatalf("got %dx%d audio, want %dx%d", f.Audio.NumChannels(), f.Audio.NumSamples(), DefaultChannels, DefaultSamples)
	}
}

func TestNewAudioFrame_ImplicitImageIsWhite(t *testing.T) {
	f := NewAudioFrame(1, 10, 1)
	if got := f.Image.img.RGBAAt(0, 0); got != DefaultAudioOnlyImageColor {
		t.Fatalf("audio-only frame's implicit image: got %v, want %v (white, preserved for parity)", got, DefaultAudioOnlyImageColor)
	}
}

func TestGetPixelsRow_OutOfRange(t *testing.T) {
	f := NewBlankFrame()
	if _, err := f.GetPixelsRow(-1); err == nil {
		t.Fatalf("expected error for negative row")
	}
	if _, err := f.GetPixelsRow(f.Height()); err == nil {
		t.Fatalf("expected error for row == height")
	}
}
