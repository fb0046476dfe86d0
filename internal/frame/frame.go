// Package frame implements the Frame value type: one decoded image plane
// plus one multi-channel audio buffer, deep-copyable and frame-numbered.
// It is the unit of data the pre-roll worker forces into the cache.
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// PixelStorageType describes how raw pixel bytes passed to
// NewImageFrameFromPixels / AddImage are laid out, mirroring the storage
// type argument of the original Magick::Image(width, height, map, type,
// pixels) constructor.
type PixelStorageType int

const (
	// StorageUint8 packs each channel sample into a single byte.
	StorageUint8 PixelStorageType = iota
	// StorageFloat32 packs each channel sample into a float32, 0.0-1.0.
	StorageFloat32
)

var (
	// ErrChannelOutOfRange is returned by AddAudio when destChannel is
	// outside [0, NumChannels).
	ErrChannelOutOfRange = errors.New("frame: destination channel out of range")
	// ErrSampleWindowOutOfRange is returned by AddAudio when
	// destStartSample+numSamples exceeds the audio buffer length.
	ErrSampleWindowOutOfRange = errors.New("frame: sample window out of range")
	// ErrUnsupportedColorMap is returned by the pixel-byte constructors for
	// a color map this package does not know how to unpack, and for any
	// storage type other than StorageUint8.
	ErrUnsupportedColorMap = errors.New("frame: unsupported color map")
)

const (
	// DefaultWidth/DefaultHeight are the dimensions of a blank frame's
	// image, grounded in the source's 300x200 default.
	DefaultWidth  = 300
	DefaultHeight = 200

	// DefaultChannels/DefaultSamples are the dimensions of a frame's
	// silence-initialized audio buffer by default.
	DefaultChannels = 2
	DefaultSamples  = 1600

	// DefaultSampleRate is assumed for a frame's audio buffer when no
	// reader-provided sample rate is known (used only for documentation /
	// waveform timing, never for resampling).
	DefaultSampleRate = 48000
)

// DefaultBlankImageColor is the fill color of a frame constructed with no
// image argument at all (NewBlankFrame).
var DefaultBlankImageColor = color.RGBA{R: 255, A: 255}

// DefaultAudioOnlyImageColor is the fill color of the implicit image
// created by NewAudioFrame. The original C++ source uses a different
// default here than the blank-frame constructor (white, not red) — this is
// preserved for parity, not "fixed".
var DefaultAudioOnlyImageColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// ImagePlane is the frame's single decoded image, a thin wrapper over the
// standard library's image.RGBA.
type ImagePlane struct {
	img *image.RGBA
}

// AudioBuffer is the frame's multi-channel floating-point sample buffer.
// Channels[c] always has length NumSamples() for every c in [0, NumChannels()).
type AudioBuffer struct {
	Channels [][]float64
}

// NumChannels returns the number of audio channels.
func (a *AudioBuffer) NumChannels() int {
	if a == nil {
		return 0
	}
	return len(a.Channels)
}

// NumSamples returns the number of samples per channel.
func (a *AudioBuffer) NumSamples() int {
	if a == nil || len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

func newSilentAudio(channels, samples int) *AudioBuffer {
	if channels < 0 {
		channels = 0
	}
	if samples < 0 {
		samples = 0
	}
	buf := &AudioBuffer{Channels: make([][]float64, channels)}
	for c := range buf.Channels {
		buf.Channels[c] = make([]float64, samples)
	}
	return buf
}

func (a *AudioBuffer) clone() *AudioBuffer {
	if a == nil {
		return nil
	}
	out := &AudioBuffer{Channels: make([][]float64, len(a.Channels))}
	for c, samples := range a.Channels {
		out.Channels[c] = append([]float64(nil), samples...)
	}
	return out
}

func newSolidImage(width, height int, fill color.RGBA) *ImagePlane {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	return &ImagePlane{img: img}
}

func (p *ImagePlane) clone() *ImagePlane {
	if p == nil || p.img == nil {
		return nil
	}
	bounds := p.img.Bounds()
	cp := image.NewRGBA(bounds)
	copy(cp.Pix, p.img.Pix)
	return &ImagePlane{img: cp}
}

// Frame is the unit of cached data: one image plane plus one multi-channel
// audio buffer, both always allocated across the Frame's lifetime.
type Frame struct {
	Number int64
	Image  *ImagePlane
	Audio  *AudioBuffer
}

// NewBlankFrame returns a blank frame: 300x200 solid red image, 2 channels
// x 1600 samples of silence.
func NewBlankFrame() *Frame {
	return &Frame{
		Number: 1,
		Image:  newSolidImage(DefaultWidth, DefaultHeight, DefaultBlankImageColor),
		Audio:  newSilentAudio(DefaultChannels, DefaultSamples),
	}
}

// NewImageFrame returns a frame with an image of the given size and solid
// fill color, and silent 2x1600 audio.
func NewImageFrame(number int64, width, height int, fill color.RGBA) *Frame {
	return &Frame{
		Number: number,
		Image:  newSolidImage(width, height, fill),
		Audio:  newSilentAudio(DefaultChannels, DefaultSamples),
	}
}

// NewImageFrameFromPixels returns a frame whose image is built from raw
// pixel bytes, using colorMap ("RGB", "RGBA", or "GRAY") to interpret them,
// and silent 2x1600 audio. Only StorageUint8 is accepted; any other storage
// type returns ErrUnsupportedColorMap.
func NewImageFrameFromPixels(number int64, width, height int, colorMap string, storage PixelStorageType, pixels []byte) (*Frame, error) {
	img, err := decodePixels(width, height, colorMap, storage, pixels)
	if err != nil {
		return nil, err
	}
	return &Frame{
		Number: number,
		Image:  img,
		Audio:  newSilentAudio(DefaultChannels, DefaultSamples),
	}, nil
}

// NewAudioFrame returns a frame with the given audio dimensions and an
// implicit 300x200 white image.
func NewAudioFrame(number int64, samples, channels int) *Frame {
	return &Frame{
		Number: number,
		Image:  newSolidImage(DefaultWidth, DefaultHeight, DefaultAudioOnlyImageColor),
		Audio:  newSilentAudio(channels, samples),
	}
}

// NewFrame returns a frame with both an explicitly-sized image and
// explicitly-sized audio.
func NewFrame(number int64, width, height int, fill color.RGBA, samples, channels int) *Frame {
	return &Frame{
		Number: number,
		Image:  newSolidImage(width, height, fill),
		Audio:  newSilentAudio(channels, samples),
	}
}

func decodePixels(width, height int, colorMap string, storage PixelStorageType, pixels []byte) (*ImagePlane, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame: invalid dimensions %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	switch colorMap {
	case "RGBA":
		if storage != StorageUint8 {
			return nil, ErrUnsupportedColorMap
		}
		if len(pixels) < width*height*4 {
			return nil, fmt.Errorf("frame: pixel buffer too small for RGBA %dx%d", width, height)
		}
		copy(img.Pix, pixels[:width*height*4])
	case "RGB":
		if storage != StorageUint8 {
			return nil, ErrUnsupportedColorMap
		}
		if len(pixels) < width*height*3 {
			return nil, fmt.Errorf("frame: pixel buffer too small for RGB %dx%d", width, height)
		}
		for i, j := 0, 0; j < len(img.Pix); i, j = i+3, j+4 {
			img.Pix[j] = pixels[i]
			img.Pix[j+1] = pixels[i+1]
			img.Pix[j+2] = pixels[i+2]
			img.Pix[j+3] = 255
		}
	case "GRAY":
		if storage != StorageUint8 {
			return nil, ErrUnsupportedColorMap
		}
		if len(pixels) < width*height {
			return nil, fmt.Errorf("frame: pixel buffer too small for GRAY %dx%d", width, height)
		}
		for i, j := 0, 0; j < len(img.Pix); i, j = i+1, j+4 {
			v := pixels[i]
			img.Pix[j], img.Pix[j+1], img.Pix[j+2], img.Pix[j+3] = v, v, v, 255
		}
	default:
		return nil, ErrUnsupportedColorMap
	}

	return &ImagePlane{img: img}, nil
}

// Clone returns a deep copy of f: mutating the clone's Image or Audio never
// affects f.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	return &Frame{
		Number: f.Number,
		Image:  f.Image.clone(),
		Audio:  f.Audio.clone(),
	}
}

// CopyFrom replaces f's contents with a deep copy of other. It is
// self-assignment-safe: copying a Frame onto itself is a no-op.
func (f *Frame) CopyFrom(other *Frame) {
	if f == other {
		return
	}
	f.Number = other.Number
	f.Image = other.Image.clone()
	f.Audio = other.Audio.clone()
}

// AddImage replaces f's image wholesale.
func (f *Frame) AddImage(width, height int, colorMap string, storage PixelStorageType, pixels []byte) error {
	img, err := decodePixels(width, height, colorMap, storage, pixels)
	if err != nil {
		return err
	}
	f.Image = img
	return nil
}

// AddAudio mix-adds gain*source[i] into Audio.Channels[destChannel][destStartSample+i]
// for i in [0, numSamples). There is no default gain — callers must always
// pass one explicitly.
func (f *Frame) AddAudio(destChannel, destStartSample int, source []float64, numSamples int, gain float64) error {
	if f.Audio == nil || destChannel < 0 || destChannel >= f.Audio.NumChannels() {
		return ErrChannelOutOfRange
	}
	if destStartSample < 0 || numSamples < 0 || destStartSample+numSamples > f.Audio.NumSamples() {
		return ErrSampleWindowOutOfRange
	}
	if numSamples > len(source) {
		return ErrSampleWindowOutOfRange
	}

	dest := f.Audio.Channels[destChannel]
	for i := 0; i < numSamples; i++ {
		dest[destStartSample+i] += gain * source[i]
	}
	return nil
}

// GetPixels returns a read-only view of the full image, row-major.
func (f *Frame) GetPixels() []color.RGBA {
	if f.Image == nil || f.Image.img == nil {
		return nil
	}
	bounds := f.Image.img.Bounds()
	out := make([]color.RGBA, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out = append(out, f.Image.img.RGBAAt(x, y))
		}
	}
	return out
}

// GetPixelsRow returns a read-only view of a single image row.
func (f *Frame) GetPixelsRow(row int) ([]color.RGBA, error) {
	if f.Image == nil || f.Image.img == nil {
		return nil, errors.New("frame: no image")
	}
	bounds := f.Image.img.Bounds()
	if row < 0 || row >= bounds.Dy() {
		return nil, fmt.Errorf("frame: row %d out of range [0,%d)", row, bounds.Dy())
	}
	out := make([]color.RGBA, 0, bounds.Dx())
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		out = append(out, f.Image.img.RGBAAt(x, bounds.Min.Y+row))
	}
	return out, nil
}

// Width returns the image width.
func (f *Frame) Width() int {
	if f.Image == nil || f.Image.img == nil {
		return 0
	}
	return f.Image.img.Bounds().Dx()
}

// Height returns the image height.
func (f *Frame) Height() int {
	if f.Image == nil || f.Image.img == nil {
		return 0
	}
	return f.Image.img.Bounds().Dy()
}

// RGBA exposes the underlying image buffer for renderer consumption.
func (f *Frame) RGBA() *image.RGBA {
	if f.Image == nil {
		return nil
	}
	return f.Image.img
}

// GetBytes estimates this frame's resident memory footprint:
// width*height*4 bytes of image plus channels*samples*4 bytes of audio.
// Unlike preroll.GetBytes, the audio term uses the buffer's actual sample
// count. The pre-roll worker does not call it; it sizes frames with
// preroll.GetBytes only.
func (f *Frame) GetBytes() int64 {
	imageBytes := int64(f.Width()) * int64(f.Height()) * 4
	audioBytes := int64(0)
	if f.Audio != nil {
		audioBytes = int64(f.Audio.NumChannels()) * int64(f.Audio.NumSamples()) * 4
	}
	return imageBytes + audioBytes
}
