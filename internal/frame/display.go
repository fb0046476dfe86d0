package frame

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/openshot-go/prerollcache/internal/logger"
	"github.com/openshot-go/prerollcache/internal/renderer"
)

// waveformResizeFactor is the fixed scale-down applied when DisplayWaveform
// is asked to resize its canvas.
const waveformResizeFactor = 0.6

var (
	waveformBackground = color.RGBA{A: 255}
	waveformLine       = color.RGBA{G: 0x70, B: 0xff, A: 255}
	waveformLabel      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Display renders the frame's image into r, primarily used for debugging.
func (f *Frame) Display(r *renderer.Renderer) error {
	if f.Image == nil || f.Image.img == nil {
		return fmt.Errorf("frame: no image to display for frame %d", f.Number)
	}
	bounds := f.Image.img.Bounds()
	if bounds.Dx() <= 1 || bounds.Dy() <= 1 {
		return nil
	}

	r.ClearCanvasArea()
	r.RenderImage(f.Image.img, 0, 0)
	r.Show()
	return nil
}

// DisplayWaveform renders the frame's audio buffer as a waveform into r.
// Canvas width equals the number of samples; height is 200*channels +
// 20*(channels-1). Each channel row is baselined at its vertical midpoint;
// a vertical line is drawn from the baseline to the sample's scaled value
// when nonzero, otherwise a single point is plotted at the baseline. When
// resize is true the canvas is scaled to 60% on both axes via
// disintegration/imaging. Samples whose magnitude exceeds 1.0 are logged
// (not clipped) via log.
func (f *Frame) DisplayWaveform(r *renderer.Renderer, resize bool, log *logger.Logger) error {
	if log == nil {
		log = logger.Noop()
	}

	canvas, overRange := f.renderWaveformImage()

	if resize {
		bounds := canvas.Bounds()
		canvas = toRGBA(imaging.Resize(canvas,
			int(float64(bounds.Dx())*waveformResizeFactor),
			int(float64(bounds.Dy())*waveformResizeFactor),
			imaging.Lanczos))
	}

	r.ClearCanvasArea()
	r.RenderImage(canvas, 0, 0)
	r.Show()

	if overRange {
		log.Warn("frame %d: waveform contains samples with |value| > 1.0", f.Number)
	}
	return nil
}

// renderWaveformImage draws the waveform geometry described in
// DisplayWaveform's contract onto a plain *image.RGBA canvas, independent of
// any terminal. It reports whether any sample exceeded the +/-1.0 range.
func (f *Frame) renderWaveformImage() (*image.RGBA, bool) {
	numSamples := f.Audio.NumSamples()
	numChannels := f.Audio.NumChannels()

	if numSamples == 0 {
		canvas := image.NewRGBA(image.Rect(0, 0, 720, 480))
		draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: waveformBackground}, image.Point{}, draw.Src)
		drawLabel(canvas, 265, 240, "No Audio Samples Found")
		return canvas, false
	}

	width := numSamples
	heightPadding := 20 * (numChannels - 1)
	height := 200*numChannels + heightPadding
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: waveformBackground}, image.Point{}, draw.Src)

	overRange := false
	y := 100
	for channel := 0; channel < numChannels; channel++ {
		samples := f.Audio.Channels[channel]
		for x, s := range samples {
			if s > 1.0 || s < -1.0 {
				overRange = true
			}
			if s != 0.0 {
				drawVerticalLine(canvas, x, y, y-int(s*100), waveformLine)
			} else {
				canvas.SetRGBA(x, y, waveformLine)
			}
		}
		drawLabel(canvas, 5, y-5, fmt.Sprintf("Channel %d", channel))
		y += 200 + 20
	}

	return canvas, overRange
}

func drawVerticalLine(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	bounds := img.Bounds()
	for y := y0; y <= y1; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y || x < bounds.Min.X || x >= bounds.Max.X {
			continue
		}
		img.SetRGBA(x, y, c)
	}
}

// drawLabel draws a simple blocky label; precise glyph rendering is not the
// point of a debug viewer, so each character is a small filled rectangle
// rather than a real font.
func drawLabel(img *image.RGBA, x, y int, text string) {
	bounds := img.Bounds()
	for i := range text {
		cx := x + i*6
		for dy := 0; dy < 8; dy++ {
			for dx := 0; dx < 5; dx++ {
				px, py := cx+dx, y+dy
				if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
					continue
				}
				img.SetRGBA(px, py, waveformLabel)
			}
		}
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	return out
}
