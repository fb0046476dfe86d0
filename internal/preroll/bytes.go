package preroll

import "math"

// GetBytes estimates the resident footprint of one frame at the given
// dimensions: width*height*4 bytes of image plus an approximation of the
// audio footprint, sample_rate*channels/fps * sizeof(float32). The
// sample_rate/fps approximation (rather than the frame's actual sample
// count) is preserved verbatim for parity with the source this worker was
// distilled from; it is accurate at integer fps and loses precision
// otherwise. A non-positive fps yields an audio term of 0 rather than
// dividing by zero.
func GetBytes(width, height, sampleRate, channels int, fps float64) int64 {
	imageBytes := int64(width) * int64(height) * 4
	if fps <= 0 {
		return imageBytes
	}
	audioBytes := int64(math.Round(float64(sampleRate*channels) / fps * 4))
	return imageBytes + audioBytes
}
