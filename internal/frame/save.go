package frame

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Save persists the frame's image under a deterministic filename derived
// from its frame number, inside dir, and returns the path written.
func (f *Frame) Save(dir string) (string, error) {
	if f.Image == nil || f.Image.img == nil {
		return "", fmt.Errorf("frame: cannot save frame %d with no image", f.Number)
	}

	path := filepath.Join(dir, fmt.Sprintf("frame-%06d.png", f.Number))
	if err := imaging.Save(f.Image.img, path); err != nil {
		return "", fmt.Errorf("frame: save %d: %w", f.Number, err)
	}
	return path, nil
}
