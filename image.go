package starboard

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ErrMissingImage reports that a planet's reference image file does not
// exist. Missing images are non-fatal: the panel degrades to informational
// text and marker toggles that need no reference rectangle keep working.
var ErrMissingImage = errors.New("reference image not found")

// ReferenceImageName returns the predictable file name for a planet image
// number, e.g. "planet-007.png" for 7.
func ReferenceImageName(number int) string {
	return fmt.Sprintf("planet-%03d.png", number)
}

// ReferenceImagePath joins the image directory and the predictable name.
func ReferenceImagePath(dir string, number int) string {
	return filepath.Join(dir, ReferenceImageName(number))
}

// LoadReferenceImage loads the planet image for the given number from dir.
// A nonexistent file returns an error wrapping ErrMissingImage.
func LoadReferenceImage(dir string, number int) (*ebiten.Image, error) {
	path := ReferenceImagePath(dir, number)
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingImage, path)
		}
		return nil, fmt.Errorf("load reference image %s: %w", path, err)
	}
	return img, nil
}

// FitRect scales an image of size (imgW, imgH) to fit inside bounds while
// preserving aspect ratio, centered. The result is the rendered bounding box
// every normalized coordinate is relative to.
func FitRect(bounds Rect, imgW, imgH int) Rect {
	if imgW <= 0 || imgH <= 0 || bounds.Width <= 0 || bounds.Height <= 0 {
		return Rect{}
	}
	scale := bounds.Width / float64(imgW)
	if s := bounds.Height / float64(imgH); s < scale {
		scale = s
	}
	w := float64(imgW) * scale
	h := float64(imgH) * scale
	return Rect{
		X:      bounds.X + (bounds.Width-w)/2,
		Y:      bounds.Y + (bounds.Height-h)/2,
		Width:  w,
		Height: h,
	}
}
