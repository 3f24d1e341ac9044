// Package texture loads the images bound to render objects: files on disk
// (PNG, JPEG, BMP, TGA) and a few generated builtins.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// ErrUnsupportedFormat is returned for image references with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Load resolves an image reference: a builtin name (see BuiltinChecker) or
// a file path, relative paths being taken from dir.
func Load(ref, dir string) (*image.RGBA, error) {
	if strings.HasPrefix(ref, "builtin:") {
		img, ok := builtin(ref)
		if !ok {
			return nil, fmt.Errorf("texture %q: unknown builtin", ref)
		}
		return img, nil
	}

	path := ref
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, ref)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tga":
	default:
		return nil, fmt.Errorf("texture %q: %w", ref, ErrUnsupportedFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", ref, err)
	}
	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", ref, err)
	}
	return img, nil
}

// Decode decodes image bytes into RGBA. TGA has no magic number, so the
// file extension picks the TGA decoder; everything else is sniffed.
func Decode(data []byte, ext string) (*image.RGBA, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as *image.RGBA with its origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}
