package texture

import (
	"image"
	"image/color"
	"math"
)

// Builtin image references usable anywhere an image path is accepted.
const (
	BuiltinChecker = "builtin:checker" // diffuse checkerboard
	BuiltinBumps   = "builtin:bumps"   // tangent-space normal map of round bumps
	BuiltinWhite   = "builtin:white"   // plain white diffuse
	BuiltinFlat    = "builtin:flat"    // normal map of an unperturbed surface
)

const builtinSize = 256

func builtin(ref string) (*image.RGBA, bool) {
	switch ref {
	case BuiltinChecker:
		return Checker(builtinSize, 8, color.RGBA{R: 200, G: 120, B: 60, A: 255}, color.RGBA{R: 235, G: 220, B: 190, A: 255}), true
	case BuiltinBumps:
		return Bumps(builtinSize, 4, 2), true
	case BuiltinWhite:
		return Solid(4, color.RGBA{R: 255, G: 255, B: 255, A: 255}), true
	case BuiltinFlat:
		return Solid(4, EncodeNormal(0, 0, 1)), true
	}
	return nil, false
}

// Solid returns a size x size image of a single color.
func Solid(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// Checker returns a size x size checkerboard with cells x cells squares.
func Checker(size, cells int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	if cell == 0 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Bumps returns a tangent-space normal map of cells x cells hemispherical
// bumps. strength scales the height gradient.
func Bumps(size, cells int, strength float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := float64(size) / float64(cells)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Position within the cell, -1..1.
			u := (math.Mod(float64(x)+0.5, cell)/cell)*2 - 1
			v := (math.Mod(float64(y)+0.5, cell)/cell)*2 - 1
			nx, ny, nz := 0.0, 0.0, 1.0
			if r2 := u*u + v*v; r2 < 0.8 {
				// Height h = sqrt(1 - r2); gradient is -p/h.
				h := math.Sqrt(1 - r2)
				nx, ny = u/h*strength, v/h*strength
			}
			img.SetRGBA(x, y, EncodeNormal(nx, ny, nz))
		}
	}
	return img
}

// EncodeNormal normalizes (x, y, z) and packs it as n*0.5+0.5 in RGB.
func EncodeNormal(x, y, z float64) color.RGBA {
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		x, y, z, l = 0, 0, 1, 1
	}
	pack := func(f float64) uint8 {
		return uint8(math.Round((f/l*0.5 + 0.5) * 255))
	}
	return color.RGBA{R: pack(x), G: pack(y), B: pack(z), A: 255}
}
