package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(kind byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = kind
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 2x2, 24 bpp, bottom-up: the first row in the file is the bottom row.
	data := tgaHeader(tgaTrueColor, 2, 2, 24, 0)
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 1, color.RGBA{R: 255, A: 255}},
		{1, 1, color.RGBA{G: 255, A: 255}},
		{0, 0, color.RGBA{B: 255, A: 255}},
		{1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeTGARLETopDown(t *testing.T) {
	// 3x1, 32 bpp, top-down: a run of two, then one raw pixel.
	data := tgaHeader(tgaTrueColorRLE, 3, 1, 32, 0x20)
	data = append(data,
		0x81, 10, 20, 30, 40, // run of 2
		0x00, 50, 60, 70, 80, // 1 raw
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	want := []color.RGBA{
		{R: 30, G: 20, B: 10, A: 40},
		{R: 30, G: 20, B: 10, A: 40},
		{R: 70, G: 60, B: 50, A: 80},
	}
	for x, w := range want {
		if got := img.RGBAAt(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(tgaTrueColor, 1, 1, 24, 0); h[1] = 1; return h }()},
		{"grayscale", tgaHeader(3, 1, 1, 8, 0)},
		{"16 bpp", tgaHeader(tgaTrueColor, 1, 1, 16, 0)},
		{"truncated", append(tgaHeader(tgaTrueColor, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(tgaTrueColorRLE, 4, 1, 24, 0), 0x81, 1, 2, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuiltins(t *testing.T) {
	for _, ref := range []string{BuiltinChecker, BuiltinBumps, BuiltinWhite, BuiltinFlat} {
		img, err := Load(ref, "")
		if err != nil {
			t.Errorf("Load(%q): %v", ref, err)
			continue
		}
		if img.Rect.Dx() == 0 || img.Rect.Dx() != img.Rect.Dy() {
			t.Errorf("%s: bounds %v", ref, img.Rect)
		}
	}
	if _, err := Load("builtin:marble", ""); err == nil {
		t.Error("unknown builtin: expected error")
	}
}

func TestEncodeNormal(t *testing.T) {
	if got, want := EncodeNormal(0, 0, 1), (color.RGBA{R: 128, G: 128, B: 255, A: 255}); got != want {
		t.Errorf("EncodeNormal(0,0,1) = %v, want %v", got, want)
	}
	if got, want := EncodeNormal(0, 0, 0), EncodeNormal(0, 0, 1); got != want {
		t.Errorf("zero vector = %v, want %v", got, want)
	}
	if got := EncodeNormal(-3, 0, 0); got.R != 0 || got.G != 128 {
		t.Errorf("EncodeNormal(-3,0,0) = %v", got)
	}
}

func TestBumpsAreFacingOutward(t *testing.T) {
	img := Bumps(64, 2, 1)
	for i := 0; i < len(img.Pix); i += 4 {
		// z must stay positive in tangent space.
		if img.Pix[i+2] <= 128 {
			t.Fatalf("pixel %d has z byte %d", i/4, img.Pix[i+2])
		}
	}
	// Cell corners are flat.
	if got := img.RGBAAt(0, 0); got != EncodeNormal(0, 0, 1) {
		t.Errorf("corner = %v, want flat", got)
	}
}

func TestLoadPNGFromDir(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tex.png"), buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := Load("tex.png", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Rect != image.Rect(0, 0, 3, 2) {
		t.Errorf("bounds = %v", img.Rect)
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{R: 9, G: 8, B: 7, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "junk.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load("tex.dds", dir); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("dds: error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load("missing.png", dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: error = %v, want ErrNotExist", err)
	}
	if _, err := Load("junk.png", dir); err == nil {
		t.Error("junk: expected error")
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.SetRGBA(5, 5, color.RGBA{R: 1, A: 255})
	got := ToRGBA(src)
	if got.Rect.Min != (image.Point{}) {
		t.Fatalf("origin = %v, want (0,0)", got.Rect.Min)
	}
	if got.RGBAAt(0, 0).R != 1 {
		t.Errorf("pixel not moved to origin")
	}
}
