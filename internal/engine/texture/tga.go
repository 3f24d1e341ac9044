package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types understood by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE true-color TGA (24 or 32 bpp).
// Bottom-up images are flipped so row 0 is always the top row.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga: header too short (%d bytes)", len(data))
	}

	idLength := int(data[0])
	if data[1] != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}
	kind := data[2]
	if kind != tgaTrueColor && kind != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", kind)
	}
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	topDown := data[17]&0x20 != 0

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		src:     data[offset:],
		bpp:     bpp / 8,
		topDown: topDown,
	}
	var err error
	if kind == tgaTrueColor {
		err = d.raw(width * height)
	} else {
		err = d.rle(width * height)
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img     *image.RGBA
	src     []byte
	pos     int
	bpp     int
	topDown bool
	pixel   int
}

// next reads one BGR(A) pixel from the source.
func (d *tgaDecoder) next() ([4]byte, error) {
	if d.pos+d.bpp > len(d.src) {
		return [4]byte{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp
	c := [4]byte{p[2], p[1], p[0], 0xff}
	if d.bpp == 4 {
		c[3] = p[3]
	}
	return c, nil
}

// put writes c at the current pixel and advances.
func (d *tgaDecoder) put(c [4]byte) {
	w := d.img.Rect.Dx()
	x, y := d.pixel%w, d.pixel/w
	if !d.topDown {
		y = d.img.Rect.Dy() - 1 - y
	}
	copy(d.img.Pix[d.img.PixOffset(x, y):], c[:])
	d.pixel++
}

func (d *tgaDecoder) raw(count int) error {
	for d.pixel < count {
		c, err := d.next()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle(count int) error {
	for d.pixel < count {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		header := d.src[d.pos]
		d.pos++
		run := int(header&0x7f) + 1
		if run > count-d.pixel {
			run = count - d.pixel
		}

		if header&0x80 != 0 {
			c, err := d.next()
			if err != nil {
				return err
			}
			for i := 0; i < run; i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < run; i++ {
			c, err := d.next()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}
