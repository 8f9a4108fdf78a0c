// Package texture provides CPU-side pixel buffers and the region copy used
// to composite sprite-sheet regions into chunk textures.
package texture

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/Faultbox/tilemap/pkg/grid"
)

// RGBAPixelSize is the byte size of one RGBA pixel.
const RGBAPixelSize = 4

// Rect is a pixel rectangle with an inclusive Min and exclusive Max.
type Rect struct {
	Min, Max grid.Point
}

// NewRect returns a rectangle from a top-left corner and a size.
func NewRect(x, y, width, height int) Rect {
	return Rect{Min: grid.Point{X: x, Y: y}, Max: grid.Point{X: x + width, Y: y + height}}
}

// Width returns the rectangle width in pixels.
func (r Rect) Width() int {
	return r.Max.X - r.Min.X
}

// Height returns the rectangle height in pixels.
func (r Rect) Height() int {
	return r.Max.Y - r.Min.Y
}

// Texture is a contiguous pixel buffer. Rows are stored top-to-bottom with
// no padding, so the byte stride is Width*PixelSize.
type Texture struct {
	Width     int
	Height    int
	PixelSize int
	Data      []byte
}

// NewRGBA returns a zeroed RGBA texture. All pixels start fully
// transparent.
func NewRGBA(width, height int) *Texture {
	return &Texture{
		Width:     width,
		Height:    height,
		PixelSize: RGBAPixelSize,
		Data:      make([]byte, width*height*RGBAPixelSize),
	}
}

// Fill sets every pixel to the given RGBA value.
func (t *Texture) Fill(r, g, b, a byte) {
	for i := 0; i < len(t.Data); i += t.PixelSize {
		t.Data[i] = r
		t.Data[i+1] = g
		t.Data[i+2] = b
		t.Data[i+3] = a
	}
}

// At returns the RGBA bytes of one pixel.
func (t *Texture) At(x, y int) (r, g, b, a byte) {
	i := (y*t.Width + x) * t.PixelSize
	return t.Data[i], t.Data[i+1], t.Data[i+2], t.Data[i+3]
}

// Clone returns a deep copy of the texture.
func (t *Texture) Clone() *Texture {
	data := make([]byte, len(t.Data))
	copy(data, t.Data)
	return &Texture{Width: t.Width, Height: t.Height, PixelSize: t.PixelSize, Data: data}
}

// FromImage converts any image into an RGBA texture.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	t := NewRGBA(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			t.Data[i] = byte(r16 >> 8)
			t.Data[i+1] = byte(g16 >> 8)
			t.Data[i+2] = byte(b16 >> 8)
			t.Data[i+3] = byte(a16 >> 8)
			i += RGBAPixelSize
		}
	}
	return t
}

// LoadPNG reads a PNG file into an RGBA texture.
func LoadPNG(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sprite sheet %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding sprite sheet %s: %w", path, err)
	}
	return FromImage(img), nil
}
