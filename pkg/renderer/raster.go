package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// toneMapRange is the interval tone-mapped channels are clamped to before
// quantization, so that 1.0 maps to 255 rather than 256
var toneMapRange = core.NewInterval(0.0, 0.999)

// RGB is an 8-bit per channel pixel
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// ToneMap converts a linear color to an 8-bit pixel: square-root gamma,
// clamp to [0, 0.999], scale by 256 and truncate
func ToneMap(c core.Color) RGB {
	return RGB{
		R: toneMapChannel(c.X),
		G: toneMapChannel(c.Y),
		B: toneMapChannel(c.Z),
	}
}

func toneMapChannel(x float64) uint8 {
	if x > 0 {
		x = math.Sqrt(x)
	} else {
		// Negative and NaN channels are black
		x = 0
	}
	return uint8(256 * toneMapRange.Clamp(x))
}

// Raster is a row-major grid of pixels with (0,0) at the top-left. It
// implements image.Image so it can be handed straight to image encoders.
type Raster struct {
	width, height int
	pixels        []RGB
}

// NewRaster creates a black raster of the given size
func NewRaster(width, height int) *Raster {
	width, height = max(0, width), max(0, height)
	return &Raster{
		width:  width,
		height: height,
		pixels: make([]RGB, width*height),
	}
}

// Width returns the raster width in pixels
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels
func (r *Raster) Height() int { return r.height }

// Len returns the number of pixels
func (r *Raster) Len() int { return len(r.pixels) }

// Index returns the flat index of pixel (x, y)
func (r *Raster) Index(x, y int) int {
	return y*r.width + x
}

// Pixel returns the pixel at (x, y)
func (r *Raster) Pixel(x, y int) RGB {
	return r.pixels[r.Index(x, y)]
}

// SetPixel stores the pixel at (x, y)
func (r *Raster) SetPixel(x, y int, c RGB) {
	r.pixels[r.Index(x, y)] = c
}

// PixelAt returns the pixel at flat index i
func (r *Raster) PixelAt(i int) RGB {
	return r.pixels[i]
}

// SetPixelAt stores the pixel at flat index i
func (r *Raster) SetPixelAt(i int, c RGB) {
	r.pixels[i] = c
}

// ColorModel implements image.Image
func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.width, r.height) }

// At implements image.Image
func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(r.Bounds()) {
		return color.RGBA{}
	}
	return r.Pixel(x, y)
}

// ToRGBA copies the raster into a new image.RGBA
func (r *Raster) ToRGBA() *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			p := r.Pixel(x, y)
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}
