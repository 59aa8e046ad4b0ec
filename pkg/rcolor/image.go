package rcolor

import(
	"fmt"
	goimage "image"
	"image/color"

	"github.com/abworrall/rawbatchlab/pkg/rmath"
)

// Channel order within a pixel triple. Matches the decode pipeline's
// BGR convention, so channel 0 carries the blue luma weight.
const (
	ChanB = 0
	ChanG = 1
	ChanR = 2
)

// Perceptual luma weights for the B, G, R channels.
const (
	WeightB = 0.0722
	WeightG = 0.7152
	WeightR = 0.2126
)

// An Image is a dense grid of 3-channel float64 pixels, interleaved
// B,G,R, each channel nominally in [0,1]. Adjustment stages treat
// these as immutable values: they read their input and return a fresh
// Image (or the input itself, untouched, for a no-op).
type Image struct {
	stride int // pixels per row
	pix    []float64
}

func NewImage(w, h int) Image {
	return Image{
		stride: w,
		pix:    make([]float64, w*h*3),
	}
}

func (im *Image)Dx() int { return im.stride }
func (im *Image)Dy() int {
	if im.stride == 0 { return 0 }
	return len(im.pix) / (im.stride * 3)
}

func (im *Image)At(x, y int) (b, g, r float64) {
	i := (im.stride*y + x) * 3
	return im.pix[i], im.pix[i+1], im.pix[i+2]
}

func (im *Image)Set(x, y int, b, g, r float64) {
	i := (im.stride*y + x) * 3
	im.pix[i], im.pix[i+1], im.pix[i+2] = b, g, r
}

func (im *Image)NewFromThis() Image { return NewImage(im.Dx(), im.Dy()) }

func (im *Image)Clone() Image {
	c := Image{stride: im.stride, pix: make([]float64, len(im.pix))}
	copy(c.pix, im.pix)
	return c
}

// Clamp pins every sample into [0,1], in place. The adjustment
// pipeline owns its intermediates, so mutating here is fine.
func (im *Image)Clamp() {
	for i:=0; i<len(im.pix); i++ {
		if im.pix[i] < 0.0 { im.pix[i] = 0.0 }
		if im.pix[i] > 1.0 { im.pix[i] = 1.0 }
	}
}

// MapPixels returns a new image with f applied to every pixel.
func (im *Image)MapPixels(f func(b, g, r float64) (float64, float64, float64)) Image {
	out := Image{stride: im.stride, pix: make([]float64, len(im.pix))}
	for i:=0; i<len(im.pix); i+=3 {
		out.pix[i], out.pix[i+1], out.pix[i+2] = f(im.pix[i], im.pix[i+1], im.pix[i+2])
	}
	return out
}

// Luminance computes the per-pixel weighted sum Y = wB*B + wG*G + wR*R.
func (im *Image)Luminance() rmath.FloatGrid {
	Y := rmath.NewFloatGrid(im.Dx(), im.Dy())
	v := Y.Values()
	for i, j := 0, 0; i<len(im.pix); i, j = i+3, j+1 {
		v[j] = WeightB*im.pix[i] + WeightG*im.pix[i+1] + WeightR*im.pix[i+2]
	}
	return Y
}

// MinChannel is the per-pixel minimum across the three channels, the
// first half of a dark-channel computation.
func (im *Image)MinChannel() rmath.FloatGrid {
	m := rmath.NewFloatGrid(im.Dx(), im.Dy())
	v := m.Values()
	for i, j := 0, 0; i<len(im.pix); i, j = i+3, j+1 {
		min := im.pix[i]
		if im.pix[i+1] < min { min = im.pix[i+1] }
		if im.pix[i+2] < min { min = im.pix[i+2] }
		v[j] = min
	}
	return m
}

// GaussianBlur blurs each channel plane independently.
func (im *Image)GaussianBlur(sigma float64) Image {
	out := im.NewFromThis()
	for c:=0; c<3; c++ {
		plane := im.Channel(c)
		out.SetChannel(c, plane.GaussianBlur(sigma))
	}
	return out
}

// Channel extracts one plane as a FloatGrid copy.
func (im *Image)Channel(c int) rmath.FloatGrid {
	g := rmath.NewFloatGrid(im.Dx(), im.Dy())
	v := g.Values()
	for i, j := c, 0; i<len(im.pix); i, j = i+3, j+1 {
		v[j] = im.pix[i]
	}
	return g
}

// SetChannel writes one plane back from a FloatGrid.
func (im *Image)SetChannel(c int, g rmath.FloatGrid) {
	v := g.Values()
	for i, j := c, 0; i<len(im.pix); i, j = i+3, j+1 {
		im.pix[i] = v[j]
	}
}

func (im Image)String() string {
	return fmt.Sprintf("img[%dx%d]", im.Dx(), im.Dy())
}

// FromGoImage maps any image.Image into a float BGR Image in [0,1].
func FromGoImage(src goimage.Image) Image {
	b := src.Bounds()
	im := NewImage(b.Dx(), b.Dy())
	for y:=0; y<b.Dy(); y++ {
		for x:=0; x<b.Dx(); x++ {
			r, g, bb, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			im.Set(x, y,
				float64(bb)/float64(0xFFFF),
				float64(g)/float64(0xFFFF),
				float64(r)/float64(0xFFFF))
		}
	}
	return im
}

// ToNRGBA renders the float image down to 8 bits per channel, the
// depth the export encoders write.
func (im *Image)ToNRGBA() *goimage.NRGBA {
	out := goimage.NewNRGBA(goimage.Rectangle{Max: goimage.Point{im.Dx(), im.Dy()}})
	for y:=0; y<im.Dy(); y++ {
		for x:=0; x<im.Dx(); x++ {
			b, g, r := im.At(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rmath.Clamp01(r)*255.0 + 0.5),
				G: uint8(rmath.Clamp01(g)*255.0 + 0.5),
				B: uint8(rmath.Clamp01(b)*255.0 + 0.5),
				A: 0xFF,
			})
		}
	}
	return out
}
