package adjust

import(
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/rawbatchlab/pkg/rcolor"
	"github.com/abworrall/rawbatchlab/pkg/rmath"
)

// Color stages: scale the S channel of an HSV decomposition. The HSV
// round trip itself is not bit-exact, which is why amount 0 returns
// the input before any conversion happens.

// Saturation scales saturation uniformly by 1+amount/100.
func Saturation(img rcolor.Image, amount float64) rcolor.Image {
	if amount == 0 {
		return img
	}
	f := amount / 100.0
	return mapHSV(img, func(s float64) float64 {
		return rmath.Clamp01(s * (1.0 + f))
	})
}

// Vibrance scales saturation by 1+f*(1-s): muted colors get most of
// the push, already-vivid pixels are protected from clipping.
func Vibrance(img rcolor.Image, amount float64) rcolor.Image {
	if amount == 0 {
		return img
	}
	f := amount / 100.0
	return mapHSV(img, func(s float64) float64 {
		return rmath.Clamp01(s * (1.0 + f*(1.0-s)))
	})
}

func mapHSV(img rcolor.Image, remapS func(s float64) float64) rcolor.Image {
	return img.MapPixels(func(b, g, r float64) (float64, float64, float64) {
		h, s, v := colorful.Color{R: r, G: g, B: b}.Hsv()
		c := colorful.Hsv(h, remapS(s), v)
		return c.B, c.G, c.R
	})
}
