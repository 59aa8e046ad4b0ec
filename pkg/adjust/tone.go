package adjust

import(
	"math"

	"github.com/abworrall/rawbatchlab/pkg/rcolor"
	"github.com/abworrall/rawbatchlab/pkg/rmath"
)

// Tone stages. Each takes the image and one scalar amount and returns
// a new image; amount 0 returns the input itself, bit-exact, which the
// idempotence guarantees rely on. Outputs are not clamped here - the
// pipeline clamps at every stage boundary.

// Exposure is a plain linear gain of 2^stops per channel. The gained
// values can leave [0,1]; callers clamp.
func Exposure(img rcolor.Image, stops float64) rcolor.Image {
	if stops == 0 {
		return img
	}
	gain := math.Pow(2.0, stops)
	return img.MapPixels(func(b, g, r float64) (float64, float64, float64) {
		return b * gain, g * gain, r * gain
	})
}

// Contrast remaps around the 0.5 midpoint by 1+amount/100, so ±100
// spans x0..x2. The remap can overshoot [0,1]; callers clamp.
func Contrast(img rcolor.Image, amount float64) rcolor.Image {
	if amount == 0 {
		return img
	}
	f := 1.0 + amount/100.0
	return img.MapPixels(func(b, g, r float64) (float64, float64, float64) {
		return 0.5 + (b-0.5)*f, 0.5 + (g-0.5)*f, 0.5 + (r-0.5)*f
	})
}

// Highlights pushes bright pixels toward white (amount > 0) or pulls
// them back toward mid-gray (amount < 0), inside a soft luminance
// mask over [0.55, 1.0].
func Highlights(img rcolor.Image, amount float64) rcolor.Image {
	if amount == 0 {
		return img
	}
	f := amount / 100.0
	tgt := 1.0
	if f < 0 {
		tgt = 0.5
	}
	return maskedPull(img, f, tgt, func(y float64) float64 {
		return rmath.Smoothstep(0.55, 1.0, y)
	})
}

// Shadows is the mirror of Highlights: lift toward mid-gray or deepen
// toward black, masked by 1-smoothstep(0, 0.45, Y).
func Shadows(img rcolor.Image, amount float64) rcolor.Image {
	if amount == 0 {
		return img
	}
	f := amount / 100.0
	tgt := 0.5
	if f < 0 {
		tgt = 0.0
	}
	return maskedPull(img, f, tgt, func(y float64) float64 {
		return 1.0 - rmath.Smoothstep(0.0, 0.45, y)
	})
}

// Whites applies an exposure-like gain of 2^(amount/100) to the
// pixels near the white point, found as the 99th-percentile
// luminance. A flat or black image (white point under 1e-6) has no
// white point to move, and comes back unchanged. Gained pixels can
// exceed 1; callers clamp.
func Whites(img rcolor.Image, amount float64) rcolor.Image {
	if amount == 0 {
		return img
	}

	Y := img.Luminance()
	wp := Y.Percentile(99)
	if wp < 1e-6 {
		return img
	}

	gain := math.Pow(2.0, amount/100.0) // ±1 stop
	out := img.NewFromThis()
	for y:=0; y<img.Dy(); y++ {
		for x:=0; x<img.Dx(); x++ {
			m := rmath.Smoothstep(wp*0.8, wp, Y.Get(x, y))
			b, g, r := img.At(x, y)
			out.Set(x, y,
				b*(1-m)+b*gain*m,
				g*(1-m)+g*gain*m,
				r*(1-m)+r*gain*m)
		}
	}
	return out
}

// Blacks raises the floor toward 0.15 or crushes it toward 0, masked
// by 1-smoothstep(0, 0.15, Y).
func Blacks(img rcolor.Image, amount float64) rcolor.Image {
	if amount == 0 {
		return img
	}
	f := amount / 100.0
	tgt := 0.15
	if f < 0 {
		tgt = 0.0
	}
	return maskedPull(img, f, tgt, func(y float64) float64 {
		return 1.0 - rmath.Smoothstep(0.0, 0.15, y)
	})
}

// maskedPull moves every channel toward tgt by |f|, weighted by a
// luminance mask. Shared shape of the highlights/shadows/blacks
// stages.
func maskedPull(img rcolor.Image, f, tgt float64, mask func(y float64) float64) rcolor.Image {
	Y := img.Luminance()
	a := math.Abs(f)
	out := img.NewFromThis()
	for y:=0; y<img.Dy(); y++ {
		for x:=0; x<img.Dx(); x++ {
			m := mask(Y.Get(x, y)) * a
			b, g, r := img.At(x, y)
			out.Set(x, y,
				b+m*(tgt-b),
				g+m*(tgt-g),
				r+m*(tgt-r))
		}
	}
	return out
}
