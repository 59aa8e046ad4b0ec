package adjust

import(
	"math"

	"github.com/abworrall/rawbatchlab/pkg/rcolor"
)

// Detail stages: unsharp-style local contrast from a sigma-3 gaussian
// high pass.

// Texture adds the high pass back uniformly, scaled by amount/100.
// Over/undershoot past [0,1] at edges is left for the caller's clamp.
func Texture(img rcolor.Image, amount float64) rcolor.Image {
	if amount == 0 {
		return img
	}
	f := amount / 100.0
	blur := img.GaussianBlur(3.0)
	out := img.NewFromThis()
	for y:=0; y<img.Dy(); y++ {
		for x:=0; x<img.Dx(); x++ {
			b, g, r := img.At(x, y)
			bb, bg, br := blur.At(x, y)
			out.Set(x, y,
				b+(b-bb)*f,
				g+(g-bg)*f,
				r+(r-br)*f)
		}
	}
	return out
}

// Clarity is the same high pass, but attenuated near mid-gray via the
// per-channel weight 1-2*|v-0.5|, so flat regions don't grow halos
// while edges still gain contrast. Unclamped, like Texture.
func Clarity(img rcolor.Image, amount float64) rcolor.Image {
	if amount == 0 {
		return img
	}
	f := amount / 100.0
	blur := img.GaussianBlur(3.0)
	out := img.NewFromThis()
	for y:=0; y<img.Dy(); y++ {
		for x:=0; x<img.Dx(); x++ {
			b, g, r := img.At(x, y)
			bb, bg, br := blur.At(x, y)
			out.Set(x, y,
				b+(b-bb)*f*(1.0-2.0*math.Abs(b-0.5)),
				g+(g-bg)*f*(1.0-2.0*math.Abs(g-0.5)),
				r+(r-br)*f*(1.0-2.0*math.Abs(r-0.5)))
		}
	}
	return out
}
