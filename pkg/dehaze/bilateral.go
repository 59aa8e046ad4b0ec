package dehaze

import(
	"math"

	"github.com/abworrall/rawbatchlab/pkg/rmath"
)

// BilateralRefiner is the fallback strategy: an edge-aware bilateral
// filter run over the transmission map itself. It ranges on the map's
// own values rather than the guide, so it preserves the map's edges
// but can't borrow structure from the image the way the guided filter
// does. Good enough to stop halos.
type BilateralRefiner struct {
	Diameter   int     // full kernel width
	SigmaColor float64 // range sigma, in map-value units
	SigmaSpace float64 // spatial sigma, in pixels
}

func (br BilateralRefiner)Name() string { return "bilateral" }

func (br BilateralRefiner)Refine(t0, guide rmath.FloatGrid) rmath.FloatGrid {
	radius := br.Diameter / 2
	if radius < 1 {
		radius = 1
	}

	// Spatial weights don't depend on the pixel, precompute the window.
	space := make([]float64, (2*radius+1)*(2*radius+1))
	for dy:=-radius; dy<=radius; dy++ {
		for dx:=-radius; dx<=radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			space[(dy+radius)*(2*radius+1)+dx+radius] = math.Exp(-d2 / (2.0 * br.SigmaSpace * br.SigmaSpace))
		}
	}

	w, h := t0.Dx(), t0.Dy()
	out := rmath.NewFloatGrid(w, h)
	twoSigmaColor2 := 2.0 * br.SigmaColor * br.SigmaColor

	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			center := t0.Get(x, y)
			sum, norm := 0.0, 0.0
			for dy:=-radius; dy<=radius; dy++ {
				yy := y + dy
				if yy < 0 || yy > h-1 { continue }
				for dx:=-radius; dx<=radius; dx++ {
					xx := x + dx
					if xx < 0 || xx > w-1 { continue }
					v := t0.Get(xx, yy)
					dv := v - center
					wgt := space[(dy+radius)*(2*radius+1)+dx+radius] * math.Exp(-(dv*dv)/twoSigmaColor2)
					sum += v * wgt
					norm += wgt
				}
			}
			out.Set(x, y, sum/norm)
		}
	}
	return out
}
