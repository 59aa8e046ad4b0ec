package dehaze

import(
	"sort"

	"github.com/abworrall/rawbatchlab/pkg/rcolor"
	"github.com/abworrall/rawbatchlab/pkg/rmath"
)

const (
	omega       = 0.95 // never remove all the haze; a fully clean sky looks fake and amplifies noise
	patchRadius = 7    // 15x15 structuring element for the dark channel
	tFloor      = 0.2  // transmission floor, keeps the recovery divisor away from zero
)

// An Engine removes (or synthesizes) atmospheric haze. The removal
// branch is the classical dark-channel prior: estimate a dark
// channel, pick the airlight from its brightest pixels, derive a raw
// transmission map, refine it against scene edges, then invert the
// haze model. The refiner strategy is chosen once, at construction.
type Engine struct {
	Refiner   TransmissionRefiner
	DumpGrids bool // write dark channel + transmission PNGs next to the cwd
}

func NewEngine(refinerName string) *Engine {
	return &Engine{Refiner: NewRefiner(refinerName)}
}

// Apply dispatches on the sign of amount: positive removes haze,
// negative adds it, zero is an exact identity. A zero-sized image has
// no dark channel to estimate from, and comes back unchanged.
func (e *Engine)Apply(img rcolor.Image, amount float64) rcolor.Image {
	if amount == 0 || img.Dx() == 0 || img.Dy() == 0 {
		return img
	}

	f := amount / 100.0
	if f > 0 {
		return e.remove(img, f)
	}
	return synthesize(img, -f)
}

func (e *Engine)remove(img rcolor.Image, f float64) rcolor.Image {
	dark := img.MinChannel().MinFilter(patchRadius)
	aB, aG, aR := estimateAirlight(img, dark)

	// Raw transmission. The dark-channel max is guarded so a pitch
	// black frame can't divide by zero.
	darkMax := dark.Max()
	if darkMax < 1e-6 {
		darkMax = 1e-6
	}
	t0 := rmath.NewFloatGrid(img.Dx(), img.Dy())
	tv := t0.Values()
	dv := dark.Values()
	for i:=0; i<len(tv); i++ {
		tv[i] = 1.0 - omega*f*dv[i]/darkMax
	}

	t := e.Refiner.Refine(t0, img.Luminance())
	t.Clamp(tFloor, 1.0)

	if e.DumpGrids {
		dark.ToImg("dark channel", "dehaze-dark.png")
		t.ToImg("transmission", "dehaze-transmission.png")
	}

	// Recover scene radiance: out = (img - A)/t + A
	out := img.NewFromThis()
	for y:=0; y<img.Dy(); y++ {
		for x:=0; x<img.Dx(); x++ {
			b, g, r := img.At(x, y)
			tt := t.Get(x, y)
			out.Set(x, y,
				(b-aB)/tt+aB,
				(g-aG)/tt+aG,
				(r-aR)/tt+aR)
		}
	}
	out.Clamp()
	return out
}

// estimateAirlight averages the original colors of the brightest 0.1%
// of dark-channel pixels (at least one), then clamps each channel to
// [0.7, 1.0] - haze is never arbitrarily dark or saturated.
func estimateAirlight(img rcolor.Image, dark rmath.FloatGrid) (aB, aG, aR float64) {
	dv := dark.Values()
	idx := make([]int, len(dv))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return dv[idx[i]] > dv[idx[j]] })

	n := len(dv) / 1000
	if n < 1 {
		n = 1
	}

	w := img.Dx()
	for i:=0; i<n; i++ {
		b, g, r := img.At(idx[i]%w, idx[i]/w)
		aB += b
		aG += g
		aR += r
	}
	aB = rmath.Clampf(aB/float64(n), 0.7, 1.0)
	aG = rmath.Clampf(aG/float64(n), 0.7, 1.0)
	aR = rmath.Clampf(aR/float64(n), 0.7, 1.0)
	return aB, aG, aR
}

// synthesize blends in a heavily blurred, brightened copy of the
// image, simulating atmospheric veiling for creative softening.
func synthesize(img rcolor.Image, alpha float64) rcolor.Image {
	haze := img.GaussianBlur(8.0)
	out := img.NewFromThis()
	for y:=0; y<img.Dy(); y++ {
		for x:=0; x<img.Dx(); x++ {
			b, g, r := img.At(x, y)
			hb, hg, hr := haze.At(x, y)
			hb = rmath.Clamp01(hb + 0.5)
			hg = rmath.Clamp01(hg + 0.5)
			hr = rmath.Clamp01(hr + 0.5)
			out.Set(x, y,
				b*(1-alpha)+hb*alpha,
				g*(1-alpha)+hg*alpha,
				r*(1-alpha)+hr*alpha)
		}
	}
	return out
}
