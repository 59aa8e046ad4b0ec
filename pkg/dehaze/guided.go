package dehaze

import(
	"github.com/abworrall/rawbatchlab/pkg/rmath"
)

// GuidedRefiner is He/Sun/Tang guided filtering: fit a local linear
// model q = a*I + b of the target map against the guide image inside
// each window, then average the coefficients. Where the guide has
// edges (high local variance) a -> 1 and the map follows the guide;
// in flat regions a -> 0 and the map is just smoothed.
type GuidedRefiner struct {
	Radius int     // box window radius
	Eps    float64 // regularization; bigger = smoother
}

func (gr GuidedRefiner)Name() string { return "guided" }

func (gr GuidedRefiner)Refine(t0, guide rmath.FloatGrid) rmath.FloatGrid {
	w, h := t0.Dx(), t0.Dy()

	II := rmath.NewFloatGrid(w, h)
	IP := rmath.NewFloatGrid(w, h)
	iv, pv := guide.Values(), t0.Values()
	iiv, ipv := II.Values(), IP.Values()
	for i:=0; i<len(iv); i++ {
		iiv[i] = iv[i] * iv[i]
		ipv[i] = iv[i] * pv[i]
	}

	meanI := guide.BoxBlur(gr.Radius)
	meanP := t0.BoxBlur(gr.Radius)
	corrI := II.BoxBlur(gr.Radius)
	corrIP := IP.BoxBlur(gr.Radius)

	// Per-window linear coefficients: a = cov(I,p) / (var(I) + eps)
	a := rmath.NewFloatGrid(w, h)
	b := rmath.NewFloatGrid(w, h)
	miv, mpv := meanI.Values(), meanP.Values()
	civ, cipv := corrI.Values(), corrIP.Values()
	av, bv := a.Values(), b.Values()
	for i:=0; i<len(av); i++ {
		varI := civ[i] - miv[i]*miv[i]
		covIP := cipv[i] - miv[i]*mpv[i]
		av[i] = covIP / (varI + gr.Eps)
		bv[i] = mpv[i] - av[i]*miv[i]
	}

	meanA := a.BoxBlur(gr.Radius)
	meanB := b.BoxBlur(gr.Radius)

	q := rmath.NewFloatGrid(w, h)
	qv := q.Values()
	mav, mbv := meanA.Values(), meanB.Values()
	for i:=0; i<len(qv); i++ {
		qv[i] = mav[i]*iv[i] + mbv[i]
	}
	return q
}
