package dehaze

import(
	"github.com/abworrall/rawbatchlab/pkg/rmath"
)

// A TransmissionRefiner smooths a raw transmission map so it respects
// scene edges, using the grayscale image as a guide. Two strategies
// exist: the guided filter (the good one) and a bilateral filter that
// stands in when guided filtering isn't wanted or available. The
// choice is made once at startup, not per call, and is invisible to
// the pipeline either way.
type TransmissionRefiner interface {
	Name() string
	Refine(t0, guide rmath.FloatGrid) rmath.FloatGrid
}

// NewRefiner maps a strategy name to a refiner. The empty string and
// anything unrecognized mean the default, guided filtering; the
// fallback has to be asked for by name (or substituted by a caller
// that knows guided filtering is off the table).
func NewRefiner(name string) TransmissionRefiner {
	switch name {
	case "bilateral":
		return BilateralRefiner{Diameter: 9, SigmaColor: 0.1, SigmaSpace: 75}
	default:
		return GuidedRefiner{Radius: 60, Eps: 1e-3}
	}
}

// RefinerNames lists the recognized strategy names, for flag help.
func RefinerNames() []string {
	return []string{"guided", "bilateral"}
}
