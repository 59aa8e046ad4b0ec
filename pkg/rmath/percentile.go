package rmath

import(
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Percentile queries use gonum's linear-interpolation quantile
// throughout the repo. The choice is observable in output (whites,
// airlight), so every caller goes through here rather than rolling a
// nearest-rank variant.

// Percentile returns the p-th percentile (p in [0,100]) of the values
// in the grid. Returns 0 for an empty grid.
func (fg *FloatGrid)Percentile(p float64) float64 {
	return Percentile(fg.values, p)
}

func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return stat.Quantile(p/100.0, stat.LinInterp, sorted, nil)
}
