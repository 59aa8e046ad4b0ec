package rmath

import(
	"fmt"
	"math"
)

// A FloatGrid is a single-channel grid of float64 values, with some
// operations. It is the working representation for luminance planes,
// dark channels and transmission maps.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g1 *FloatGrid)NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 { return 0 }
	return len(fg.values) / fg.stride
}
func (fg *FloatGrid)Values() []float64       { return fg.values } // the backing slice, not a copy

func (g1 *FloatGrid)Copy() FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values: make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return g2
}

func (fg *FloatGrid)Fill(v float64) {
	for i:=0; i<len(fg.values); i++ {
		fg.values[i] = v
	}
}

// Max ranges over every value; a zero-sized grid maxes out at zero.
func (fg *FloatGrid)Max() float64 {
	max := 0.0
	for i:=0; i<len(fg.values); i++ {
		if fg.values[i] > max { max = fg.values[i] }
	}
	return max
}

func (fg *FloatGrid)Clamp(lo, hi float64) {
	for i:=0; i<len(fg.values); i++ {
		if fg.values[i] < lo { fg.values[i] = lo }
		if fg.values[i] > hi { fg.values[i] = hi }
	}
}

func (fg *FloatGrid)Stats() string {
	min := math.MaxFloat64
	max := -1.0 * min

	for i:=0 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}
