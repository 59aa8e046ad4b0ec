package rmath

import "math"

// Spatial filters over FloatGrids. All of them clamp their window at
// the grid edges rather than reflecting, and none of them mutate the
// receiver.

// GaussianBlur convolves with a separable gaussian kernel of the
// given sigma. The kernel is truncated at 3 sigma, which holds ~99.7%
// of the weight.
func (g1 FloatGrid)GaussianBlur(sigma float64) FloatGrid {
	if sigma <= 0.0 {
		return g1.Copy()
	}

	radius := int(math.Ceil(3.0 * sigma))
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i:=-radius; i<=radius; i++ {
		w := math.Exp(-float64(i*i) / (2.0 * sigma * sigma))
		kernel[i+radius] = w
		sum += w
	}
	for i:=0; i<len(kernel); i++ {
		kernel[i] /= sum
	}

	width := g1.Dx()
	height := g1.Dy()
	T := g1.NewFromThis()
	g2 := g1.NewFromThis()

	//--- X pass, build up in T
	for y:=0; y<height; y++ {
		for x:=0; x<width; x++ {
			t := 0.0
			for i:=-radius; i<=radius; i++ {
				xx := x + i
				if xx < 0 { xx = 0 }
				if xx > width-1 { xx = width-1 }
				t += g1.Get(xx, y) * kernel[i+radius]
			}
			T.Set(x, y, t)
		}
	}

	//--- Y pass, read from T and generate output
	for x:=0; x<width; x++ {
		for y:=0; y<height; y++ {
			t := 0.0
			for i:=-radius; i<=radius; i++ {
				yy := y + i
				if yy < 0 { yy = 0 }
				if yy > height-1 { yy = height-1 }
				t += T.Get(x, yy) * kernel[i+radius]
			}
			g2.Set(x, y, t)
		}
	}

	return g2
}

// BoxBlur is the mean over a (2r+1)^2 window, normalized by the
// number of in-bounds samples, so edge values stay unbiased. Uses
// running sums, so cost is independent of the radius.
func (g1 FloatGrid)BoxBlur(radius int) FloatGrid {
	if radius <= 0 {
		return g1.Copy()
	}

	width := g1.Dx()
	height := g1.Dy()
	T := g1.NewFromThis()
	N := g1.NewFromThis() // in-bounds sample counts, built alongside
	g2 := g1.NewFromThis()

	for y:=0; y<height; y++ {
		sum, n := 0.0, 0
		for x:=0; x<=radius && x<width; x++ {
			sum += g1.Get(x, y)
			n++
		}
		for x:=0; x<width; x++ {
			T.Set(x, y, sum)
			N.Set(x, y, float64(n))
			if in := x+radius+1; in < width {
				sum += g1.Get(in, y)
				n++
			}
			if out := x-radius; out >= 0 {
				sum -= g1.Get(out, y)
				n--
			}
		}
	}

	for x:=0; x<width; x++ {
		sum, n := 0.0, 0.0
		for y:=0; y<=radius && y<height; y++ {
			sum += T.Get(x, y)
			n += N.Get(x, y)
		}
		for y:=0; y<height; y++ {
			g2.Set(x, y, sum/n)
			if in := y+radius+1; in < height {
				sum += T.Get(x, in)
				n += N.Get(x, in)
			}
			if out := y-radius; out >= 0 {
				sum -= T.Get(x, out)
				n -= N.Get(x, out)
			}
		}
	}

	return g2
}

// MinFilter erodes with a square (2r+1)^2 structuring element, done
// as two separable passes.
func (g1 FloatGrid)MinFilter(radius int) FloatGrid {
	if radius <= 0 {
		return g1.Copy()
	}

	width := g1.Dx()
	height := g1.Dy()
	T := g1.NewFromThis()
	g2 := g1.NewFromThis()

	for y:=0; y<height; y++ {
		for x:=0; x<width; x++ {
			min := math.MaxFloat64
			for i:=-radius; i<=radius; i++ {
				xx := x + i
				if xx < 0 || xx > width-1 { continue }
				if v := g1.Get(xx, y); v < min { min = v }
			}
			T.Set(x, y, min)
		}
	}

	for x:=0; x<width; x++ {
		for y:=0; y<height; y++ {
			min := math.MaxFloat64
			for i:=-radius; i<=radius; i++ {
				yy := y + i
				if yy < 0 || yy > height-1 { continue }
				if v := T.Get(x, yy); v < min { min = v }
			}
			g2.Set(x, y, min)
		}
	}

	return g2
}
