package rmath

// Some functions that only operate on basic types, that are useful

// Smoothstep clamps (x-e0)/(e1-e0) to [0,1] and returns the cubic
// Hermite ease t*t*(3-2t). The denominator is guarded so a degenerate
// interval (e0 == e1) behaves like a step rather than a divide by zero.
func Smoothstep(e0, e1, x float64) float64 {
	t := (x - e0) / (e1 - e0 + 1e-12)
	if t < 0.0 { t = 0.0 }
	if t > 1.0 { t = 1.0 }
	return t * t * (3.0 - 2.0*t)
}

func Clamp01(f float64) float64 {
	if f < 0.0 { return 0.0 }
	if f > 1.0 { return 1.0 }
	return f
}

func Clampf(f, lo, hi float64) float64 {
	if f < lo { return lo }
	if f > hi { return hi }
	return f
}
