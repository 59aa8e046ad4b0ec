package rcolor

import "math"

// White balance model: a (temperature, tint) pair maps to
// multiplicative per-channel gains around a neutral reference point.
// The gains are offsets against whatever camera baseline the decoder
// carries; composing them onto that baseline is the decoder's job.

const (
	NeutralTemp = 5050 // Kelvin; gains are exactly (1,1,1) here
	NeutralTint = 8
)

// ComputeWBGains returns the (r, g, b) gain factors. Warm/cool is a
// symmetric exponential in log temperature ratio; tint only moves the
// green channel, floored at 0.1 so it can never collapse or go
// negative.
func ComputeWBGains(temperature, tint float64) (r, g, b float64) {
	if temperature < 1.0 {
		temperature = 1.0
	}
	logRatio := math.Log(temperature / NeutralTemp)

	r = math.Exp(-0.8 * logRatio)
	b = math.Exp(0.8 * logRatio)
	g = 1.0 - (tint-NeutralTint)/200.0
	if g < 0.1 {
		g = 0.1
	}
	return r, g, b
}

// IsNeutralWB reports whether (temperature, tint) sits exactly on the
// neutral reference. Callers special-case this so a no-op edit can't
// drift pixels through float noise in exp/log.
func IsNeutralWB(temperature, tint float64) bool {
	return temperature == NeutralTemp && tint == NeutralTint
}
