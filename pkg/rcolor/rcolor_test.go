package rcolor_test

import (
	goimage "image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/abworrall/rawbatchlab/pkg/rcolor"
)

func TestComputeWBGainsNeutralIsExact(t *testing.T) {
	r, g, b := ComputeWBGains(NeutralTemp, NeutralTint)
	assert.Equal(t, 1.0, r)
	assert.Equal(t, 1.0, g)
	assert.Equal(t, 1.0, b)
	assert.True(t, IsNeutralWB(NeutralTemp, NeutralTint))
	assert.False(t, IsNeutralWB(NeutralTemp+1, NeutralTint))
}

func TestComputeWBGainsKnownValues(t *testing.T) {
	// log_ratio = ln(6000/5050) ~ 0.1726
	r, g, b := ComputeWBGains(6000, NeutralTint)
	assert.InDelta(t, math.Exp(-0.8*math.Log(6000.0/5050.0)), r, 1e-12)
	assert.InDelta(t, 0.8710, r, 1e-3)
	assert.InDelta(t, 1.1482, b, 1e-3)
	assert.Equal(t, 1.0, g)
}

func TestComputeWBGainsMonotonic(t *testing.T) {
	temps := []float64{2000, 3000, 5050, 8000, 20000, 50000}
	for i:=1; i<len(temps); i++ {
		r0, _, b0 := ComputeWBGains(temps[i-1], NeutralTint)
		r1, _, b1 := ComputeWBGains(temps[i], NeutralTint)
		assert.True(t, r1 < r0, "r must fall as temperature rises (%v -> %v)", temps[i-1], temps[i])
		assert.True(t, b1 > b0, "b must rise as temperature rises (%v -> %v)", temps[i-1], temps[i])
	}
}

func TestComputeWBGainsGreenFloor(t *testing.T) {
	_, g, _ := ComputeWBGains(NeutralTemp, 100)
	assert.True(t, g >= 0.1)

	// A wildly positive tint can't push green negative
	_, g, _ = ComputeWBGains(NeutralTemp, 1e6)
	assert.Equal(t, 0.1, g)
}

func TestLuminanceWeights(t *testing.T) {
	im := NewImage(1, 3)
	im.Set(0, 0, 1, 0, 0) // pure blue
	im.Set(0, 1, 0, 1, 0) // pure green
	im.Set(0, 2, 0, 0, 1) // pure red

	Y := im.Luminance()
	assert.InDelta(t, 0.0722, Y.Get(0, 0), 1e-12)
	assert.InDelta(t, 0.7152, Y.Get(0, 1), 1e-12)
	assert.InDelta(t, 0.2126, Y.Get(0, 2), 1e-12)
}

func TestMinChannel(t *testing.T) {
	im := NewImage(2, 1)
	im.Set(0, 0, 0.3, 0.6, 0.9)
	im.Set(1, 0, 0.8, 0.2, 0.5)

	m := im.MinChannel()
	assert.Equal(t, 0.3, m.Get(0, 0))
	assert.Equal(t, 0.2, m.Get(1, 0))
}

func TestCloneDoesNotAlias(t *testing.T) {
	im := NewImage(2, 2)
	im.Set(0, 0, 0.1, 0.2, 0.3)

	c := im.Clone()
	c.Set(0, 0, 0.9, 0.9, 0.9)

	b, g, r := im.At(0, 0)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, []float64{b, g, r})
}

func TestClamp(t *testing.T) {
	im := NewImage(1, 1)
	im.Set(0, 0, -0.5, 0.5, 1.5)
	im.Clamp()
	b, g, r := im.At(0, 0)
	assert.Equal(t, 0.0, b)
	assert.Equal(t, 0.5, g)
	assert.Equal(t, 1.0, r)
}

func TestChannelRoundTrip(t *testing.T) {
	im := NewImage(3, 2)
	im.Set(1, 1, 0.2, 0.4, 0.6)

	g := im.Channel(ChanG)
	assert.Equal(t, 0.4, g.Get(1, 1))

	g.Set(1, 1, 0.7)
	im.SetChannel(ChanG, g)
	_, gv, _ := im.At(1, 1)
	assert.Equal(t, 0.7, gv)
}

func TestFromGoImageChannelOrder(t *testing.T) {
	src := goimage.NewNRGBA(goimage.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})

	im := FromGoImage(src)
	b, g, r := im.At(0, 0)
	assert.InDelta(t, 0.0, b, 1e-9)
	assert.InDelta(t, 0.0, g, 1e-9)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestToNRGBARoundTrip(t *testing.T) {
	im := NewImage(2, 1)
	im.Set(0, 0, 0.25, 0.5, 0.75)
	im.Set(1, 0, 0.0, 1.0, 0.5)

	back := FromGoImage(im.ToNRGBA())
	for x:=0; x<2; x++ {
		b0, g0, r0 := im.At(x, 0)
		b1, g1, r1 := back.At(x, 0)
		assert.InDelta(t, b0, b1, 1.0/255.0)
		assert.InDelta(t, g0, g1, 1.0/255.0)
		assert.InDelta(t, r0, r1, 1.0/255.0)
	}
}
