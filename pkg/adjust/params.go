package adjust

import(
	"fmt"

	"github.com/abworrall/rawbatchlab/pkg/rcolor"
	"github.com/abworrall/rawbatchlab/pkg/rmath"
)

// Params is the full set of adjustment knobs for one edit. It is a
// plain value; the pipeline never holds knob state of its own, a
// caller passes a Params into every Apply.
type Params struct {
	Temperature float64 // Kelvin
	Tint        float64
	Exposure    float64 // stops
	Contrast    float64
	Highlights  float64
	Shadows     float64
	Whites      float64
	Blacks      float64
	Texture     float64
	Clarity     float64
	Dehaze      float64
	Vibrance    float64
	Saturation  float64
}

// Range bounds for each knob, used by the config layer to pin
// incoming values before they reach the stages.
type KnobRange struct {
	Min, Max float64
}

var KnobRanges = map[string]KnobRange{
	"temperature": {2000, 50000},
	"tint":        {-100, 100},
	"exposure":    {-5, 5},
	"contrast":    {-100, 100},
	"highlights":  {-100, 100},
	"shadows":     {-100, 100},
	"whites":      {-100, 100},
	"blacks":      {-100, 100},
	"texture":     {-100, 100},
	"clarity":     {-100, 100},
	"dehaze":      {-100, 100},
	"vibrance":    {-100, 100},
	"saturation":  {-100, 100},
}

// NewParams returns the all-neutral edit: every stage an exact no-op,
// white balance at the camera baseline.
func NewParams() Params {
	return Params{
		Temperature: rcolor.NeutralTemp,
		Tint:        rcolor.NeutralTint,
	}
}

// Get looks a knob up by its persisted name.
func (p Params)Get(name string) (float64, error) {
	switch name {
	case "temperature": return p.Temperature, nil
	case "tint":        return p.Tint, nil
	case "exposure":    return p.Exposure, nil
	case "contrast":    return p.Contrast, nil
	case "highlights":  return p.Highlights, nil
	case "shadows":     return p.Shadows, nil
	case "whites":      return p.Whites, nil
	case "blacks":      return p.Blacks, nil
	case "texture":     return p.Texture, nil
	case "clarity":     return p.Clarity, nil
	case "dehaze":      return p.Dehaze, nil
	case "vibrance":    return p.Vibrance, nil
	case "saturation":  return p.Saturation, nil
	}
	return 0, fmt.Errorf("no knob named '%s'", name)
}

// Set assigns a knob by its persisted name. Unknown names are an
// error, which preset loading chooses to ignore.
func (p *Params)Set(name string, v float64) error {
	switch name {
	case "temperature": p.Temperature = v
	case "tint":        p.Tint = v
	case "exposure":    p.Exposure = v
	case "contrast":    p.Contrast = v
	case "highlights":  p.Highlights = v
	case "shadows":     p.Shadows = v
	case "whites":      p.Whites = v
	case "blacks":      p.Blacks = v
	case "texture":     p.Texture = v
	case "clarity":     p.Clarity = v
	case "dehaze":      p.Dehaze = v
	case "vibrance":    p.Vibrance = v
	case "saturation":  p.Saturation = v
	default:
		return fmt.Errorf("no knob named '%s'", name)
	}
	return nil
}

// KnobNames lists every knob in stage-table order, white balance
// first. This is the persisted key set.
func KnobNames() []string {
	names := []string{"temperature", "tint"}
	for _, s := range StageOrder {
		names = append(names, s)
	}
	return names
}

// Clamp pins every knob into its documented range, in place. The
// stages assume pre-validated values, so this runs at the config
// boundary, not per stage.
func (p *Params)Clamp() {
	for _, name := range KnobNames() {
		r := KnobRanges[name]
		v, _ := p.Get(name)
		p.Set(name, rmath.Clampf(v, r.Min, r.Max))
	}
}
