package adjust

import(
	"github.com/abworrall/rawbatchlab/pkg/dehaze"
	"github.com/abworrall/rawbatchlab/pkg/rcolor"
)

// A StageFunc maps (image, amount) to a new image.
type StageFunc func(rcolor.Image, float64) rcolor.Image

type Stage struct {
	Name  string
	Apply StageFunc
}

// StageOrder is the fixed chain, in Camera-Raw order. Downstream
// results are order-sensitive (texture before dehaze, dehaze before
// the color stages), so this table is the invariant, not an
// incidental iteration order. White balance is not in the chain; the
// decoder applies it upstream.
var StageOrder = []string{
	"exposure",
	"contrast",
	"highlights",
	"shadows",
	"whites",
	"blacks",
	"texture",
	"clarity",
	"dehaze",
	"vibrance",
	"saturation",
}

// A Pipeline runs the full adjustment chain. It holds no knob state;
// the only configuration it carries is the dehaze engine, whose
// transmission refiner is picked once at startup.
type Pipeline struct {
	Dehaze *dehaze.Engine
}

func NewPipeline(refinerName string) Pipeline {
	return Pipeline{Dehaze: dehaze.NewEngine(refinerName)}
}

// Stages resolves StageOrder into callable stages.
func (p Pipeline)Stages() []Stage {
	stages := make([]Stage, 0, len(StageOrder))
	for _, name := range StageOrder {
		var fn StageFunc
		switch name {
		case "exposure":   fn = Exposure
		case "contrast":   fn = Contrast
		case "highlights": fn = Highlights
		case "shadows":    fn = Shadows
		case "whites":     fn = Whites
		case "blacks":     fn = Blacks
		case "texture":    fn = Texture
		case "clarity":    fn = Clarity
		case "dehaze":     fn = p.Dehaze.Apply
		case "vibrance":   fn = Vibrance
		case "saturation": fn = Saturation
		}
		stages = append(stages, Stage{Name: name, Apply: fn})
	}
	return stages
}

// Apply threads the image through every stage in order, clamping to
// [0,1] between stages so no intermediate can leak unbounded values
// into the percentile-based stages further down. The caller's image
// is never written to.
func (p Pipeline)Apply(img rcolor.Image, params Params) rcolor.Image {
	work := img.Clone()
	for _, stage := range p.Stages() {
		amount, _ := params.Get(stage.Name)
		work = stage.Apply(work, amount)
		work.Clamp()
	}
	return work
}
