package batch

import(
	"image"

	"github.com/disintegration/imaging"

	"github.com/abworrall/rawbatchlab/pkg/adjust"
	"github.com/abworrall/rawbatchlab/pkg/rcolor"
)

// PreviewMax is the long-edge cap for preview renders.
const PreviewMax = 900

// Preview runs the full chain and hands back a display-sized 8-bit
// image; the preview collaborator owns the actual windowing and
// display conversion.
func Preview(img rcolor.Image, params adjust.Params, pipe adjust.Pipeline) image.Image {
	params.Clamp()
	edited := pipe.Apply(img, params)
	out := edited.ToNRGBA()
	if out.Bounds().Dx() > PreviewMax || out.Bounds().Dy() > PreviewMax {
		return imaging.Fit(out, PreviewMax, PreviewMax, imaging.Lanczos)
	}
	return out
}
