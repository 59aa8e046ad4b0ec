package batch

import(
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/rawbatchlab/pkg/rcolor"
)

// hdrImage adapts a float BGR image to the hdr.Image interface, so
// the RGBE codec can stream the full float values straight out.
type hdrImage struct {
	im rcolor.Image
}

func (h hdrImage)ColorModel() color.Model { return hdrcolor.RGBModel }
func (h hdrImage)Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{h.im.Dx(), h.im.Dy()}}
}
func (h hdrImage)At(x, y int) color.Color { return h.HDRAt(x, y) }
func (h hdrImage)Size() int               { return h.im.Dx() * h.im.Dy() }

func (h hdrImage)HDRAt(x, y int) hdrcolor.Color {
	b, g, r := h.im.At(x, y)
	return hdrcolor.RGB{R: r, G: g, B: b}
}

// WriteHDR outputs a Radiance RGBE image. You can load this into
// photoshop or other HDR tools.
func WriteHDR(img rcolor.Image, filename string) error {
	writer, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	defer writer.Close()
	return rgbe.Encode(writer, hdrImage{im: img})
}
