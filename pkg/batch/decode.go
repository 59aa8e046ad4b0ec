package batch

import(
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/tiff"

	"github.com/abworrall/rawbatchlab/pkg/adjust"
	"github.com/abworrall/rawbatchlab/pkg/rcolor"
)

// A Decoder turns a file into a float BGR image in [0,1], with white
// balance already applied. This is the pipeline's upstream
// collaborator boundary: a RAW decoder (LibRaw etc.) would slot in
// here, composing its camera-derived baseline with the gain model.
type Decoder interface {
	Decode(path string, params adjust.Params) (rcolor.Image, error)
}

// FileDecoder decodes already-developed TIFF/PNG/JPEG files. Its
// white-balance baseline is the (R,G1,B,G2) vector a RAW decoder
// would report; for developed files that's unity, and the
// (temperature, tint) gains are composed on top of it.
type FileDecoder struct {
	CameraWB [4]float64
}

func NewFileDecoder() FileDecoder {
	return FileDecoder{CameraWB: [4]float64{1, 1, 1, 1}}
}

var decodeExts = map[string]bool{
	".tif": true, ".tiff": true, ".png": true, ".jpg": true, ".jpeg": true,
}

func (d FileDecoder)Decode(path string, params adjust.Params) (rcolor.Image, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !decodeExts[ext] {
		return rcolor.Image{}, fmt.Errorf("decode '%s': unsupported extension '%s'", path, ext)
	}

	src, err := d.loadOriented(path)
	if err != nil {
		return rcolor.Image{}, err
	}

	img := rcolor.FromGoImage(src)
	if img.Dx() == 0 || img.Dy() == 0 {
		return rcolor.Image{}, fmt.Errorf("decode '%s': no pixel data", path)
	}

	// The neutral point is special-cased exactly: a no-op edit must
	// not drift pixels through the exp/log gain math.
	if !rcolor.IsNeutralWB(params.Temperature, params.Tint) {
		rs, gs, bs := rcolor.ComputeWBGains(params.Temperature, params.Tint)
		bGain := d.CameraWB[2] * bs
		gGain := d.CameraWB[1] * gs
		rGain := d.CameraWB[0] * rs
		img = img.MapPixels(func(b, g, r float64) (float64, float64, float64) {
			return b * bGain, g * gGain, r * rGain
		})
	}
	img.Clamp()
	return img, nil
}

// loadOriented decodes the pixel data and honors the EXIF orientation
// tag, if there is one. EXIF trouble is never fatal - plenty of valid
// files carry none at all.
func (d FileDecoder)loadOriented(path string) (image.Image, error) {
	reader, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open+r '%s': %v", path, err)
	}
	defer reader.Close()

	orientation := 1
	if ex, err := exif.Decode(reader); err == nil {
		if tag, err := ex.Get(exif.Orientation); err == nil {
			if v, err := tag.Int(0); err == nil {
				orientation = v
			}
		}
		if tag, err := ex.Get(exif.Model); err == nil {
			if model, err := tag.StringVal(); err == nil {
				log.WithFields(log.Fields{"file": filepath.Base(path), "camera": model}).Debug("decoding")
			}
		}
	}

	// Re-open the file, now for the image data
	if _, err := reader.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("rewind '%s': %v", path, err)
	}
	src, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decode '%s': %v", path, err)
	}

	switch orientation {
	case 2: src = imaging.FlipH(src)
	case 3: src = imaging.Rotate180(src)
	case 4: src = imaging.FlipV(src)
	case 5: src = imaging.Transpose(src)
	case 6: src = imaging.Rotate270(src)
	case 7: src = imaging.Transverse(src)
	case 8: src = imaging.Rotate90(src)
	}

	return src, nil
}
