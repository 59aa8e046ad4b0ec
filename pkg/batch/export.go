package batch

import(
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
	"github.com/skypies/util/histogram"
	"golang.org/x/image/tiff"

	"github.com/abworrall/rawbatchlab/pkg/adjust"
	"github.com/abworrall/rawbatchlab/pkg/rcolor"
)

// A Result is the outcome for one file. Failures are values, not
// panics: the driver records them and moves on, so one broken file
// can't take down the batch.
type Result struct {
	Path   string
	Output string
	Err    error
}

func (r Result)Failed() bool { return r.Err != nil }

// Process runs the full edit over every file: decode (white balance
// composed at decode time), adjust, optionally resize and output
// sharpen, then encode into the destination folder.
func Process(files []string, params adjust.Params, opts Options, dec Decoder) []Result {
	params.Clamp() // knobs are pinned here, the stages assume valid ranges
	pipe := adjust.NewPipeline(opts.Refiner)
	pipe.Dehaze.DumpGrids = log.IsLevelEnabled(log.DebugLevel)

	results := make([]Result, 0, len(files))
	for _, path := range files {
		res := processOne(path, params, opts, dec, pipe)
		if res.Failed() {
			log.WithFields(log.Fields{"file": filepath.Base(path)}).Warnf("skipped: %v", res.Err)
		} else {
			log.WithFields(log.Fields{"file": filepath.Base(path)}).Infof("saved %s", filepath.Base(res.Output))
		}
		results = append(results, res)
	}
	return results
}

func processOne(path string, params adjust.Params, opts Options, dec Decoder, pipe adjust.Pipeline) Result {
	res := Result{Path: path}

	img, err := dec.Decode(path, params)
	if err != nil {
		res.Err = err
		return res
	}

	img = pipe.Apply(img, params)

	if log.IsLevelEnabled(log.DebugLevel) {
		logLuminanceHistogram(path, img)
	}

	if opts.Width > 0 && opts.Height > 0 {
		resized := imaging.Resize(img.ToNRGBA(), opts.Width, opts.Height, imaging.Lanczos)
		img = rcolor.FromGoImage(resized)
	}

	if opts.SharpenGain > 0 {
		img = outputSharpen(img, opts.SharpenGain)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(opts.DestFolder, fmt.Sprintf("%s%s.%s", stem, opts.FileNaming, opts.Format))
	if err := WriteImage(img, out, opts.Format); err != nil {
		res.Err = err
		return res
	}

	res.Output = out
	return res
}

// outputSharpen is a sigma-1 unsharp mask, applied after any resize.
func outputSharpen(img rcolor.Image, gain float64) rcolor.Image {
	blur := img.GaussianBlur(1.0)
	out := img.NewFromThis()
	for y:=0; y<img.Dy(); y++ {
		for x:=0; x<img.Dx(); x++ {
			b, g, r := img.At(x, y)
			bb, bg, br := blur.At(x, y)
			out.Set(x, y,
				b+(b-bb)*gain,
				g+(g-bg)*gain,
				r+(r-br)*gain)
		}
	}
	out.Clamp()
	return out
}

// WriteImage encodes the finished image. jpeg/png go via imaging,
// tiff via x/image, and hdr wraps the float pixels in a Radiance RGBE
// file with no precision loss.
func WriteImage(img rcolor.Image, filename, format string) error {
	switch format {
	case "jpeg", "png":
		if err := imaging.Save(img.ToNRGBA(), filename); err != nil {
			return fmt.Errorf("save '%s': %v", filename, err)
		}
		return nil

	case "tiff":
		writer, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("open+w '%s': %v", filename, err)
		}
		defer writer.Close()
		return tiff.Encode(writer, img.ToNRGBA(), nil)

	case "hdr":
		return WriteHDR(img, filename)
	}
	return fmt.Errorf("no output format named '%s'", format)
}

// logLuminanceHistogram prints a quick log2-ish luminance histogram
// for a processed image, for eyeballing exposure in batch logs.
func logLuminanceHistogram(path string, img rcolor.Image) {
	hist := histogram.Histogram{NumBuckets: 64, ValMin: 0, ValMax: 256}
	Y := img.Luminance()
	v := Y.Values()
	for i:=0; i<len(v); i++ {
		hist.Add(histogram.ScalarVal(int(v[i] * 255.0)))
	}
	log.Debugf("%s luminance: %v", filepath.Base(path), hist)
}
