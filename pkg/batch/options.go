package batch

import(
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

/* Example options file ...

destfolder: /photos/out
filenaming: _edited
format: jpeg
width: 2048
height: 1365
sharpening: Standard
refiner: guided

*/

// Options is everything the export collaborator owns: where files
// go, what they're called, output geometry and sharpening, and which
// transmission refiner the dehaze engine should use.
type Options struct {
	DestFolder string `yaml:"destfolder"`
	FileNaming string `yaml:"filenaming"` // suffix appended to the stem
	Format     string `yaml:"format"`     // jpeg / tiff / png / hdr
	Width      int    `yaml:"width"`      // both zero = no resize
	Height     int    `yaml:"height"`
	Sharpening string `yaml:"sharpening"` // None / Low / Standard / High
	Refiner    string `yaml:"refiner"`

	// Derived during Finalize
	SharpenGain float64 `yaml:"-"`
}

func NewOptions() Options {
	return Options{
		FileNaming: "_edited",
		Format:     "jpeg",
		Sharpening: "None",
	}
}

func LoadOptions(filename string) (Options, error) {
	o := NewOptions()

	if contents, err := ioutil.ReadFile(filename); err != nil {
		return o, fmt.Errorf("read '%s': %v", filename, err)
	} else if err := yaml.Unmarshal(contents, &o); err != nil {
		return o, fmt.Errorf("parse '%s': %v", filename, err)
	}

	return o, o.Finalize()
}

// Finalize does sanity checks and resolves strategy names to values.
func (o *Options)Finalize() error {
	if o.DestFolder == "" {
		o.DestFolder, _ = os.Getwd()
	}
	if o.FileNaming == "" {
		o.FileNaming = "_edited"
	}

	switch o.Format {
	case "": o.Format = "jpeg"
	case "jpeg", "tiff", "png", "hdr":
	default:
		return fmt.Errorf("no output format named '%s'", o.Format)
	}

	switch o.Sharpening {
	case "", "None":     o.SharpenGain = 0.0
	case "Low":          o.SharpenGain = 0.5
	case "Standard":     o.SharpenGain = 1.0
	case "High":         o.SharpenGain = 1.5
	default:
		return fmt.Errorf("no sharpening level named '%s'", o.Sharpening)
	}

	switch o.Refiner {
	case "", "guided", "bilateral":
	default:
		return fmt.Errorf("no transmission refiner named '%s'", o.Refiner)
	}

	if (o.Width == 0) != (o.Height == 0) {
		return fmt.Errorf("resize needs both width and height (got %dx%d)", o.Width, o.Height)
	}

	return nil
}
