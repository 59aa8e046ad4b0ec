package main

import(
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/abworrall/rawbatchlab/pkg/adjust"
	"github.com/abworrall/rawbatchlab/pkg/batch"
	"github.com/abworrall/rawbatchlab/pkg/dehaze"
)

var(
	fVerbosity int
	fPreset string
	fOptions string
	fDest string
	fFormat string
	fSuffix string
	fWidth int
	fHeight int
	fSharpening string
	fRefiner string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fPreset, "preset", "", "adjustment preset JSON to apply")
	flag.StringVar(&fOptions, "options", "", "export options YAML")
	flag.StringVar(&fDest, "dest", "", "destination folder (default: cwd)")
	flag.StringVar(&fFormat, "format", "", "output format: jpeg, tiff, png, hdr")
	flag.StringVar(&fSuffix, "suffix", "", "filename suffix for outputs")
	flag.IntVar(&fWidth, "width", 0, "resize output to this width (needs -height too)")
	flag.IntVar(&fHeight, "height", 0, "resize output to this height (needs -width too)")
	flag.StringVar(&fSharpening, "sharpen", "", "output sharpening: None, Low, Standard, High")
	flag.StringVar(&fRefiner, "refiner", "", fmt.Sprintf("dehaze transmission refiner: %v", dehaze.RefinerNames()))
	flag.Parse()

	if fVerbosity > 0 {
		log.SetLevel(log.DebugLevel)
	}
	log.Printf("rawbatchlab starting")
}

func main() {
	params := adjust.NewParams()
	if fPreset != "" {
		if err := batch.LoadPreset(fPreset, &params); err != nil {
			log.Fatal(err)
		}
	}

	opts := batch.NewOptions()
	if fOptions != "" {
		var err error
		if opts, err = batch.LoadOptions(fOptions); err != nil {
			log.Fatal(err)
		}
	}

	// Command line flags win over the options file
	if fDest != ""       { opts.DestFolder = fDest }
	if fFormat != ""     { opts.Format = fFormat }
	if fSuffix != ""     { opts.FileNaming = fSuffix }
	if fWidth != 0       { opts.Width = fWidth }
	if fHeight != 0      { opts.Height = fHeight }
	if fSharpening != "" { opts.Sharpening = fSharpening }
	if fRefiner != ""    { opts.Refiner = fRefiner }
	if err := opts.Finalize(); err != nil {
		log.Fatal(err)
	}

	files, err := gatherFilesAndDirs(flag.Args()...)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatal("no input files given")
	}

	results := batch.Process(files, params, opts, batch.NewFileDecoder())

	saved, skipped := 0, 0
	for _, res := range results {
		if res.Failed() {
			skipped++
		} else {
			saved++
		}
	}
	log.Printf("done: %d saved, %d skipped", saved, skipped)
	if saved == 0 {
		os.Exit(1)
	}
}

func gatherFilesAndDirs(args ...string) ([]string, error) {
	files := []string{}

	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return nil, fmt.Errorf("load %s: %v", arg, err)

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := ioutil.ReadDir(arg)
			if err != nil {
				return nil, fmt.Errorf("readdir %s: %v", arg, err)
			}
			for _, content := range contents {
				sub, err := gatherFilesAndDirs(filepath.Join(arg, content.Name()))
				if err != nil {
					return nil, err
				}
				files = append(files, sub...)
			}

		default:
			files = append(files, arg)
		}
	}

	return files, nil
}
