package batch_test

import (
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/rawbatchlab/pkg/adjust"
	. "github.com/abworrall/rawbatchlab/pkg/batch"
	"github.com/abworrall/rawbatchlab/pkg/rcolor"
)

func writeTestPNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 12, 8))
	for y:=0; y<8; y++ {
		for x:=0; x<12; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(20 * x),
				G: uint8(30 * y),
				B: 128,
				A: 255,
			})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestPresetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "warm.json")

	p := adjust.NewParams()
	p.Temperature = 6500
	p.Tint = -12
	p.Exposure = 0.5
	p.Dehaze = 35
	p.Saturation = -20
	require.NoError(t, SavePreset(path, p))

	loaded := adjust.NewParams()
	require.NoError(t, LoadPreset(path, &loaded))
	assert.Equal(t, p, loaded)
}

func TestPresetLoadMergesAndIgnoresUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.json")
	blob := `{"exposure": 1.5, "grain": 42, "tint": -3}`
	require.NoError(t, ioutil.WriteFile(path, []byte(blob), 0644))

	p := adjust.NewParams()
	p.Contrast = 25 // must survive: the file doesn't mention contrast
	require.NoError(t, LoadPreset(path, &p))

	assert.Equal(t, 1.5, p.Exposure)
	assert.Equal(t, -3.0, p.Tint)
	assert.Equal(t, 25.0, p.Contrast)
	assert.Equal(t, float64(rcolor.NeutralTemp), p.Temperature)
}

func TestPresetLoadMissingFile(t *testing.T) {
	p := adjust.NewParams()
	assert.Error(t, LoadPreset("/no/such/file.json", &p))
}

func TestOptionsDefaults(t *testing.T) {
	o := NewOptions()
	require.NoError(t, o.Finalize())

	assert.Equal(t, "jpeg", o.Format)
	assert.Equal(t, "_edited", o.FileNaming)
	assert.Equal(t, 0.0, o.SharpenGain)
	assert.NotEmpty(t, o.DestFolder)
}

var TestSharpeningLevels = []struct {
	Level  string
	Expect float64
}{
	{"None", 0.0},
	{"Low", 0.5},
	{"Standard", 1.0},
	{"High", 1.5},
}

func TestOptionsSharpening(t *testing.T) {
	for _, tc := range TestSharpeningLevels {
		o := NewOptions()
		o.Sharpening = tc.Level
		require.NoError(t, o.Finalize())
		assert.Equal(t, tc.Expect, o.SharpenGain, "level %s", tc.Level)
	}

	o := NewOptions()
	o.Sharpening = "Maximum"
	assert.Error(t, o.Finalize())
}

func TestOptionsValidation(t *testing.T) {
	o := NewOptions()
	o.Format = "webp"
	assert.Error(t, o.Finalize())

	o = NewOptions()
	o.Width = 800 // height missing
	assert.Error(t, o.Finalize())

	o = NewOptions()
	o.Refiner = "median"
	assert.Error(t, o.Finalize())

	o = NewOptions()
	o.Refiner = "bilateral"
	assert.NoError(t, o.Finalize())
}

func TestOptionsFromYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.yaml")
	blob := `
destfolder: ` + dir + `
format: png
sharpening: Standard
width: 6
height: 4
`
	require.NoError(t, ioutil.WriteFile(path, []byte(blob), 0644))

	o, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "png", o.Format)
	assert.Equal(t, 1.0, o.SharpenGain)
	assert.Equal(t, 6, o.Width)
	assert.Equal(t, 4, o.Height)
}

func TestDecodeNeutralIsUntouched(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "in.png")

	dec := NewFileDecoder()
	img, err := dec.Decode(path, adjust.NewParams())
	require.NoError(t, err)
	require.Equal(t, 12, img.Dx())
	require.Equal(t, 8, img.Dy())

	b, g, r := img.At(3, 2)
	assert.InDelta(t, 128.0/255.0, b, 1e-3)
	assert.InDelta(t, 60.0/255.0, g, 1e-3)
	assert.InDelta(t, 60.0/255.0, r, 1e-3)
}

func TestDecodeAppliesWhiteBalance(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "in.png")

	warm := adjust.NewParams()
	warm.Temperature = 6000 // r gain < 1, b gain > 1

	dec := NewFileDecoder()
	neutral, err := dec.Decode(path, adjust.NewParams())
	require.NoError(t, err)
	shifted, err := dec.Decode(path, warm)
	require.NoError(t, err)

	b0, g0, r0 := neutral.At(3, 2)
	b1, g1, r1 := shifted.At(3, 2)
	assert.True(t, b1 > b0, "blue gains up")
	assert.True(t, r1 < r0, "red gains down")
	assert.InDelta(t, g0, g1, 1e-9, "green untouched at neutral tint")
}

func TestDecodeRejectsUnknownExtension(t *testing.T) {
	dec := NewFileDecoder()
	_, err := dec.Decode("shot.nef", adjust.NewParams())
	assert.Error(t, err)
}

func TestProcessIsolatesPerItemFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeTestPNG(t, dir, "good.png")
	bad := filepath.Join(dir, "bad.png") // doesn't exist

	outDir := t.TempDir()
	opts := NewOptions()
	opts.DestFolder = outDir
	opts.Format = "png"
	require.NoError(t, opts.Finalize())

	results := Process([]string{good, bad, good}, adjust.NewParams(), opts, NewFileDecoder())
	require.Len(t, results, 3)

	assert.False(t, results[0].Failed())
	assert.True(t, results[1].Failed(), "missing file is reported, not fatal")
	assert.False(t, results[2].Failed(), "batch continues after a failure")

	_, err := os.Stat(results[0].Output)
	assert.NoError(t, err)
	assert.Equal(t, "good_edited.png", filepath.Base(results[0].Output))
}

func TestProcessResizesAndSharpens(t *testing.T) {
	dir := t.TempDir()
	good := writeTestPNG(t, dir, "good.png")

	outDir := t.TempDir()
	opts := NewOptions()
	opts.DestFolder = outDir
	opts.Format = "png"
	opts.Width = 6
	opts.Height = 4
	opts.Sharpening = "High"
	require.NoError(t, opts.Finalize())

	results := Process([]string{good}, adjust.NewParams(), opts, NewFileDecoder())
	require.Len(t, results, 1)
	require.False(t, results[0].Failed())

	f, err := os.Open(results[0].Output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestDebugModeDumpsDehazeGrids(t *testing.T) {
	dir := t.TempDir()
	good := writeTestPNG(t, dir, "good.png")

	// The grid dumps land in the cwd, so run from a scratch dir
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	oldLevel := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	defer log.SetLevel(oldLevel)

	outDir := t.TempDir()
	opts := NewOptions()
	opts.DestFolder = outDir
	opts.Format = "png"
	require.NoError(t, opts.Finalize())

	params := adjust.NewParams()
	params.Dehaze = 40
	results := Process([]string{good}, params, opts, NewFileDecoder())
	require.Len(t, results, 1)
	require.False(t, results[0].Failed())

	for _, name := range []string{"dehaze-dark.png", "dehaze-transmission.png"} {
		_, err := os.Stat(name)
		assert.NoError(t, err, name)
	}
}

var TestWriteImageFormats = []string{"png", "jpeg", "tiff", "hdr"}

func TestWriteImageAllFormats(t *testing.T) {
	im := rcolor.NewImage(4, 4)
	for y:=0; y<4; y++ {
		for x:=0; x<4; x++ {
			im.Set(x, y, 0.25, 0.5, 0.75)
		}
	}

	dir := t.TempDir()
	for _, format := range TestWriteImageFormats {
		path := filepath.Join(dir, "out."+format)
		require.NoError(t, WriteImage(im, path, format), format)
		info, err := os.Stat(path)
		require.NoError(t, err, format)
		assert.True(t, info.Size() > 0, format)
	}

	assert.Error(t, WriteImage(im, filepath.Join(dir, "out.gif"), "gif"))
}
