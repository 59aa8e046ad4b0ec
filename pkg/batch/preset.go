package batch

import(
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/abworrall/rawbatchlab/pkg/adjust"
)

// Presets persist one flat JSON object mapping knob names to values,
// the same shape Camera-Raw-style tools exchange.

func SavePreset(filename string, p adjust.Params) error {
	flat := map[string]float64{}
	for _, name := range adjust.KnobNames() {
		v, _ := p.Get(name)
		flat[name] = v
	}

	b, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return fmt.Errorf("preset marshal: %v", err)
	}
	if err := ioutil.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("preset write '%s': %v", filename, err)
	}
	return nil
}

// LoadPreset merges a preset file into p: recognized knobs are
// overwritten, unrecognized keys are ignored, and knobs the file
// doesn't mention keep their current value.
func LoadPreset(filename string, p *adjust.Params) error {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("preset read '%s': %v", filename, err)
	}

	flat := map[string]float64{}
	if err := json.Unmarshal(contents, &flat); err != nil {
		return fmt.Errorf("preset parse '%s': %v", filename, err)
	}

	for name, v := range flat {
		p.Set(name, v) // unknown knob names come back as errors; skip them
	}
	return nil
}
