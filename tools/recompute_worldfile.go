// Command recompute-worldfile rewrites a nav grid's static impassability
// mask from a simple height-threshold rule, the movement-domain analogue
// of a tool that recomputes cached distances after a map edit: a cheap
// batch pass over a save file so the daemon never has to do it on load.
package main

import (
	"flag"
	"log"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// worldFile is the on-disk shape a map editor would export: a flat
// height sample per tile, row-major, plus the grid's dimensions.
type worldFile struct {
	Width      int       `json:"width"`
	Depth      int       `json:"depth"`
	TileW      float64   `json:"tile_w"`
	TileD      float64   `json:"tile_d"`
	Heights    []float64 `json:"heights"`
	Impassable []bool    `json:"impassable"`
}

func main() {
	in := flag.String("in", "", "input world file (JSON)")
	out := flag.String("out", "", "output world file (JSON); defaults to overwriting -in")
	waterLevel := flag.Float64("water-level", 0.0, "tiles at or below this height become impassable")
	flag.Parse()

	if *in == "" {
		log.Fatal("recompute-worldfile: -in is required")
	}
	if *out == "" {
		*out = *in
	}

	if err := run(*in, *out, *waterLevel); err != nil {
		log.Fatalf("recompute-worldfile: %v", err)
	}
}

func run(inPath, outPath string, waterLevel float64) error {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return errors.Wrap(err, "read input")
	}

	var wf worldFile
	if err := json.Unmarshal(raw, &wf); err != nil {
		return errors.Wrap(err, "decode world file")
	}

	if len(wf.Heights) != wf.Width*wf.Depth {
		return errors.Errorf("heights length %d does not match %dx%d grid", len(wf.Heights), wf.Width, wf.Depth)
	}

	wf.Impassable = make([]bool, len(wf.Heights))
	changed := 0
	for i, h := range wf.Heights {
		if h <= waterLevel {
			wf.Impassable[i] = true
			changed++
		}
	}

	b, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode world file")
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return errors.Wrap(err, "write output")
	}

	log.Printf("recompute-worldfile: marked %d/%d tiles impassable at water level %.2f", changed, len(wf.Heights), waterLevel)
	return nil
}
