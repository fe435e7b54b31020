// Package main accumulates a density map offline and writes it as a PNG.
// It drives the compute kernel directly, so it runs anywhere a plain
// binary does, with no graphics stack attached.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/mossfall/nebula/config"
	"github.com/mossfall/nebula/entropy"
	"github.com/mossfall/nebula/render"
	"github.com/mossfall/nebula/sim"
	"github.com/mossfall/nebula/view"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	outPath := flag.String("out", "", "Output PNG path")
	passes := flag.Int("passes", 500, "Number of sampling passes to accumulate")
	centerX := flag.Float64("cx", 0, "View center, real axis")
	centerY := flag.Float64("cy", 0, "View center, imaginary axis")
	zoom := flag.Float64("zoom", 1, "View zoom level")
	mode := flag.String("mode", "", "Tone mode: classic, nebula or nebula_aesthetic (empty = use config)")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	if *outPath == "" {
		log.Fatal("--out is required")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	hist := sim.NewHistogram(cfg.Screen.Width, cfg.Screen.Height)
	kernel, err := sim.NewKernel(hist, 0)
	if err != nil {
		log.Fatalf("failed to start compute kernel: %v", err)
	}
	defer kernel.Close()

	vc := view.New(cfg.Screen.Width, cfg.Screen.Height, view.Params{
		MinZoom:      cfg.View.MinZoom,
		MaxZoom:      cfg.View.MaxZoom,
		Damping:      cfg.View.Damping,
		BaseHalf:     cfg.View.BaseHalf,
		RegionExpand: cfg.Sampling.RegionExpand,
		BiasCap:      cfg.Sampling.BiasCap,
	})
	vc.SetTarget(*centerX, *centerY, *zoom)
	for vc.Step() {
	}

	toneMode := render.ModeClassic
	thresholds := sim.EffectiveThresholds(cfg.Iterations.Red, cfg.Iterations.Green, cfg.Iterations.Blue)
	switch pick(*mode, cfg.Tone.Mode) {
	case "classic":
		thresholds = sim.ClassicThresholds(cfg.Iterations.Classic)
	case "nebula_aesthetic":
		toneMode = render.ModeAesthetic
	}

	st := vc.State()
	hx, hy := vc.HalfExtents()
	params := sim.PassParams{
		Thresholds:       thresholds,
		Rot:              sim.NewRotation(cfg.Rotation.AngleXZ, cfg.Rotation.AngleYW),
		CenterX:          st.CenterX,
		CenterY:          st.CenterY,
		HalfX:            hx,
		HalfY:            hy,
		BiasFraction:     vc.BiasFraction(),
		BiasRegion:       vc.SampleRegion(),
		QuickRejectIters: cfg.Sampling.QuickRejectIters,
		Width:            hist.Width,
		Height:           hist.Height,
	}

	seeder := entropy.NewSeeder(nil, rngSeed)
	start := time.Now()
	kernel.Dispatch(sim.OpClear, 0, params)
	for i := 0; i < *passes; i++ {
		params.Seed = seeder.NextSeed()
		kernel.Dispatch(sim.OpSimulate, cfg.Sampling.LanesPerDispatch, params)
	}
	elapsed := time.Since(start)

	tones := render.NewToneMapper(cfg.Screen.Width, cfg.Screen.Height)
	tones.Map(hist, int64(*passes), toneMode)

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *outPath, err)
	}
	defer f.Close()
	if err := png.Encode(f, tones.Image()); err != nil {
		log.Fatalf("failed to encode PNG: %v", err)
	}

	fmt.Printf("baked %d passes in %s (%d samples plotted) -> %s\n",
		*passes, elapsed.Round(time.Millisecond), hist.Total(), *outPath)
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
