package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mossfall/nebula/config"
	"github.com/mossfall/nebula/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	frames := flag.Int("frames", 0, "Stop after N frames (0 = unlimited; required in headless mode)")
	outPath := flag.String("out", "", "Write a PNG of the final frame to this path")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := viewer.Options{
		Seed:      rngSeed,
		Headless:  *headless,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		// Headless mode - pure CPU accumulation, no raylib needed
		if *frames <= 0 {
			slog.Error("headless mode requires -frames > 0")
			os.Exit(1)
		}

		v, err := viewer.New(opts)
		if err != nil {
			slog.Error("failed to start viewer", "error", err)
			os.Exit(1)
		}
		defer v.Unload()

		slog.Info("starting headless accumulation",
			"seed", rngSeed,
			"frames", *frames,
		)

		for i := 0; i < *frames; i++ {
			v.UpdateHeadless()
		}

		if *outPath != "" {
			if err := v.ExportPNG(*outPath); err != nil {
				slog.Error("failed to export image", "error", err)
				os.Exit(1)
			}
			slog.Info("image written", "path", *outPath, "passes", v.Passes())
		}
	} else {
		// Graphical mode
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Nebula")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		v, err := viewer.New(opts)
		if err != nil {
			slog.Error("failed to start viewer", "error", err)
			os.Exit(1)
		}
		defer v.Unload()

		for !rl.WindowShouldClose() {
			v.Update()
			v.Draw()

			if *frames > 0 && int(v.Frame()) >= *frames {
				break
			}
		}

		if *outPath != "" {
			if err := v.ExportPNG(*outPath); err != nil {
				slog.Error("failed to export image", "error", err)
			}
		}
	}
}
