// Package main provides the entry point for the Vessel Studio application.
package main

import (
	"os"

	"vessel-studio/internal/app"
	"vessel-studio/internal/config"
	"vessel-studio/internal/drawing"
	"vessel-studio/internal/extract"
	"vessel-studio/internal/version"
	"vessel-studio/ui/mainwindow"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}
	log.Info().Str("version", version.Version).Msg("starting " + version.Name)

	state := app.NewState()
	visual := state.Vessel.Visual
	visual.MaterialKey = cfg.DefaultMaterial
	visual.LightingKey = cfg.DefaultLighting
	state.SetVisual(visual)
	state.SetModified(false)

	extractor, closeExtractor, err := buildExtractor(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing extraction")
	}
	defer closeExtractor()

	pipeline := drawing.NewPipeline(extractor, log)
	pipeline.SetDispatch(fyne.Do)

	fyneApp := fyneapp.NewWithID("vessel-studio")
	win := mainwindow.New(fyneApp, state, pipeline)
	win.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))

	if len(os.Args) > 1 {
		if err := state.LoadProject(os.Args[1]); err != nil {
			log.Warn().Err(err).Str("path", os.Args[1]).Msg("failed to load project")
		}
	}

	win.ShowAndRun()
}

// buildExtractor selects the remote extraction service when an endpoint is
// configured, falling back to the local OCR engine.
func buildExtractor(cfg *config.Config, log zerolog.Logger) (extract.Extractor, func(), error) {
	if cfg.ExtractEndpoint != "" {
		log.Info().Str("endpoint", cfg.ExtractEndpoint).Msg("using remote extraction")
		return extract.NewHTTPExtractor(cfg.ExtractEndpoint, cfg.ExtractTimeout, log), func() {}, nil
	}
	engine, err := extract.NewOCREngine(log)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("using local OCR extraction")
	return engine, func() { _ = engine.Close() }, nil
}
