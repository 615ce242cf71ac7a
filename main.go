package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fable/internal/app"
	"github.com/llehouerou/fable/internal/book"
	"github.com/llehouerou/fable/internal/config"
	"github.com/llehouerou/fable/internal/icons"
	"github.com/llehouerou/fable/internal/importer"
	"github.com/llehouerou/fable/internal/mpris"
	"github.com/llehouerou/fable/internal/notify"
	"github.com/llehouerou/fable/internal/playback"
	"github.com/llehouerou/fable/internal/player"
	"github.com/llehouerou/fable/internal/state"
	"github.com/llehouerou/fable/internal/stderr"
	"github.com/llehouerou/fable/internal/tts"
	"github.com/llehouerou/fable/internal/ui/cover"
)

func main() {
	importPath := flag.String("import", "", "import a manuscript and exit")
	flag.Parse()

	if err := run(*importPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(importPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	icons.Init(cfg.Icons)

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	store := book.New(stateMgr.DB())

	if importPath != "" {
		return runImport(store, cfg, importPath)
	}

	// A crash mid-synthesis leaves segments stuck in processing.
	if err := store.ResetProcessingSegments(); err != nil {
		return fmt.Errorf("reset segments: %w", err)
	}

	// Capture fd 2 before the audio device initializes; ALSA writes its
	// warnings there and they would corrupt the TUI.
	if err := stderr.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: stderr capture unavailable: %v\n", err)
	}
	defer stderr.Stop()

	audioDir := cfg.AudioDir
	if audioDir == "" {
		audioDir = filepath.Join(xdg.DataHome, "fable", "audio")
	}
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}

	// Without an engine the app still imports and plays existing audio.
	var engine *tts.Client
	if cfg.HasEngineConfig() {
		ec := cfg.GetEngineConfig()
		engine = tts.NewClient(ec.URL, ec.Voice, ec.Speed,
			time.Duration(ec.TimeoutSeconds)*time.Second)
	}
	worker := tts.NewWorker(engine, store, audioDir)
	worker.Start()
	defer worker.Close()

	device := player.New()
	defer device.Close()

	notifier, err := notify.New()
	if err != nil {
		notifier = nil
	}

	scheduler := playback.New(
		device,
		app.NewSequenceSource(store, stateMgr),
		stateMgr,
		app.NewPlaybackNotifier(notifier),
	)
	defer scheduler.Close()

	renderer := cover.New(cover.Detect(), newCoverCache())

	m, err := app.New(app.Deps{
		Config:    cfg,
		StateMgr:  stateMgr,
		Store:     store,
		Scheduler: scheduler,
		Device:    device,
		Worker:    worker,
		Engine:    engine,
		Cover:     renderer,
	})
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	// Media keys are nice to have; no D-Bus session is not an error.
	if adapter, err := mpris.New(app.NewMediaController(scheduler, device, store, stateMgr)); err == nil {
		defer adapter.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func newCoverCache() *cover.Cache {
	cache, err := cover.NewCache(xdg.CacheHome)
	if err != nil {
		return nil
	}
	return cache
}

// runImport parses a manuscript and stores it without starting the TUI.
func runImport(store *book.Store, cfg *config.Config, path string) error {
	opts := importer.Options{MaxSegmentChars: cfg.GetImportConfig().MaxSegmentChars}
	draft, err := importer.ParseFile(path, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := store.ImportBook(*draft); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	segments := 0
	for _, c := range draft.Chapters {
		segments += len(c.Segments)
	}
	fmt.Printf("Imported %q: %d chapters, %d segments\n",
		draft.Title, len(draft.Chapters), segments)
	return nil
}
