package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/interfacer/config"
	"github.com/OpticalFlyer/interfacer/descriptor"
	"github.com/OpticalFlyer/interfacer/ui"
	"github.com/OpticalFlyer/interfacer/watch"
)

const snapshotFile = "snapshot.yaml"

// Interfacer implements ebiten.Game interface.
type Interfacer struct {
	cfg       config.Config
	ui        *ui.Controller
	logger    *zap.Logger
	watcher   *watch.Watcher
	debugMode bool
	quit      bool

	// Pointer state
	lastMouseX int
	lastMouseY int

	// Touch state
	lastTouchX map[ebiten.TouchID]float64
	lastTouchY map[ebiten.TouchID]float64

	chars   []rune
	keys    []ebiten.Key
	touches []ebiten.TouchID
}

func (g *Interfacer) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.reloadChanged()
	g.pumpInput()
	g.ui.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Interfacer) Draw(screen *ebiten.Image) {
	g.ui.Draw(screen)

	// Draw debug overlay if enabled
	if g.debugMode {
		g.ui.ShowDebugInfo(screen)
	}
}

func (g *Interfacer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// reloadChanged rebuilds the session from disk when the watcher saw a
// descriptor change. It runs on the game loop so the controller is never
// touched from another goroutine.
func (g *Interfacer) reloadChanged() {
	if g.watcher == nil {
		return
	}
	changed := false
drain:
	for {
		select {
		case path, ok := <-g.watcher.Changes():
			if !ok {
				g.watcher = nil
				break drain
			}
			g.logger.Info("interface changed", zap.String("path", path))
			changed = true
		default:
			break drain
		}
	}
	if !changed {
		return
	}
	docs, err := descriptor.LoadDir(context.Background(), g.cfg.Interfaces)
	if err != nil {
		g.logger.Warn("reload skipped", zap.Error(err))
		return
	}
	if err := g.ui.ReloadDocuments(docs); err != nil {
		g.logger.Warn("reload failed", zap.Error(err))
		return
	}
	if err := g.bindScore(); err != nil {
		g.logger.Warn("score binding lost", zap.Error(err))
	}
}

func (g *Interfacer) saveSnapshot() {
	f, err := os.Create(snapshotFile)
	if err != nil {
		g.logger.Warn("snapshot not saved", zap.Error(err))
		return
	}
	defer f.Close()
	if err := g.ui.SaveSnapshot(f); err != nil {
		g.logger.Warn("snapshot not saved", zap.Error(err))
		return
	}
	g.logger.Info("snapshot saved", zap.String("path", snapshotFile))
}

func (g *Interfacer) loadSnapshot() {
	f, err := os.Open(snapshotFile)
	if err != nil {
		g.logger.Warn("snapshot not loaded", zap.Error(err))
		return
	}
	defer f.Close()
	if err := g.ui.LoadSnapshot(f); err != nil {
		g.logger.Warn("snapshot not loaded", zap.Error(err))
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	uiController := ui.NewController(
		ui.WithLogger(logger),
		ui.WithSize(cfg.Window.Width, cfg.Window.Height),
		ui.WithStrictIDs(cfg.StrictIDs),
	)
	uiController.RegisterComponentType("score-keeper", newScoreKeeper)
	uiController.SetOverlayOpacity(0)

	app := &Interfacer{
		cfg:    cfg,
		ui:     uiController,
		logger: logger,
	}
	app.bindCounter()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := uiController.LoadAll(ctx, cfg.Interfaces); err != nil {
		logger.Fatal("loading interfaces", zap.Error(err))
	}
	if err := app.bindScore(); err != nil {
		logger.Fatal("binding score", zap.Error(err))
	}
	uiController.Focus(cfg.Focus)

	if cfg.Watch {
		w, err := watch.New(cfg.Interfaces, logger)
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			defer w.Close()
			app.watcher = w
			go func() {
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("watcher stopped", zap.Error(err))
				}
			}()
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game stopped", zap.Error(err))
	}
}
