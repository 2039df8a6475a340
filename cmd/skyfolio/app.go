package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/skyfolio/engine"
	"github.com/Carmen-Shannon/skyfolio/engine/audio"
	"github.com/Carmen-Shannon/skyfolio/engine/bridge"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/input"
	"github.com/Carmen-Shannon/skyfolio/engine/island"
	"github.com/Carmen-Shannon/skyfolio/engine/terminal"
	"github.com/Carmen-Shannon/skyfolio/engine/tuning"
	"github.com/Carmen-Shannon/skyfolio/engine/window"
)

const (
	frontendHeadless = "headless"
	frontendWindow   = "window"
	frontendTerminal = "terminal"
)

type config struct {
	addr        string
	catalogPath string
	tuningPath  string
	frontend    string
	audio       bool
	profile     bool
}

// app wires one island session to its front-ends.
type app struct {
	logger   *log.Logger
	tuning   tuning.Tuning
	island   island.Island
	server   bridge.Server
	keyboard input.Keyboard
	intent   input.Source
	terminal terminal.Terminal
	window   window.Window
	chime    audio.Chime
	detach   []func()
}

// newApp loads the catalog and tuning and builds the island, the websocket bridge and the
// requested local front-end. The window, when requested, is created on the calling goroutine.
func newApp(cfg config, logger *log.Logger) (*app, error) {
	switch cfg.frontend {
	case frontendHeadless, frontendWindow, frontendTerminal:
	default:
		return nil, fmt.Errorf("unknown front-end %q", cfg.frontend)
	}

	cat := catalog.Default()
	if cfg.catalogPath != "" {
		loaded, err := catalog.Load(cfg.catalogPath)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}
	tun := tuning.Default()
	if cfg.tuningPath != "" {
		loaded, err := tuning.Load(cfg.tuningPath)
		if err != nil {
			return nil, err
		}
		tun = loaded
	}

	a := &app{
		logger:   logger,
		tuning:   tun,
		keyboard: input.NewKeyboard(),
	}
	a.island = island.NewIsland(
		island.WithCatalog(cat),
		island.WithTuning(tun),
		island.WithLogger(logger),
	)
	a.server = bridge.NewServer(a.island,
		bridge.WithLogger(logger),
		bridge.WithFrameInterval(tun.FrameInterval()),
	)
	a.detach = append(a.detach, a.island.Bus().SubscribeAll(a.server.BroadcastEvent))

	sources := []input.Source{a.keyboard, a.server}
	switch cfg.frontend {
	case frontendTerminal:
		a.terminal = terminal.NewTerminal(a.island, terminal.WithKeyboard(a.keyboard))
		a.detach = append(a.detach, a.terminal.Attach(a.island.Bus()))
		sources = append(sources, a.terminal)
	case frontendWindow:
		controls := newWindowControls(a.keyboard, a.island)
		w, err := window.NewWindow(
			window.WithTitle("skyfolio"),
			window.WithKeyCallbacks(controls.keyDown, controls.keyUp),
		)
		if err != nil {
			return nil, err
		}
		a.window = w
	}
	a.intent = input.Merge(sources...)

	if cfg.audio {
		chime := audio.NewChime()
		if err := chime.Init(); err != nil {
			logger.Printf("[Main] audio disabled: %v", err)
		} else {
			a.chime = chime
			a.detach = append(a.detach, chime.Attach(a.island.Bus()))
		}
	}
	return a, nil
}

// tick advances the simulation. Runs on the engine tick goroutine.
func (a *app) tick(dt float32) {
	a.island.Tick(dt, a.intent.Intent())
}

// frame publishes the latest state to every front-end. Runs on the engine frame goroutine.
func (a *app) frame(float32) {
	snap := a.island.Snapshot()
	a.server.Broadcast(snap)
	if a.terminal != nil {
		a.terminal.Render(snap)
	}
	if a.window != nil {
		a.window.SetTitle(statusTitle(snap))
	}
}

// mux serves the websocket bridge plus plain HTTP views of the session.
func (a *app) mux() *http.ServeMux {
	m := http.NewServeMux()
	m.Handle("/ws", a.server.Handler())
	m.HandleFunc("/state", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(rw).Encode(bridge.NewFrameMessage(a.island.Snapshot())); err != nil {
			a.logger.Printf("[Main] encode state: %v", err)
		}
	})
	m.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok\n"))
	})
	return m
}

func (a *app) close() {
	for _, d := range a.detach {
		d()
	}
	if a.chime != nil {
		a.chime.Close()
	}
}

// run builds the app and blocks until ctx is cancelled, the window closes or the terminal quits.
func run(ctx context.Context, cfg config, logger *log.Logger) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	opts := []engine.EngineBuilderOption{
		engine.WithLogger(logger),
		engine.WithTickRate(float64(a.tuning.TickRateHz)),
		engine.WithFrameRate(float64(a.tuning.FrameRateHz)),
		engine.WithTickCallback(a.tick),
		engine.WithFrameCallback(a.frame),
		engine.WithProfiling(cfg.profile),
	}
	if a.window != nil {
		opts = append(opts, engine.WithWindow(a.window))
	}
	eng := engine.NewEngine(opts...)

	var wg sync.WaitGroup
	defer wg.Wait()

	go func() {
		select {
		case <-ctx.Done():
			eng.Quit()
		case <-eng.Done():
		}
	}()

	if cfg.addr != "" {
		srv := &http.Server{Addr: cfg.addr, Handler: a.mux(), ReadHeaderTimeout: 5 * time.Second}
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Printf("[Main] serving on %s", cfg.addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("[Main] http server: %v", err)
				eng.Quit()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Printf("[Main] http shutdown: %v", err)
			}
		}()
	}

	if a.terminal != nil {
		termCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer eng.Quit()
			if err := a.terminal.Run(termCtx); err != nil {
				logger.Printf("[Main] terminal: %v", err)
			}
		}()
		go func() {
			<-eng.Done()
			cancel()
		}()
	}

	eng.Run()
	logger.Printf("[Main] stopped")
	return nil
}
