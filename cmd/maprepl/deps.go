package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/maprepl/internal/backend"
	"github.com/cristianoliveira/maprepl/internal/config"
	"github.com/cristianoliveira/maprepl/internal/geocode"
	"github.com/cristianoliveira/maprepl/internal/logging"
	"github.com/cristianoliveira/maprepl/internal/mapview"
	"github.com/cristianoliveira/maprepl/internal/metrics"
	"github.com/cristianoliveira/maprepl/internal/overlay"
	"github.com/cristianoliveira/maprepl/internal/repl"
	"github.com/cristianoliveira/maprepl/internal/search"
	"github.com/cristianoliveira/maprepl/internal/storage"
)

// app holds the collaborators shared by the TUI and the exec command.
type app struct {
	log        logging.Logger
	metrics    *metrics.Metrics
	store      repl.Store
	session    *repl.Session
	dispatcher *repl.Dispatcher
	controller *mapview.Controller
}

// newApp wires the application from the global config. The metrics
// endpoint, when configured, is served until ctx is done.
func newApp(ctx context.Context) (*app, error) {
	log := logging.GetGlobal()
	m := metrics.New()

	matcher, err := newMatcher(config.Get("search_match", "exact"))
	if err != nil {
		return nil, err
	}
	mode, _ := repl.ParseMode(config.Get("default_mode", string(repl.ModeBrief)))

	store := storage.NewFromConfig(log)
	session := repl.NewSession(mode)
	api := backend.New(config.Get("backend_url", ""), backend.WithMetrics(m), backend.WithLogger(log))

	reg := repl.NewRegistry()
	err = repl.RegisterBuiltins(reg, session, repl.Config{
		DataDir:    config.Get("data_dir", "."),
		HasHeaders: config.GetBool("csv_has_headers", true),
		Matcher:    matcher,
		Broadband:  api,
	})
	if err != nil {
		return nil, fmt.Errorf("register builtins: %w", err)
	}
	loadCustomCommands(reg, config.Get("commands_file", ""), log)

	dispatcher := repl.NewDispatcher(reg, store, repl.WithLogger(log), repl.WithMetrics(m))

	httpOpts := []geocode.Option{geocode.WithMetrics(m), geocode.WithLogger(log)}
	controller := mapview.NewController(mapview.Deps{
		Overlays:  overlay.NewFetcher(api, log),
		Broadband: api,
		Geocoder:  geocode.NewGeocoder(config.Get("geocode_url", ""), config.Get("mapbox_access_token", ""), httpOpts...),
		Census:    geocode.NewCensusLocator(config.Get("census_url", ""), httpOpts...),
		Logger:    log,
		Metrics:   m,
	})

	if addr := config.Get("metrics_addr", ""); addr != "" {
		go func() {
			if err := m.Serve(ctx, addr); err != nil {
				log.Error("metrics server stopped", "addr", addr, "error", err.Error())
			}
		}()
	}

	return &app{
		log:        log,
		metrics:    m,
		store:      store,
		session:    session,
		dispatcher: dispatcher,
		controller: controller,
	}, nil
}

// newMatcher resolves the search provider by name. Config validation
// normalizes unknown names to exact before they get here.
func newMatcher(name string) (search.Provider, error) {
	matcher, err := search.New(name)
	if err != nil {
		return nil, fmt.Errorf("search matcher: %w", err)
	}
	return matcher, nil
}

func loadCustomCommands(reg *repl.Registry, path string, log logging.Logger) {
	loaded, skipped, err := repl.LoadCommandsFile(reg, path)
	if err != nil {
		console.Warning(fmt.Sprintf("failed to read commands file %s: %v", path, err))
		return
	}
	for _, s := range skipped {
		console.Warning(fmt.Sprintf("skipping custom command: %v", s))
	}
	if loaded > 0 {
		log.Info("custom commands loaded", "path", path, "count", loaded)
	}
}

// Run dispatches one line and waits for it to be recorded.
func (a *app) Run(ctx context.Context, line string) (repl.Entry, bool, error) {
	return a.dispatcher.Run(ctx, line)
}

// Entries returns the history recorded in this session.
func (a *app) Entries() []repl.Entry {
	return a.store.Entries()
}

// Mode is the session's current display mode.
func (a *app) Mode() repl.Mode {
	return a.session.Mode()
}

// Close releases the history store.
func (a *app) Close() error {
	return a.store.Close()
}
