// Package main implements a demonstration host for the navtree library.
// It wires a navigation tree to the serial run loop, registers typed
// receivers and destinations, drives a deep-link send sequence through the
// queue, and persists the resulting navigation state.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/zeroxpunk/navtree/checkpoint"
	"github.com/zeroxpunk/navtree/config"
	"github.com/zeroxpunk/navtree/destination"
	"github.com/zeroxpunk/navtree/eventstream"
	"github.com/zeroxpunk/navtree/metric"
	"github.com/zeroxpunk/navtree/navigator"
	"github.com/zeroxpunk/navtree/runloop"
	"github.com/zeroxpunk/navtree/send"
	"github.com/zeroxpunk/navtree/statestore"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "navtree-demo"
)

// Demo destination payloads.
type homePage struct{}

type profilePage struct {
	Slug string `json:"slug"`
}

type settingsPage struct {
	Section string `json:"section"`
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a JSON or YAML config file")
	natsURL := flag.String("nats-url", nats.DefaultURL, "NATS server URL for the event stream")
	metricsAddr := flag.String("metrics-addr", "", "address for the Prometheus metrics endpoint (empty disables)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	logger := setupLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("starting navigation demo", "version", Version, "config_path", *configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Serial run loop: all navigation mutations execute on it. It runs on
	// the background context so the state save still executes after the
	// shutdown signal; Stop drains it.
	loop := runloop.New(cfg.RunLoop.QueueSize)
	if err := loop.Start(context.Background()); err != nil {
		return fmt.Errorf("starting run loop: %w", err)
	}
	defer func() {
		if err := loop.Stop(5 * time.Second); err != nil {
			logger.Warn("run loop did not drain", "error", err)
		}
	}()

	// Metrics. The registry pre-registers the core navigation collectors.
	registry := metric.NewRegistry()
	metrics := registry.Navigation
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, registry, logger)
	}

	// State store.
	store, cleanup, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer cleanup()

	// Destination registry for typed state restoration.
	destReg := destination.NewRegistry()
	for _, reg := range []*destination.Registration{
		{Tag: "home", Description: "home screen", Factory: func() any { return &homePage{} }},
		{Tag: "profile", Description: "user profile", Factory: func() any { return &profilePage{} }},
		{Tag: "settings", Description: "settings screen", Factory: func() any { return &settingsPage{} }},
	} {
		if err := destReg.Register(reg); err != nil {
			return fmt.Errorf("registering destination %q: %w", reg.Tag, err)
		}
	}

	opts := []navigator.Option{
		navigator.WithLogger(logger),
		navigator.WithExecutor(loop),
		navigator.WithMetrics(metrics),
		navigator.WithDestinationRegistry(destReg),
		navigator.WithResumeDelay(cfg.Navigation.ResumeDelay()),
	}

	// Optional NATS navigation event stream.
	if cfg.Events.Enabled {
		nc, err := nats.Connect(*natsURL, nats.Name(appName))
		if err != nil {
			return fmt.Errorf("connecting to NATS: %w", err)
		}
		defer nc.Close()
		publisher := eventstream.NewPublisher("main", nc, logger,
			eventstream.WithSubjectPrefix(cfg.Events.SubjectPrefix),
			eventstream.WithRateLimit(cfg.Events.RatePerSecond, cfg.Events.Burst))
		opts = append(opts, navigator.WithObserver(publisher))
	}

	tree := navigator.New("main", opts...)
	root := tree.Root()

	wireReceivers(root, logger)

	// Restore the previous session if one was saved.
	if err := root.LoadState(ctx, store, "session/main"); err != nil {
		logger.Info("no previous session to restore", "error", err)
	}

	// Drive a deep-link sequence through the send queue. Each step lands on
	// the run loop so the whole sequence is serialized with any concurrent
	// navigation.
	if err := loop.Submit(func() {
		root.AddCheckpoint(checkpoint.WithHandler("home", "onHome"))
		root.Push(destination.New("home", homePage{}))
		root.Send(
			send.PopAll(),
			profilePage{Slug: "alice"},
			settingsPage{Section: "privacy"},
		)
	}); err != nil {
		return fmt.Errorf("submitting deep link: %w", err)
	}

	logger.Info("demo running, press Ctrl-C to save state and exit")
	<-ctx.Done()

	// Persist on the run loop so the snapshot is consistent.
	done := make(chan error, 1)
	if err := loop.Submit(func() {
		done <- root.SaveState(context.Background(), store, "session/main")
	}); err != nil {
		return fmt.Errorf("submitting save: %w", err)
	}
	if err := <-done; err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	stats := loop.Stats()
	logger.Info("shut down",
		"executed", stats.Executed, "dropped", stats.Dropped, "final_depth", root.Count())
	return nil
}

// wireReceivers registers the typed receivers that turn deep-link values
// into navigation.
func wireReceivers(root *navigator.Node, logger *slog.Logger) {
	navigator.On(root, func(p profilePage) send.Resume {
		logger.Info("navigating to profile", "slug", p.Slug)
		root.Push(destination.New("profile", p))
		return send.Auto()
	})

	navigator.On(root, func(s settingsPage) send.Resume {
		logger.Info("presenting settings", "section", s.Section)
		if err := root.Present(destination.Sheet("settings", s)); err != nil {
			logger.Error("presenting settings failed", "error", err)
			return send.Cancel()
		}
		return send.Auto()
	})

	root.ReceiveFor("onHome", func(value any, _ *send.Pending) send.Resume {
		logger.Info("returned home", "value", value)
		return send.Immediate()
	})
}

// openStore builds the configured state store backend.
func openStore(ctx context.Context, cfg config.StoreConfig) (statestore.Store, func(), error) {
	switch cfg.Backend {
	case config.StoreSQLite:
		db, err := statestore.NewSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return statestore.NewMemory(), func() {}, nil
	}
}

func serveMetrics(addr string, registry *metric.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
