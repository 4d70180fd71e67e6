// Command cityd runs the isle-city game server: island generation, the
// game session, the simulation loop, persistence, and the HTTP API.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/isle-city/internal/api"
	"github.com/talgya/isle-city/internal/catalog"
	"github.com/talgya/isle-city/internal/config"
	"github.com/talgya/isle-city/internal/engine"
	"github.com/talgya/isle-city/internal/game"
	"github.com/talgya/isle-city/internal/persistence"
	"github.com/talgya/isle-city/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfgPath := os.Getenv("CITYD_CONFIG")
	if cfgPath == "" {
		cfgPath = "cityd.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// ── Catalog ───────────────────────────────────────────────────────
	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			slog.Error("catalog load failed", "path", cfg.CatalogPath, "error", err)
			os.Exit(1)
		}
		slog.Info("catalog loaded", "path", cfg.CatalogPath, "buildings", cat.Len())
	} else {
		cat = catalog.Default()
		slog.Info("using built-in catalog", "buildings", cat.Len())
	}

	// ── Persistence ───────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.OpenSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	store := &persistence.Fallback{
		Primary: db,
		Local:   persistence.NewFile(cfg.SavePath),
	}
	defer store.Close()
	slog.Info("save store ready", "db", cfg.DBPath, "file", cfg.SavePath)

	// ── Island + Session ──────────────────────────────────────────────
	genCfg := world.GenConfig{Size: cfg.MapSize, Seed: cfg.Seed}
	island := world.Generate(genCfg)
	for kind, n := range island.TileCounts() {
		slog.Info("terrain", "type", kind.Name(), "count", n)
	}

	session := game.NewSession(cat, island)

	if blob, found, err := store.Load(); err != nil {
		slog.Error("save load failed", "error", err)
		os.Exit(1)
	} else if found {
		if err := session.Restore(blob); err != nil {
			slog.Error("save restore failed", "error", err)
			os.Exit(1)
		}
		p := session.Progress()
		slog.Info("session restored",
			"player", p.PlayerName,
			"level", p.Level,
			"coins", humanize.Comma(p.Coins),
			"buildings", len(session.Buildings()),
			"last_save", humanize.Time(blob.Progress.LastSave),
		)
	} else {
		slog.Info("no saved state found, starting fresh city",
			"coins", humanize.Comma(session.Progress().Coins))
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	saveNow := func() {
		blob := session.Snapshot()
		go func() {
			if err := store.Save(blob); err != nil {
				slog.Error("save failed", "error", err)
			}
		}()
	}

	apiServer := &api.Server{Session: session, Port: cfg.APIPort, OnMutate: saveNow}
	apiServer.Start()

	// ── Simulation loop ───────────────────────────────────────────────
	loop := engine.NewLoop()
	loop.Interval = cfg.TickInterval.Std()
	loop.IncomeEvery = cfg.IncomeEvery.Std()
	loop.AutosaveEvery = cfg.AutosaveEvery.Std()

	// Keep the day length stable even when the base interval changes.
	clockStep := game.ClockStep * loop.Interval.Seconds() / engine.DefaultInterval.Seconds()

	loop.OnStep = func() {
		session.AdvanceClock(clockStep)
	}
	loop.OnIncome = func() {
		if earned := session.ApplyIncome(); earned > 0 {
			slog.Debug("income applied", "coins", earned)
		}
		apiServer.PushState()
	}
	loop.OnAutosave = saveNow

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		loop.Stop()
	}()

	fmt.Printf("\nIsle City is open: %dx%d island, %d buildings available.\n",
		cfg.MapSize, cfg.MapSize, cat.Len())
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.APIPort)
	fmt.Println("Running... (Ctrl+C to stop)")

	loop.Run()

	// Final save on shutdown.
	slog.Info("final save...")
	if err := store.Save(session.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Server stopped. City saved.")
}
