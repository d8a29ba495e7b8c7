package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"mages-tower/internal/audio"
	"mages-tower/internal/config"
	"mages-tower/internal/game"
	"mages-tower/internal/save"
	"mages-tower/internal/storage"
	"mages-tower/internal/storage/sqlite"
	"mages-tower/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	env, err := config.Load()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(env.DataDir, 0o755); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}

	// The screen owns stdout, so logs go to a file.
	logFile, err := os.OpenFile(filepath.Join(env.DataDir, "mages-tower.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	log := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: env.Level()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, telemetry.ServiceName, env.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer shutdown(context.Background())
	tracer := telemetry.Tracer("mages-tower")

	store, err := sqlite.Open(filepath.Join(env.DataDir, "tower.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	player := audio.Open(env.Sound, log)
	defer player.Close()

	seed := env.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	app := game.NewApp(screen, game.Options{
		Rules:      env.Rules(),
		Rand:       rand.New(rand.NewSource(seed)),
		Repo:       save.NewRepository(store, storage.NewMemory(), log, tracer),
		Audio:      player,
		Log:        log,
		Tracer:     tracer,
		ExportPath: env.ExportPath,
		RunLogDir:  env.DataDir,
	})
	log.Info("tower: session started", "data_dir", env.DataDir, "seed", seed)
	return app.Run(ctx)
}
