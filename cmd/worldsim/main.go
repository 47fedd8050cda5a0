// Command worldsim runs the deterministic, seed-driven fantasy-world
// simulation: it loads or seeds a World, then advances it either in one
// batch (SIM_BATCH_DAYS) or in real time until interrupted, snapshotting to
// a single world.json file as it goes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mbutler/war-machine-log/internal/config"
	"github.com/mbutler/war-machine-log/internal/kernel"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
	"github.com/mbutler/war-machine-log/internal/worldstore"
)

// turnMinutes/hourTurns/dayHours fix the scheduler's cadence ladder to
// spec.md's turn=10 world-minutes, 6 turns/hour, 24 hours/day.
const (
	turnMinutes = 10
	hourTurns   = 6
	dayHours    = 24
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		slog.Error("failed to create log dir", "error", err)
		os.Exit(1)
	}
	worldPath := filepath.Join(cfg.LogDir, "world.json")
	store := worldstore.New(worldPath)

	w, err := loadOrSeedWorld(cfg, store, worldPath)
	if err != nil {
		slog.Error("world load/seed failed", "error", err)
		os.Exit(1)
	}

	k := kernel.New(w, store, turnMinutes, hourTurns, dayHours)
	k.EmitGenesis()

	slog.Info("world ready",
		"seed", w.Seed,
		"turn", w.Turn,
		"worldTime", w.WorldTime,
		"settlements", len(w.Settlements),
		"npcs", len(w.NPCs),
		"factions", len(w.Factions),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.BatchDays > 0 {
		runBatch(k, cfg)
		return
	}
	runRealTimeOrCatchUp(ctx, k, cfg)
}

// loadOrSeedWorld loads the persisted World at store's path unless it's
// missing or FORCE_SEED is set, in which case a fresh World is seeded from
// cfg.Seed. Grounded on the teacher's cmd/worldsim/main.go
// db.HasWorldState() branch, adapted from SQLite-backed loading to the
// single-file worldstore.Store.
func loadOrSeedWorld(cfg config.Config, store *worldstore.Store, worldPath string) (*worldmodel.World, error) {
	if !cfg.ForceSeed && store.Exists() {
		slog.Info("found saved world state, loading...", "path", worldPath)
		w, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("load world: %w", err)
		}
		return w, nil
	}

	slog.Info("seeding new world", "seed", cfg.Seed)
	w := worldmodel.Seed(worldmodel.SeedConfig{
		Seed:           cfg.Seed,
		StartWorldTime: cfg.StartWorldTime,
	})
	if err := store.Save(w); err != nil {
		return nil, fmt.Errorf("initial save: %w", err)
	}
	return w, nil
}

// runBatch advances the world cfg.BatchDays world-days with no wall-clock
// pacing, then exits 0. Grounded on spec.md §6's SIM_BATCH_DAYS knob and
// the teacher's db.SaveWorldState-on-fresh-generation pattern, generalized
// to an explicit bounded run mode.
func runBatch(k *kernel.Kernel, cfg config.Config) {
	start, err := time.Parse("2006-01-02T15:04:05", k.World.WorldTime)
	if err != nil {
		slog.Error("failed to parse world time for batch run", "error", err)
		os.Exit(1)
	}
	target := start.AddDate(0, 0, cfg.BatchDays).Format("2006-01-02T15:04:05")

	slog.Info("running batch", "days", cfg.BatchDays, "target", target)
	err = k.RunCatchUp(target, 0, func(turn uint64) {
		if turn%1000 == 0 {
			slog.Info("batch progress", "turn", turn, "worldTime", k.World.WorldTime)
		}
	})
	if err != nil {
		slog.Error("batch run failed", "error", err)
		os.Exit(1)
	}
	slog.Info("batch run complete", "turn", k.World.Turn, "worldTime", k.World.WorldTime)
}

// runRealTimeOrCatchUp first fast-forwards the world to the present moment
// if SIM_CATCH_UP is set (per spec.md §6 default true, capped at 7
// world-days so a long-dormant save doesn't block startup for minutes),
// then hands off to the paced real-time scheduler until ctx is canceled.
func runRealTimeOrCatchUp(ctx context.Context, k *kernel.Kernel, cfg config.Config) {
	if cfg.CatchUp {
		runStartupCatchUp(k, cfg)
	}

	slog.Info("starting real-time simulation", "timeScale", cfg.TimeScale)
	err := k.RunRealTime(ctx, time.Duration(turnMinutes)*time.Minute, cfg.TimeScale)
	if err != nil {
		slog.Error("final save failed", "error", err)
		os.Exit(1)
	}
	slog.Info("simulation stopped, world state saved")
}

// maxCatchUpDays caps a single startup catch-up run so an old save doesn't
// stall the process indefinitely, per spec.md §4.2's documented catch-up
// cap.
const maxCatchUpDays = 7

// runStartupCatchUp sizes the catch-up target to the real time actually
// elapsed since the world's last tick (World.LastRealTickAt), scaled by
// cfg.TimeScale, capped at maxCatchUpDays of world time — per spec.md §1/
// §4.2/§8 scenario C. A world with no parseable LastRealTickAt (a snapshot
// predating this field, or a fresh seed that hasn't ticked yet) falls back
// to the cap, matching the prior unconditional behavior for that one case
// only instead of on every startup.
func runStartupCatchUp(k *kernel.Kernel, cfg config.Config) {
	worldNow, err := time.Parse("2006-01-02T15:04:05", k.World.WorldTime)
	if err != nil {
		return
	}
	weekCap := worldNow.AddDate(0, 0, maxCatchUpDays)
	target := weekCap

	if lastReal, err := time.Parse(time.RFC3339, k.World.LastRealTickAt); err == nil {
		elapsedReal := time.Since(lastReal)
		scaled := worldNow.Add(time.Duration(float64(elapsedReal) * cfg.TimeScale))
		if scaled.Before(weekCap) {
			target = scaled
		}
	}

	targetStr := target.Format("2006-01-02T15:04:05")
	slog.Info("catching up", "target", targetStr, "speed", cfg.CatchUpSpeed)
	if err := k.RunCatchUp(targetStr, cfg.CatchUpSpeed, nil); err != nil {
		slog.Error("catch-up failed", "error", err)
		os.Exit(1)
	}
}
