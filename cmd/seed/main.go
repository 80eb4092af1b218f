package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/fichaje/roster/internal/infra"
	"github.com/fichaje/roster/internal/repository"
	"github.com/fichaje/roster/internal/seed"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx := context.Background()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	players := repository.NewPlayerRepository()
	generator := seed.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	now := time.Now()

	for i := 0; i < cfg.SeedPlayers; i++ {
		player, err := generator.Player(now)
		if err != nil {
			return fmt.Errorf("generate player: %w", err)
		}
		if err := players.Create(ctx, pool, player); err != nil {
			return fmt.Errorf("insert player: %w", err)
		}
		logger.Info("seeded player", "player_id", player.ID, "full_name", player.FullName())
	}

	logger.Info("seed complete", "players", cfg.SeedPlayers)
	return nil
}
