// Command migrate applies database migrations with goose. It exists for
// operators; the API server also applies pending migrations at startup.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"nexus_backend/platform/config"
	"nexus_backend/platform/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with migration files")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	sqlDB, err := goose.OpenDBWithDriver("pgx", cfg.GetDatabaseURL())
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = sqlDB.Close() }()

	ctx := context.Background()
	switch command {
	case "up":
		err = goose.UpContext(ctx, sqlDB, *dir)
	case "down":
		err = goose.DownContext(ctx, sqlDB, *dir)
	case "status":
		err = goose.StatusContext(ctx, sqlDB, *dir)
	case "version":
		err = goose.VersionContext(ctx, sqlDB, *dir)
	default:
		log.Error("unknown migrate command", "command", command)
		os.Exit(2)
	}
	if err != nil {
		log.Error("migration failed", "command", command, "error", err)
		os.Exit(1)
	}

	log.Info("migration complete", "command", command)
}
