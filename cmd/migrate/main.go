// Command migrate applies or inspects the PostgreSQL schema without starting
// the server.
//
//	migrate [up|down|status]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"skill-passport/internal/config"
	"skill-passport/internal/database/migration"
	dbpostgres "skill-passport/internal/database/postgres"
	"skill-passport/internal/logging"
)

func main() {
	ctx := context.Background()
	logger := logging.New("info", "text")

	if err := run(ctx, os.Args[1:], logger); err != nil {
		logger.Error(ctx, "migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, logger logging.Logger) error {
	cmd := "up"
	if len(args) > 0 {
		cmd = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.UsesPostgres() {
		return fmt.Errorf("STORE_DRIVER must be %q to run migrations", config.StoreDriverPostgres)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	switch cmd {
	case "up":
		err = migration.Up(ctx, db.SQLDB())
	case "down":
		err = migration.Down(ctx, db.SQLDB())
	case "status":
		err = migration.Status(ctx, db.SQLDB())
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", cmd)
	}
	if err != nil {
		return err
	}

	logger.Info(ctx, "migrate done", "command", cmd)
	return nil
}
