package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/nanatgrail/prodigyspace/internal/backup"
	"github.com/nanatgrail/prodigyspace/internal/buildinfo"
	"github.com/nanatgrail/prodigyspace/internal/cli"
	"github.com/nanatgrail/prodigyspace/internal/config"
	"github.com/nanatgrail/prodigyspace/internal/localdb"
	"github.com/nanatgrail/prodigyspace/internal/logging"
	"github.com/nanatgrail/prodigyspace/internal/repositories/kv"
	"github.com/nanatgrail/prodigyspace/internal/services"
	"github.com/nanatgrail/prodigyspace/internal/storage"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	clock := clockwork.NewRealClock()

	db, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error opening database: %v", err)
	}
	defer db.Close()

	mgr := storage.NewManager(
		kv.NewSQLiteRepository(db, clock),
		storage.WithClock(clock),
		storage.WithLogger(logger),
	)

	reg := services.NewRegistry(services.Deps{Backend: mgr, Clock: clock, Log: logger})
	if err := reg.LoadAll(ctx); err != nil {
		logger.Error(ctx, "error loading data", "err", err)
	}

	app := cli.NewApp(cfg, reg, backup.New(mgr, cfg.BackupDir, clock, logger), cli.Options{
		Clock: clock,
		Log:   logger,
	})
	app.Run(ctx)

}
