package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/buildinfo"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/cli"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/client"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/config"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/repositories"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/services"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/tokenstore"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	// .env is optional.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	if err := run(context.Background(), cfg, logger); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	db, err := repositories.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	store := tokenstore.NewSQLiteStore(db)

	auth := client.NewAuthClient(cfg.APIBaseURL, store, logger, client.WithTimeout(cfg.RequestTimeout))
	api := client.NewAPIClient(cfg.APIBaseURL, store, auth, logger, client.WithTimeout(cfg.RequestTimeout))

	files := services.NewFileService(api)
	svc := cli.Services{
		Auth:    services.NewAuthService(auth, store, logger),
		Catalog: services.NewCatalogService(api, files),
		Files:   files,
		Users:   services.NewUserService(api),
	}

	app := cli.NewApp(cfg, svc, store, logger, os.Stdin, os.Stdout)
	api.OnSessionExpired(app.SessionExpired)

	app.Run(ctx)
	return nil
}
