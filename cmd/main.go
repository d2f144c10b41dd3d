package main

import (
	"log/slog"
	"os"

	"backend/config"
	"backend/logging"
	"backend/routes"
	"backend/services"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Seed the store before accepting traffic.
	importer := services.NewImporter(db, cfg.ImagesDir)
	if _, err := importer.Run(cfg.CSVPath); err != nil {
		slog.Error("seed import failed", "error", err)
		os.Exit(1)
	}

	r := routes.SetupRouter(cfg, db)
	slog.Info("listening", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
