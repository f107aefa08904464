package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/gradelab/backend/conf"
	"github.com/gradelab/backend/gradestore"
	"github.com/gradelab/backend/grading"
	"github.com/gradelab/backend/http"
)

func main() {
	// .env is optional for local runs
	_ = godotenv.Load()

	configPath := os.Getenv("GRADEBENCH_CONFIG")
	if configPath == "" {
		configPath = "gradebench.toml"
	}
	config, err := conf.Read(configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := gradestore.New(config.SaveDir)
	if err != nil {
		slog.Error("failed to open save directory", "error", err, "dir", config.SaveDir)
		os.Exit(1)
	}

	gradingSrvc := grading.NewGradingSrvc(store, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gradingSrvc.RunPeriodicAutosave(ctx, config.AutosaveInterval())

	httpServer := http.NewHttpServer(
		gradingSrvc,
		config.AllowedOrigins,
		uint(config.ImageMaxWidth),
		config.ImageFetchTimeout(),
	)

	log.Printf("Starting server on %s (save file: %s)", config.ListenAddr, store.Path())
	err = httpServer.Start(config.ListenAddr)
	log.Printf("Server stopped with error: %v", err)
}
