package main

import (
	"context"
	"os"
	"path/filepath"

	"ultrabot/server/config"
	"ultrabot/server/internal/api"
	"ultrabot/server/internal/assistant"
	"ultrabot/server/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", cfg.DatabasePath)

	kv, err := storage.OpenSQLiteKV(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open key-value store")
	}
	defer kv.Close()

	store := storage.NewStore(kv, logger)
	store.Seed()

	ctx := context.Background()
	client, err := assistant.NewClient(ctx, cfg.APIKey, cfg.Model, store.GetProperties(), logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize assistant client")
	}

	pipeline := assistant.NewPipeline(client, store, logger)
	composer := assistant.NewComposer(client, logger)
	handler := api.NewHandler(store, pipeline, composer, client, cfg.AdminPassword, logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on %s", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
