package main

import (
	"context"

	"catalog/catalog_admin_data_service/api"
	"catalog/catalog_admin_data_service/config"
	"catalog/catalog_admin_data_service/pkg/jaeger"
	"catalog/catalog_admin_data_service/pkg/logger"
	"catalog/catalog_admin_data_service/pkg/media"
	"catalog/catalog_admin_data_service/pkg/whitelist"
	"catalog/catalog_admin_data_service/storage/postgres"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	loggerLevel := logger.LevelDebug

	switch cfg.Environment {
	case config.DebugMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.DebugMode)
	case config.TestMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.TestMode)
	default:
		loggerLevel = logger.LevelInfo
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.NewLogger(cfg.ServiceName, loggerLevel)
	defer func() {
		_ = logger.Cleanup(log)
	}()
	log.Info("Service env", logger.Any("cfg", cfg.ServiceName))

	closer, err := jaeger.InitGlobalTracer(cfg.ServiceName, cfg.JaegerHostPort)
	if err != nil {
		log.Panic("jaeger.InitGlobalTracer", logger.Error(err))
	}
	defer closer.Close()

	// An inconsistent whitelist must never serve requests.
	registry := whitelist.DefaultRegistry()
	if err := registry.Validate(); err != nil {
		log.Panic("whitelist.Validate", logger.Error(err))
	}

	if err := postgres.RunMigrations(cfg); err != nil {
		log.Panic("postgres.RunMigrations", logger.Error(err))
	}

	pgStore, err := postgres.NewPostgres(context.Background(), cfg, log)
	if err != nil {
		log.Panic("postgres.NewPostgres", logger.Error(err))
	}
	defer pgStore.CloseDB()

	mediaClient, err := media.NewClient(cfg, log)
	if err != nil {
		log.Panic("media.NewClient", logger.Error(err))
	}
	if mediaClient != nil {
		if err := mediaClient.EnsureBucket(context.Background()); err != nil {
			log.Panic("media.EnsureBucket", logger.Error(err))
		}
	}

	router := api.SetUpRouter(cfg, log, pgStore, registry, mediaClient)

	log.Info("HTTP: Server being started...", logger.String("port", cfg.HTTPPort))

	if err := router.Run(cfg.HTTPPort); err != nil {
		log.Panic("router.Run", logger.Error(err))
	}
}
