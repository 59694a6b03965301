// @title        Mug Store Back Office API
// @version      1.0
// @description  Administration API for the Mug Store catalog, accounts and dashboard.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mugstore/backoffice/internal/api"
	"github.com/mugstore/backoffice/internal/api/handler"
	"github.com/mugstore/backoffice/internal/core/service"
	mongodb "github.com/mugstore/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/mugstore/backoffice/internal/infrastructure/db/redis"
	"github.com/mugstore/backoffice/internal/infrastructure/queue"
	"github.com/mugstore/backoffice/internal/media"
	"github.com/mugstore/backoffice/internal/pkg/config"
	"github.com/mugstore/backoffice/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	tagRepo := mongodb.NewTagRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	galleryRepo := mongodb.NewGalleryRepository(db)
	variantRepo := mongodb.NewVariantRepository(db)
	dashboardRepo := mongodb.NewDashboardRepository(db)

	revoker := redisdb.NewTokenRevocationList(rdb)
	mediaStore := media.NewDiskStore(cfg.MediaRoot, log)

	// --- Services ---
	auditService := service.NewAuditService(auditRepo, log)
	authService := service.NewAuthService(userRepo, auditService, revoker, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, auditRepo, auditService, mediaStore, log)
	catalogService := service.NewCatalogService(categoryRepo, tagRepo, productRepo, galleryRepo, variantRepo, mediaStore, auditService, log)
	dashboardService := service.NewDashboardService(dashboardRepo, log)
	exportService := service.NewExportService(productRepo, categoryRepo, log)

	// --- Bulk ingest workers ---
	dispatcher := queue.NewDispatcher(cfg.IngestWorkers, catalogService, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	handlers := api.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Users:      handler.NewUserHandler(userService, auditService),
		Products:   handler.NewProductHandler(catalogService, exportService, dispatcher),
		Categories: handler.NewCategoryHandler(catalogService),
		Tags:       handler.NewTagHandler(catalogService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
	}
	e := api.NewRouter(handlers, cfg.JWTSecret, revoker, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("back office listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
