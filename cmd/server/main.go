package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pradyumyelame/EasyToStay/docs"
	"github.com/pradyumyelame/EasyToStay/internal/auth"
	"github.com/pradyumyelame/EasyToStay/internal/cache"
	"github.com/pradyumyelame/EasyToStay/internal/config"
	"github.com/pradyumyelame/EasyToStay/internal/db"
	"github.com/pradyumyelame/EasyToStay/internal/events"
	"github.com/pradyumyelame/EasyToStay/internal/handler"
	"github.com/pradyumyelame/EasyToStay/internal/logger"
	"github.com/pradyumyelame/EasyToStay/internal/metrics"
	"github.com/pradyumyelame/EasyToStay/internal/router"
	"github.com/pradyumyelame/EasyToStay/internal/service"
	"github.com/pradyumyelame/EasyToStay/internal/storage"
)

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../docs

// @title EasyToStay API
// @version 1.0
// @description Property rental API: cookie sessions, listings, bookings and photo uploads.
// @host localhost:3030
// @BasePath /
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Session token set by POST /login.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStore, err := db.Open(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("database init", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(ctx); err != nil {
			zlog.Warn("redis unreachable, place cache degraded to misses", zap.Error(err))
		}
	}

	files, err := storage.New(ctx, cfg)
	if err != nil {
		zlog.Fatal("storage init", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}

	publisher, err := events.New(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
	if err != nil {
		zlog.Warn("nats unavailable, events disabled", zap.Error(err))
		publisher = events.Nop{}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)

	// Initialize services
	authService := service.NewAuthService(stores.Users, tokens, files, publisher, m, zlog, cfg.Auth.BcryptCost,
		service.WithPublicPrefix(cfg.Storage.PublicPrefix))
	placeService := service.NewPlaceService(stores.Places, cacheClient, cfg.Redis.PlaceTTL, publisher, zlog)
	bookingService := service.NewBookingService(stores.Bookings, stores.Places, publisher, m, zlog)
	uploadService := service.NewUploadService(files, nil, cfg.Storage.MaxLinkBytes, zlog)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, cfg, zlog, tokens, m, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, cfg.Server.CookieSecure),
		Place:   handler.NewPlaceHandler(placeService),
		Booking: handler.NewBookingHandler(bookingService),
		Upload:  handler.NewUploadHandler(uploadService),
	})

	if cfg.Swagger.Host != "" {
		docs.SwaggerInfo.Host = cfg.Swagger.Host
	}
	zlog.Info("swagger documentation available", zap.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.Addr()))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
	publisher.Close()
	if err := cacheClient.Close(); err != nil {
		zlog.Warn("close redis", zap.Error(err))
	}
	if err := closeStore(shutdownCtx); err != nil {
		zlog.Warn("close store", zap.Error(err))
	}
}
