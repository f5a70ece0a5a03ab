package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/vendorflow-web/internal/backend"
	"github.com/spec-kit/vendorflow-web/internal/config"
	"github.com/spec-kit/vendorflow-web/internal/observability"
	"github.com/spec-kit/vendorflow-web/internal/persistence"
	"github.com/spec-kit/vendorflow-web/internal/service"
	"github.com/spec-kit/vendorflow-web/internal/session"
	"github.com/spec-kit/vendorflow-web/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	var (
		store session.Store
		rds   *persistence.Redis
	)
	switch cfg.Session.Store {
	case "redis":
		rds = persistence.NewRedis(cfg.Redis, logger)
		defer rds.Close()
		store = session.NewRedisStore(rds.Client, cfg.Session.TTL())
	default:
		store = session.NewMemoryStore()
	}

	sessions := session.NewManager(store, logger)
	api := backend.NewClient(cfg.Backend, logger, metrics)
	flows := service.NewAuthService(api, sessions, logger)
	guard := web.NewGuard(sessions, cfg.Session)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	web.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	web.RegisterRoutes(app, web.RouteConfig{
		Pages:    web.NewPagesHandler(),
		Auth:     web.NewAuthHandler(flows, guard, logger),
		Bookings: web.NewBookingsHandler(api, guard, logger),
		Services: web.NewServicesHandler(api, guard, logger),
		Health:   web.NewHealthHandler(cfg.App.Name, cfg.App.Version, rds),
		Guard:    guard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
