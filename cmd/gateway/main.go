package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/storefront-gateway/internal/api/http"
	"github.com/spec-kit/storefront-gateway/internal/api/http/handlers"
	"github.com/spec-kit/storefront-gateway/internal/cart"
	"github.com/spec-kit/storefront-gateway/internal/config"
	"github.com/spec-kit/storefront-gateway/internal/events"
	"github.com/spec-kit/storefront-gateway/internal/httpclient"
	"github.com/spec-kit/storefront-gateway/internal/observability"
	"github.com/spec-kit/storefront-gateway/internal/routing"
	"github.com/spec-kit/storefront-gateway/internal/service"
	"github.com/spec-kit/storefront-gateway/internal/session"
	"github.com/spec-kit/storefront-gateway/internal/storage"
	"github.com/spec-kit/storefront-gateway/internal/token"
	"github.com/spec-kit/storefront-gateway/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := storage.NewRedis(cfg.Redis, logger)
	defer store.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	decoder := token.NewDecoder(logger)

	keys := session.Keys{
		Token:       cfg.Session.TokenKey,
		User:        cfg.Session.UserKey,
		Role:        cfg.Session.RoleKey,
		ClientToken: cfg.Session.ClientTokenKey,
	}

	sessionStore := session.NewStore(session.Dependencies{
		Storage: store,
		Keys:    keys,
		Decoder: decoder,
		Events:  dispatcher,
		Logger:  logger,
		Metrics: metrics,
	})
	current := sessionStore.Initialize(ctx)
	logger.Info("session initialized",
		zap.Bool("authenticated", current.Authenticated()),
		zap.String("role", current.Role),
	)

	clientTrack := session.NewClientTrack(store, keys, logger)

	selector := httpclient.NewSelector(sessionStore, clientTrack, metrics)
	backendClient := httpclient.NewClient(selector, cfg.Backend.Timeout())

	cartStore := cart.NewStore(dispatcher, logger)
	persister := worker.NewCartPersister(store, cfg.Session.CartKey, logger)
	worker.StartCartPersister(dispatcher, persister)
	if items := persister.Restore(ctx); len(items) > 0 {
		cartStore.Load(items)
		logger.Info("cart restored", zap.Int("items", len(items)))
	}

	guard := routing.NewGuard(
		routing.Tables{
			Public:       cfg.Routes.Public,
			EmployeeOnly: cfg.Routes.EmployeeOnly,
			ClientOnly:   cfg.Routes.ClientOnly,
		},
		routing.Targets{
			Landing:     cfg.Routes.LandingPath,
			StaffLogin:  cfg.Routes.StaffLogin,
			ClientLogin: cfg.Routes.ClientLogin,
		},
		sessionStore, clientTrack, logger, metrics,
	)

	loginService := service.NewLoginService(cfg.Backend.APIBaseURL, backendClient, sessionStore, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, metrics),
		Auth:   handlers.NewAuthHandler(loginService, sessionStore),
		Cart:   handlers.NewCartHandler(cartStore),
		Pages:  handlers.NewPagesHandler(cfg.Backend.FrontendURL, logger),
		Proxy:  handlers.NewProxyHandler(cfg.Backend.APIBaseURL, backendClient, logger),
		Guard:  guard,
		Routes: cfg.Routes,
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
