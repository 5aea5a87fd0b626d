package app

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/food-order-service/internal/api/http"
	"github.com/spec-kit/food-order-service/internal/api/http/handlers"
	"github.com/spec-kit/food-order-service/internal/auth"
	"github.com/spec-kit/food-order-service/internal/config"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/events"
	"github.com/spec-kit/food-order-service/internal/observability"
	"github.com/spec-kit/food-order-service/internal/persistence"
	"github.com/spec-kit/food-order-service/internal/repository"
	"github.com/spec-kit/food-order-service/internal/service"
	"github.com/spec-kit/food-order-service/internal/worker"
)

// Infra carries the connections the application runs on. Nil connections are
// treated as disabled.
type Infra struct {
	Mongo *persistence.Mongo
	Redis *persistence.Redis
	Repos repository.Set
}

// App is the assembled HTTP application.
type App struct {
	Fiber   *fiber.App
	Metrics *observability.Metrics
	Auth    *service.AuthService
}

// Build wires services, handlers and middleware for the configured order strategy.
func Build(ctx context.Context, cfg config.Config, infra Infra, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if infra.Mongo == nil {
		infra.Mongo = &persistence.Mongo{}
	}
	if infra.Redis == nil {
		infra.Redis = &persistence.Redis{}
	}

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, infra.Redis, logger, cfg.Notification)
	worker.StartNotificationWorker(notifications, logger)

	catalog := service.NewCatalogService(infra.Repos.Menu, cfg.Orders.PriceSource)
	if seeded, err := catalog.Seed(ctx); err != nil {
		logger.Warn("menu catalog not seeded", zap.Error(err))
	} else if seeded > 0 {
		logger.Info("menu catalog seeded", zap.Int("items", seeded))
	}

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:   infra.Repos.Users,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), logger)

	var orderRoutes handlers.OrderRoutes
	switch cfg.Orders.Strategy {
	case domain.OrderStrategyReferenced:
		orderRoutes = handlers.NewOrdersHandler(service.NewOrderService(service.OrderDependencies{
			OrderRepo:  infra.Repos.Orders,
			Catalog:    catalog,
			Dispatcher: dispatcher,
			Logger:     logger,
		}))
	default:
		orderRoutes = handlers.NewCartHandler(service.NewCartService(service.CartDependencies{
			CartRepo:   infra.Repos.Carts,
			Catalog:    catalog,
			Dispatcher: dispatcher,
			Logger:     logger,
		}))
	}

	metrics := observability.NewMetrics()
	server := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(server, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(server, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, string(cfg.Orders.Strategy), infra.Mongo, infra.Redis),
		Users:          handlers.NewUsersHandler(authService),
		Menu:           handlers.NewMenuHandler(catalog),
		Orders:         orderRoutes,
		AuthMiddleware: authMiddleware,
	})

	logger.Info("order routes mounted",
		zap.String("strategy", string(cfg.Orders.Strategy)),
		zap.String("price_source", string(catalog.PriceSource())))

	return &App{Fiber: server, Metrics: metrics, Auth: authService}, nil
}
