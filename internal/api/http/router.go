package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-order-service/internal/api/http/handlers"
	"github.com/spec-kit/food-order-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Menu           *handlers.MenuHandler
	Orders         handlers.OrderRoutes
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Only the configured order strategy's
// routes are mounted.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Users.Register)
	app.Post("/login", cfg.Users.Login)
	app.Get("/menu", cfg.Menu.List)

	cfg.Orders.Register(app, cfg.AuthMiddleware.Handle)
}
