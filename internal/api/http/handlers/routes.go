package handlers

import "github.com/gofiber/fiber/v2"

// OrderRoutes mounts the routes of one order strategy behind the given
// authentication handler.
type OrderRoutes interface {
	Register(router fiber.Router, authenticate fiber.Handler)
}
