package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/food-order-service/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	strategy    string
	mongo       *persistence.Mongo
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version, strategy string, mongo *persistence.Mongo, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, strategy: strategy, mongo: mongo, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "alive",
		"service":  h.serviceName,
		"version":  h.version,
		"strategy": h.strategy,
	})
}

// Ready reports service readiness by checking dependencies. An unconfigured
// dependency is reported as disabled and does not fail readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	switch err := h.mongo.Ping(ctx); {
	case err == nil:
		depStatus["mongo"] = "ok"
	case errors.Is(err, persistence.ErrMongoDisabled):
		depStatus["mongo"] = "disabled (in-memory store)"
	default:
		depStatus["mongo"] = err.Error()
		ready = false
	}

	switch err := h.redis.Ping(ctx); {
	case err == nil:
		depStatus["redis"] = "ok"
	case errors.Is(err, persistence.ErrRedisDisabled):
		depStatus["redis"] = "disabled"
	default:
		depStatus["redis"] = err.Error()
		ready = false
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"message": "one or more dependencies unavailable",
		"error":   "DEPENDENCY_UNAVAILABLE",
		"details": depStatus,
	})
}
