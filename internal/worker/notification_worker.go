package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/food-order-service/internal/service"
)

// StartNotificationWorker hooks the order feed onto the event dispatcher.
func StartNotificationWorker(notifications *service.NotificationService, logger *zap.Logger) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
	if logger != nil {
		logger.Info("order feed handlers registered")
	}
}
