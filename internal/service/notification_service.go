package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/food-order-service/internal/config"
	"github.com/spec-kit/food-order-service/internal/events"
	"github.com/spec-kit/food-order-service/internal/persistence"
)

// Publisher pushes a payload onto a pub/sub channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// NotificationService fans domain events out to the log and the order feed.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  Publisher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. A nil publisher only logs.
func NewNotificationService(dispatcher events.Dispatcher, publisher Publisher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventCartLineAdded, n.handleCartLineAdded)
	n.dispatcher.Subscribe(events.EventCartLineRemoved, n.handleCartLineRemoved)
	n.dispatcher.Subscribe(events.EventOrderPlaced, n.handleOrderPlaced)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.publishToFeed(ctx, event)
	return nil
}

func (n *NotificationService) handleCartLineAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("CartLineAdded", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.publishToFeed(ctx, event)
	return nil
}

func (n *NotificationService) handleCartLineRemoved(ctx context.Context, event events.Event) error {
	n.logger.Info("CartLineRemoved", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.publishToFeed(ctx, event)
	return nil
}

func (n *NotificationService) handleOrderPlaced(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderPlaced", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.publishToFeed(ctx, event)
	return nil
}

// publishToFeed never fails the request that raised the event.
func (n *NotificationService) publishToFeed(ctx context.Context, event events.Event) {
	if n.publisher == nil || strings.TrimSpace(n.cfg.Channel) == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("encode feed event", zap.String("event_type", string(event.Type)), zap.Error(err))
		return
	}
	if err := n.publisher.Publish(ctx, n.cfg.Channel, body); err != nil {
		if errors.Is(err, persistence.ErrRedisDisabled) {
			return
		}
		n.logger.Warn("publish feed event",
			zap.String("channel", n.cfg.Channel),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
