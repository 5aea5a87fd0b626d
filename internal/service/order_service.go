package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/events"
	"github.com/spec-kit/food-order-service/internal/repository"
	apperrors "github.com/spec-kit/food-order-service/pkg/util"
)

// OrderItemInput describes one submitted order item.
type OrderItemInput struct {
	MenuItemID string
	Item       domain.OrderItem
}

// OrderService implements the referenced order strategy: each order is its own
// document and the user keeps an ordered list of references.
type OrderService struct {
	orders     repository.OrderRepository
	catalog    *CatalogService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies bundles collaborators for the order service.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	Catalog    *CatalogService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orders:     deps.OrderRepo,
		catalog:    deps.Catalog,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// PlaceOrder stores the order and then links it to the user. The two writes are
// not atomic: when linking fails the order document stays behind, unreachable
// from the user's listing, and the failure is returned.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, inputs []OrderItemInput) (*domain.Order, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewValidationError("Items data is invalid or missing", nil)
	}

	items := make([]domain.OrderItem, 0, len(inputs))
	for i, in := range inputs {
		item, err := s.resolve(ctx, in)
		if err != nil {
			return nil, err
		}
		if !validOrderItem(item) {
			return nil, apperrors.NewValidationError("Invalid item data", map[string]any{"index": i})
		}
		items = append(items, item)
	}

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.NewNotFound("User", nil)
	}

	order := &domain.Order{UserID: uid, Items: items}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if err := s.orders.AttachToUser(ctx, userID, order.ID); err != nil {
		s.logger.Warn("order stored but not linked to user",
			zap.String("order_id", order.ID.Hex()),
			zap.String("user_id", userID),
			zap.Error(err))
		s.publishPlaced(ctx, userID, order, false)
		return nil, userError(err)
	}

	s.publishPlaced(ctx, userID, order, true)
	return order, nil
}

// ListOrders returns the user's orders in placement order.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("User", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return orders, nil
}

func (s *OrderService) resolve(ctx context.Context, in OrderItemInput) (domain.OrderItem, error) {
	item := in.Item
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	snapshot, err := s.catalog.Resolve(ctx, in.MenuItemID, item.Snapshot())
	if err != nil {
		return domain.OrderItem{}, err
	}
	item.Title = snapshot.Title
	item.Price = snapshot.Price
	item.Image = snapshot.Image
	item.Type = snapshot.Type
	return item, nil
}

func (s *OrderService) publishPlaced(ctx context.Context, userID string, order *domain.Order, attached bool) {
	var total float64
	for _, item := range order.Items {
		total += item.Price * float64(item.Quantity)
	}
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventOrderPlaced, userID, events.OrderPlacedPayload{
		OrderID:   order.ID.Hex(),
		ItemCount: len(order.Items),
		Total:     total,
		Attached:  attached,
	}))
}

func validOrderItem(item domain.OrderItem) bool {
	return strings.TrimSpace(item.Title) != "" &&
		item.Price > 0 &&
		strings.TrimSpace(item.Image) != "" &&
		strings.TrimSpace(item.Type) != "" &&
		item.Quantity >= 1
}
