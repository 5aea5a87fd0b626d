package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/events"
	"github.com/spec-kit/food-order-service/internal/repository"
	apperrors "github.com/spec-kit/food-order-service/pkg/util"
)

// CartItemInput describes one item submitted to the cart. MenuItemID is only
// consulted when prices come from the catalog.
type CartItemInput struct {
	MenuItemID string
	Item       domain.ItemSnapshot
	Quantity   int
}

// CartService implements the embedded order strategy: every placed item becomes
// a line in the cart array of the user document.
type CartService struct {
	carts      repository.CartRepository
	catalog    *CatalogService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// CartDependencies bundles collaborators for the cart service.
type CartDependencies struct {
	CartRepo   repository.CartRepository
	Catalog    *CatalogService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewCartService constructs the service.
func NewCartService(deps CartDependencies) *CartService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		carts:      deps.CartRepo,
		catalog:    deps.Catalog,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// AddToCart appends one line atomically and returns the updated user and the new line.
func (s *CartService) AddToCart(ctx context.Context, userID string, in CartItemInput) (*domain.User, *domain.CartLine, error) {
	item, err := s.catalog.Resolve(ctx, in.MenuItemID, in.Item)
	if err != nil {
		return nil, nil, err
	}
	if !validCartItem(item) || in.Quantity < 1 {
		return nil, nil, apperrors.NewValidationError("Invalid item data or quantity", nil)
	}

	line := domain.CartLine{
		ID:        primitive.NewObjectID(),
		Item:      item,
		Quantity:  in.Quantity,
		CreatedAt: time.Now().UTC(),
	}
	user, err := s.carts.AppendLine(ctx, userID, line)
	if err != nil {
		return nil, nil, userError(err)
	}

	added := &line
	for i := range user.Cart {
		if user.Cart[i].ID == line.ID {
			added = &user.Cart[i]
			break
		}
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventCartLineAdded, userID, events.CartLineAddedPayload{
		LineID:   line.ID.Hex(),
		Title:    item.Title,
		Price:    item.Price,
		Quantity: line.Quantity,
	}))
	return user, added, nil
}

// ListCart returns the user's cart lines in insertion order.
func (s *CartService) ListCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	lines, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, userError(err)
	}
	return lines, nil
}

// RemoveFromCart drops the line with lineID by rewriting the whole cart array.
// It reads and writes in two steps with no version check, so two removals racing
// on the same cart can overwrite each other. An unknown line id is not an error;
// the result reports whether a line was removed.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, lineID string) (bool, error) {
	lines, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return false, userError(err)
	}

	kept := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ID.Hex() != lineID {
			kept = append(kept, line)
		}
	}
	removed := len(kept) != len(lines)

	if err := s.carts.ReplaceCart(ctx, userID, kept); err != nil {
		return false, userError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventCartLineRemoved, userID, events.CartLineRemovedPayload{
		LineID:  lineID,
		Removed: removed,
	}))
	return removed, nil
}

// ListAllOrders reports every user's cart. Only admins may call it.
func (s *CartService) ListAllOrders(ctx context.Context, caller domain.Identity) ([]domain.UserCart, error) {
	if !caller.Admin() {
		return nil, apperrors.NewForbidden("Access denied. Only admins can access all orders.")
	}
	carts, err := s.carts.ListCarts(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return carts, nil
}

func validCartItem(item domain.ItemSnapshot) bool {
	return strings.TrimSpace(item.Title) != "" &&
		item.Price > 0 &&
		strings.TrimSpace(item.Image) != ""
}

func userError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("User", nil)
	}
	return apperrors.NewInternalError(err)
}
