package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/food-order-service/internal/domain"
	apperrors "github.com/spec-kit/food-order-service/pkg/util"
)

func burgerOrder(qty int) OrderItemInput {
	return OrderItemInput{Item: domain.OrderItem{Title: "Burger", Price: 664, Image: "burger.jpg", Type: "Food", Quantity: qty}}
}

func TestOrderService_PlaceAndList(t *testing.T) {
	f := newFixture(t, domain.OrderStrategyReferenced, domain.PriceSourceClient)
	user := f.register(t, "orders@example.com", "secret1")
	ctx := context.Background()

	first, err := f.orders.PlaceOrder(ctx, user.ID.Hex(), []OrderItemInput{burgerOrder(0)})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Items[0].Quantity)
	assert.Equal(t, user.ID, first.UserID)

	second, err := f.orders.PlaceOrder(ctx, user.ID.Hex(), []OrderItemInput{burgerOrder(2), burgerOrder(3)})
	require.NoError(t, err)

	orders, err := f.orders.ListOrders(ctx, user.ID.Hex())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, second.ID, orders[1].ID)
	assert.Len(t, orders[1].Items, 2)
}

func TestOrderService_RejectsInvalidItems(t *testing.T) {
	f := newFixture(t, domain.OrderStrategyReferenced, domain.PriceSourceClient)
	user := f.register(t, "bad-orders@example.com", "secret1")
	ctx := context.Background()

	_, err := f.orders.PlaceOrder(ctx, user.ID.Hex(), nil)
	assert.True(t, apperrors.HasStatus(err, http.StatusBadRequest))

	missingType := burgerOrder(1)
	missingType.Item.Type = ""
	_, err = f.orders.PlaceOrder(ctx, user.ID.Hex(), []OrderItemInput{burgerOrder(1), missingType})
	assert.True(t, apperrors.HasStatus(err, http.StatusBadRequest))

	_, err = f.orders.PlaceOrder(ctx, user.ID.Hex(), []OrderItemInput{burgerOrder(-1)})
	assert.True(t, apperrors.HasStatus(err, http.StatusBadRequest))

	assert.Zero(t, f.store.OrderCount())
}

func TestOrderService_UnknownUserLeavesOrphanOrder(t *testing.T) {
	f := newFixture(t, domain.OrderStrategyReferenced, domain.PriceSourceClient)

	_, err := f.orders.PlaceOrder(context.Background(), primitive.NewObjectID().Hex(), []OrderItemInput{burgerOrder(1)})
	require.Error(t, err)
	assert.True(t, apperrors.HasStatus(err, http.StatusNotFound))
	assert.Equal(t, 1, f.store.OrderCount())
}

func TestOrderService_ListUnknownUser(t *testing.T) {
	f := newFixture(t, domain.OrderStrategyReferenced, domain.PriceSourceClient)

	_, err := f.orders.ListOrders(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, apperrors.HasStatus(err, http.StatusNotFound))
}

func TestOrderService_CatalogPricingKeepsQuantity(t *testing.T) {
	f := newFixture(t, domain.OrderStrategyReferenced, domain.PriceSourceCatalog)
	user := f.register(t, "catalog-orders@example.com", "secret1")

	order, err := f.orders.PlaceOrder(context.Background(), user.ID.Hex(), []OrderItemInput{
		{MenuItemID: "fries", Item: domain.OrderItem{Quantity: 4}},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Fries", order.Items[0].Title)
	assert.Equal(t, 207.5, order.Items[0].Price)
	assert.Equal(t, "Snacks", order.Items[0].Type)
	assert.Equal(t, 4, order.Items[0].Quantity)
}
