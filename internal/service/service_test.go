package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/food-order-service/internal/config"
	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/events"
	"github.com/spec-kit/food-order-service/internal/repository"
)

const (
	testAdminEmail    = "admin1@gmail.com"
	testAdminPassword = "123456789"
)

func testConfig(strategy domain.OrderStrategy) config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:           "test-secret",
			AccessTokenTTLHours: 1,
			BcryptCost:          bcrypt.MinCost,
			AdminEmail:          testAdminEmail,
			AdminPassword:       testAdminPassword,
		},
		Orders: config.OrdersConfig{
			Strategy:    strategy,
			PriceSource: domain.PriceSourceClient,
		},
		Notification: config.NotificationConfig{Channel: "orders.feed"},
	}
}

type fixture struct {
	store      *repository.MemoryStore
	repos      repository.Set
	dispatcher events.Dispatcher
	auth       *AuthService
	catalog    *CatalogService
	carts      *CartService
	orders     *OrderService
}

func newFixture(t *testing.T, strategy domain.OrderStrategy, source domain.PriceSource) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	repos := store.Set()
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()

	catalog := NewCatalogService(repos.Menu, source)
	_, err := catalog.Seed(context.Background())
	require.NoError(t, err)

	return &fixture{
		store:      store,
		repos:      repos,
		dispatcher: dispatcher,
		auth:       NewAuthService(testConfig(strategy), AuthDependencies{UserRepo: repos.Users, Dispatcher: dispatcher, Logger: logger}),
		catalog:    catalog,
		carts:      NewCartService(CartDependencies{CartRepo: repos.Carts, Catalog: catalog, Dispatcher: dispatcher, Logger: logger}),
		orders:     NewOrderService(OrderDependencies{OrderRepo: repos.Orders, Catalog: catalog, Dispatcher: dispatcher, Logger: logger}),
	}
}

func (f *fixture) register(t *testing.T, email, password string) *domain.User {
	t.Helper()
	user, _, err := f.auth.Register(context.Background(), RegisterInput{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        email,
		MobileNumber: "0771234567",
		Password:     password,
	})
	require.NoError(t, err)
	return user
}

type recordingPublisher struct {
	mu       sync.Mutex
	channels []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}
