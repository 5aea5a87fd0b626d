package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/food-order-service/internal/domain"
)

// MemoryStore keeps users, orders and the menu in process memory. It mirrors the
// MongoDB repositories closely enough to run the service without a database:
// documents are copied on the way in and out, email is unique, and cart pushes
// are atomic while ReplaceCart overwrites the whole array.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID]*domain.User
	userOrder []primitive.ObjectID
	emails    map[string]primitive.ObjectID
	orders    map[primitive.ObjectID]*domain.Order
	menu      []domain.MenuItem
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[primitive.ObjectID]*domain.User),
		emails: make(map[string]primitive.ObjectID),
		orders: make(map[primitive.ObjectID]*domain.Order),
	}
}

// Set exposes the store through the repository interfaces.
func (s *MemoryStore) Set() Set {
	return Set{
		Users:  memoryUsers{s},
		Carts:  memoryCarts{s},
		Orders: memoryOrders{s},
		Menu:   memoryMenu{s},
	}
}

func (s *MemoryStore) lookup(userID string) (*domain.User, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	user, ok := s.users[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

func copyUser(u *domain.User) *domain.User {
	out := *u
	out.Cart = append([]domain.CartLine{}, u.Cart...)
	if u.Orders != nil {
		out.Orders = append([]primitive.ObjectID{}, u.Orders...)
	}
	return &out
}

func copyOrder(o *domain.Order) domain.Order {
	out := *o
	out.Items = append([]domain.OrderItem{}, o.Items...)
	return out
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.emails[user.Email]; exists {
		return ErrDuplicateEmail
	}
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Cart == nil {
		user.Cart = []domain.CartLine{}
	}

	r.s.users[user.ID] = copyUser(user)
	r.s.userOrder = append(r.s.userOrder, user.ID)
	r.s.emails[user.Email] = user.ID
	return nil
}

func (r memoryUsers) Save(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	if owner, taken := r.s.emails[user.Email]; taken && owner != user.ID {
		return ErrDuplicateEmail
	}
	delete(r.s.emails, existing.Email)
	user.UpdatedAt = time.Now().UTC()
	r.s.users[user.ID] = copyUser(user)
	r.s.emails[user.Email] = user.ID
	return nil
}

func (r memoryUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, err := r.s.lookup(id)
	if err != nil {
		return nil, err
	}
	return copyUser(user), nil
}

func (r memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	oid, ok := r.s.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(r.s.users[oid]), nil
}

type memoryCarts struct{ s *MemoryStore }

func (r memoryCarts) AppendLine(_ context.Context, userID string, line domain.CartLine) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, err := r.s.lookup(userID)
	if err != nil {
		return nil, err
	}
	user.Cart = append(user.Cart, line)
	user.UpdatedAt = time.Now().UTC()
	return copyUser(user), nil
}

func (r memoryCarts) GetCart(_ context.Context, userID string) ([]domain.CartLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, err := r.s.lookup(userID)
	if err != nil {
		return nil, err
	}
	return append([]domain.CartLine{}, user.Cart...), nil
}

func (r memoryCarts) ReplaceCart(_ context.Context, userID string, lines []domain.CartLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, err := r.s.lookup(userID)
	if err != nil {
		return err
	}
	user.Cart = append([]domain.CartLine{}, lines...)
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r memoryCarts) ListCarts(_ context.Context) ([]domain.UserCart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	carts := make([]domain.UserCart, 0, len(r.s.userOrder))
	for _, oid := range r.s.userOrder {
		user := r.s.users[oid]
		carts = append(carts, domain.UserCart{
			UserID: user.ID,
			Name:   user.FullName(),
			Orders: append([]domain.CartLine{}, user.Cart...),
		})
	}
	return carts, nil
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) Create(_ context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now().UTC()
	stored := copyOrder(order)
	r.s.orders[order.ID] = &stored
	return nil
}

func (r memoryOrders) AttachToUser(_ context.Context, userID string, orderID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, err := r.s.lookup(userID)
	if err != nil {
		return err
	}
	user.Orders = append(user.Orders, orderID)
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r memoryOrders) ListForUser(_ context.Context, userID string) ([]domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, err := r.s.lookup(userID)
	if err != nil {
		return nil, err
	}
	found := make([]domain.Order, 0, len(user.Orders))
	for _, ref := range user.Orders {
		if o, ok := r.s.orders[ref]; ok {
			found = append(found, copyOrder(o))
		}
	}
	return inReferenceOrder(user.Orders, found), nil
}

// OrderCount reports how many order documents exist, attached or not.
func (s *MemoryStore) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

type memoryMenu struct{ s *MemoryStore }

func (r memoryMenu) List(_ context.Context, category string) ([]domain.MenuItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]domain.MenuItem, 0, len(r.s.menu))
	for _, item := range r.s.menu {
		if category == "" || strings.EqualFold(item.Category, category) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r memoryMenu) GetByID(_ context.Context, id string) (*domain.MenuItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.menu {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r memoryMenu) SeedIfEmpty(_ context.Context, items []domain.MenuItem) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.menu) > 0 {
		return 0, nil
	}
	r.s.menu = append([]domain.MenuItem{}, items...)
	return len(items), nil
}
