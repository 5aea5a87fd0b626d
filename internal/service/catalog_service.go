package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gosimple/slug"

	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/repository"
	apperrors "github.com/spec-kit/food-order-service/pkg/util"
)

type menuSeed struct {
	title    string
	image    string
	category string
	price    float64
}

var defaultMenu = []menuSeed{
	{"Pizza", "pizza.jpg", "Food", 830.00},
	{"Burger", "burger.jpg", "Food", 664.00},
	{"Pasta", "pasta.jpg", "Food", 788.50},
	{"Water Bottle", "water-bottle.jpg", "Drinks", 124.50},
	{"Coca-Cola", "coco-cola.jpg", "Drinks", 145.25},
	{"Pepsi", "pepsi.jpg", "Drinks", 145.25},
	{"Fries", "fries.jpg", "Snacks", 207.50},
	{"Onion Rings", "onion-rings.jpg", "Snacks", 249.00},
	{"Salad", "salad.jpg", "Food", 581.00},
	{"Noodles", "noodles.jpg", "Food", 539.50},
	{"Grilled Chicken", "grilled-chicken.jpg", "Food", 913.00},
	{"Ice Cream", "ice-cream.jpg", "Desserts", 332.00},
	{"Brownie", "brownie.jpg", "Desserts", 290.50},
	{"Lemonade", "lemonade.jpg", "Drinks", 166.00},
	{"Sprite", "sprite.jpg", "Drinks", 145.25},
	{"Tacos", "tacos.jpg", "Desserts", 290.50},
	{"Sandwich", "sandwich.jpg", "Food", 415.00},
	{"Hot Dog", "hot-dog.jpg", "Food", 373.50},
	{"Sushi", "sushi.jpg", "Desserts", 664.00},
	{"Muffin", "muffin.jpg", "Snacks", 207.50},
}

// DefaultMenu returns the menu the catalog is seeded with.
func DefaultMenu() []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(defaultMenu))
	for _, seed := range defaultMenu {
		items = append(items, domain.MenuItem{
			ID:       MenuItemID(seed.title),
			Title:    seed.title,
			Price:    seed.price,
			Image:    "images/foods/" + seed.image,
			Category: seed.category,
		})
	}
	return items
}

// MenuItemID derives the stable catalog key for a title.
func MenuItemID(title string) string {
	return slug.Make(title)
}

// CatalogService serves the menu and, when prices come from the catalog,
// replaces client-supplied item fields with the catalog's.
type CatalogService struct {
	menu   repository.MenuRepository
	source domain.PriceSource
}

// NewCatalogService constructs the service.
func NewCatalogService(menu repository.MenuRepository, source domain.PriceSource) *CatalogService {
	if source == "" {
		source = domain.PriceSourceClient
	}
	return &CatalogService{menu: menu, source: source}
}

// Seed loads the default menu into an empty catalog.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	return s.menu.SeedIfEmpty(ctx, DefaultMenu())
}

// List returns the menu, optionally narrowed to a category.
func (s *CatalogService) List(ctx context.Context, category string) ([]domain.MenuItem, error) {
	items, err := s.menu.List(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}

// Resolve returns the snapshot to store for a submitted item. With client
// pricing the submission is kept as is; with catalog pricing the item is looked
// up by id, or by the slug of its title when no id was sent.
func (s *CatalogService) Resolve(ctx context.Context, id string, item domain.ItemSnapshot) (domain.ItemSnapshot, error) {
	if s == nil || s.source != domain.PriceSourceCatalog {
		if item.Status == "" {
			item.Status = domain.DefaultItemStatus
		}
		return item, nil
	}

	key := strings.TrimSpace(id)
	if key == "" {
		key = MenuItemID(item.Title)
	}
	menuItem, err := s.menu.GetByID(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ItemSnapshot{}, apperrors.NewValidationError("unknown menu item", map[string]any{"item": key})
		}
		return domain.ItemSnapshot{}, apperrors.NewInternalError(err)
	}
	return menuItem.Snapshot(), nil
}

// PriceSource reports where item prices come from.
func (s *CatalogService) PriceSource() domain.PriceSource {
	return s.source
}
