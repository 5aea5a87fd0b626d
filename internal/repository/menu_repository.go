package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/persistence"
)

// MenuRepository stores the menu catalog.
type MenuRepository interface {
	// List returns every item, or those in category (case-insensitive) when it is non-empty.
	List(ctx context.Context, category string) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	// SeedIfEmpty inserts items only when the catalog has none and reports how many it inserted.
	SeedIfEmpty(ctx context.Context, items []domain.MenuItem) (int, error)
}

type menuRepository struct {
	menu *mongo.Collection
}

// NewMenuRepository returns a MongoDB-backed implementation.
func NewMenuRepository(db *mongo.Database) MenuRepository {
	return &menuRepository{menu: db.Collection(persistence.MenuCollection)}
}

func (r *menuRepository) List(ctx context.Context, category string) ([]domain.MenuItem, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(category) + "$", Options: "i"}
	}
	cursor, err := r.menu.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := r.menu.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *menuRepository) SeedIfEmpty(ctx context.Context, items []domain.MenuItem) (int, error) {
	count, err := r.menu.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	if count > 0 || len(items) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		docs = append(docs, item)
	}
	res, err := r.menu.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}
