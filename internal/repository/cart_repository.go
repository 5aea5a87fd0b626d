package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/persistence"
)

// CartRepository persists the cart array embedded in each user document.
type CartRepository interface {
	// AppendLine pushes one line atomically and returns the updated user.
	AppendLine(ctx context.Context, userID string, line domain.CartLine) (*domain.User, error)
	GetCart(ctx context.Context, userID string) ([]domain.CartLine, error)
	// ReplaceCart overwrites the whole array.
	ReplaceCart(ctx context.Context, userID string, lines []domain.CartLine) error
	ListCarts(ctx context.Context) ([]domain.UserCart, error)
}

type cartRepository struct {
	users *mongo.Collection
}

// NewCartRepository returns a MongoDB-backed implementation.
func NewCartRepository(db *mongo.Database) CartRepository {
	return &cartRepository{users: db.Collection(persistence.UsersCollection)}
}

func (r *cartRepository) AppendLine(ctx context.Context, userID string, line domain.CartLine) (*domain.User, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	update := bson.M{
		"$push": bson.M{"cart": line},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	if err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *cartRepository) GetCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	opts := options.FindOne().SetProjection(bson.M{"cart": 1})

	var doc struct {
		Cart []domain.CartLine `bson:"cart"`
	}
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	if doc.Cart == nil {
		doc.Cart = []domain.CartLine{}
	}
	return doc.Cart, nil
}

func (r *cartRepository) ReplaceCart(ctx context.Context, userID string, lines []domain.CartLine) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	update := bson.M{"$set": bson.M{"cart": lines, "updatedAt": time.Now().UTC()}}

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *cartRepository) ListCarts(ctx context.Context) ([]domain.UserCart, error) {
	opts := options.Find().SetProjection(bson.M{"firstName": 1, "lastName": 1, "cart": 1})
	cursor, err := r.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	carts := make([]domain.UserCart, 0)
	for cursor.Next(ctx) {
		var user domain.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		lines := user.Cart
		if lines == nil {
			lines = []domain.CartLine{}
		}
		carts = append(carts, domain.UserCart{UserID: user.ID, Name: user.FullName(), Orders: lines})
	}
	return carts, cursor.Err()
}
