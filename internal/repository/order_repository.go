package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/persistence"
)

// OrderRepository persists independent order documents referenced from users.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	// AttachToUser appends the order reference to the user's orders array.
	AttachToUser(ctx context.Context, userID string, orderID primitive.ObjectID) error
	// ListForUser resolves the user's references in their stored order.
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type orderRepository struct {
	orders *mongo.Collection
	users  *mongo.Collection
}

// NewOrderRepository returns a MongoDB-backed implementation.
func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{orders: db.Collection(persistence.OrdersCollection), users: db.Collection(persistence.UsersCollection)}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	order.ID = primitive.NilObjectID
	order.CreatedAt = time.Now().UTC()

	res, err := r.orders.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

func (r *orderRepository) AttachToUser(ctx context.Context, userID string, orderID primitive.ObjectID) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	update := bson.M{
		"$push": bson.M{"orders": orderID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}

	var user struct {
		Orders []primitive.ObjectID `bson:"orders"`
	}
	opts := options.FindOne().SetProjection(bson.M{"orders": 1})
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	if len(user.Orders) == 0 {
		return []domain.Order{}, nil
	}

	cursor, err := r.orders.Find(ctx, bson.M{"_id": bson.M{"$in": user.Orders}})
	if err != nil {
		return nil, err
	}
	var found []domain.Order
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	return inReferenceOrder(user.Orders, found), nil
}

// inReferenceOrder arranges orders as referenced, dropping dangling references.
func inReferenceOrder(refs []primitive.ObjectID, orders []domain.Order) []domain.Order {
	byID := make(map[primitive.ObjectID]domain.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}
	out := make([]domain.Order, 0, len(refs))
	for _, ref := range refs {
		if o, ok := byID[ref]; ok {
			out = append(out, o)
		}
	}
	return out
}
