package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/food-order-service/internal/domain"
	"github.com/spec-kit/food-order-service/internal/persistence"
)

// UserRepository is the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	users *mongo.Collection
}

// NewUserRepository returns a MongoDB-backed implementation.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{users: db.Collection(persistence.UsersCollection)}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NilObjectID
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Cart == nil {
		user.Cart = []domain.CartLine{}
	}

	res, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	res, err := r.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}
