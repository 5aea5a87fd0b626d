package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the unique email index rejects a user.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Set bundles the repositories backed by one store.
type Set struct {
	Users  UserRepository
	Carts  CartRepository
	Orders OrderRepository
	Menu   MenuRepository
}

// NewMongoSet builds MongoDB-backed repositories over db.
func NewMongoSet(db *mongo.Database) Set {
	return Set{
		Users:  NewUserRepository(db),
		Carts:  NewCartRepository(db),
		Orders: NewOrderRepository(db),
		Menu:   NewMenuRepository(db),
	}
}

// objectID parses a hex id. Ids that cannot be parsed cannot resolve to a
// document, so they report ErrNotFound.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
