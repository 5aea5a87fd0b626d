package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/spec-kit/food-order-service/internal/config"
)

const (
	UsersCollection  = "users"
	OrdersCollection = "orders"
	MenuCollection   = "menu_items"
)

// ErrMongoDisabled is returned when no URI is configured.
var ErrMongoDisabled = errors.New("mongo not configured")

// Mongo wraps access to a MongoDB client and database.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo connects when a URI is provided. A failed initial ping is logged and
// the client is still returned; calls then fail individually.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	if cfg.URI == "" {
		logger.Warn("MONGO_URI not provided; using in-memory store")
		return &Mongo{}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		logger.Warn("unable to reach mongo", zap.Error(err))
	} else {
		logger.Info("connected to mongo", zap.String("database", cfg.Database))
	}

	return &Mongo{Client: client, DB: client.Database(cfg.Database)}, nil
}

// Enabled reports whether a database is configured.
func (m *Mongo) Enabled() bool {
	return m != nil && m.DB != nil
}

// Collection returns a handle to the named collection.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) {
	if m != nil && m.Client != nil {
		_ = m.Client.Disconnect(ctx)
	}
}

// Ping verifies MongoDB connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	if !m.Enabled() {
		return ErrMongoDisabled
	}
	return m.Client.Ping(ctx, readpref.Primary())
}
