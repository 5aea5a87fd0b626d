package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

// indexes lists the indexes the repositories rely on. The unique email index is
// what turns a racing duplicate registration into a conflict.
var indexes = []indexSpec{
	{
		collection: UsersCollection,
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	},
	{
		collection: OrdersCollection,
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("idx_user"),
		},
	},
	{
		collection: MenuCollection,
		model: mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},
}

// RunMigrations creates the indexes. Creating an existing index is a no-op.
func RunMigrations(ctx context.Context, m *Mongo, logger *zap.Logger) error {
	if !m.Enabled() {
		logger.Warn("no mongo database available; skipping migrations")
		return nil
	}

	for _, idx := range indexes {
		name, err := m.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model)
		if err != nil {
			return fmt.Errorf("create index on %s: %w", idx.collection, err)
		}
		logger.Info("index ensured", zap.String("collection", idx.collection), zap.String("index", name))
	}

	logger.Info("migrations applied", zap.Int("count", len(indexes)))
	return nil
}
