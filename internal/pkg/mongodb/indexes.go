package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"parley/internal/model"
)

// EnsureIndexes 应用启动时为所有集合创建索引
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return EnsureAllIndexes(ctx, db,
		&model.Conversation{},
	)
}
