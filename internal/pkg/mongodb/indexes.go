package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"storyreel/internal/model/gallery"
)

// EnsureIndexes 创建所有模型的索引
// 应用启动时调用
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&gallery.Video{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
