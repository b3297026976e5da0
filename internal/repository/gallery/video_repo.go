package gallery

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storyreel/internal/model/gallery"
)

// VideoRepository 作品视频仓库接口
type VideoRepository interface {
	Create(ctx context.Context, v *gallery.Video) error
	FindByID(ctx context.Context, id string) (*gallery.Video, error)
	FindBySessionID(ctx context.Context, sessionID string) ([]*gallery.Video, error)
	List(ctx context.Context, page, pageSize int) ([]*gallery.Video, int64, error)
	Delete(ctx context.Context, id string) error
}

// VideoRepo 作品视频仓库实现
type VideoRepo struct {
	coll *mongo.Collection
}

// NewVideoRepo 创建作品视频仓库
func NewVideoRepo(db *mongo.Database) *VideoRepo {
	var v gallery.Video
	return &VideoRepo{coll: db.Collection(v.Collection())}
}

// Create 创建视频记录
func (r *VideoRepo) Create(ctx context.Context, v *gallery.Video) error {
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, v)
	return err
}

// FindByID 根据ID查询
func (r *VideoRepo) FindByID(ctx context.Context, id string) (*gallery.Video, error) {
	var v gallery.Video
	if err := r.coll.FindOne(ctx, bson.M{"id": id, "deleted_at": nil}).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// FindBySessionID 查询会话产出的所有视频
func (r *VideoRepo) FindBySessionID(ctx context.Context, sessionID string) ([]*gallery.Video, error) {
	filter := bson.M{"session_id": sessionID, "deleted_at": nil}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var videos []*gallery.Video
	if err := cur.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// List 分页查询作品列表（按创建时间倒序）
func (r *VideoRepo) List(ctx context.Context, page, pageSize int) ([]*gallery.Video, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	filter := bson.M{"deleted_at": nil}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var videos []*gallery.Video
	if err := cur.All(ctx, &videos); err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// Delete 软删除视频记录
func (r *VideoRepo) Delete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "deleted_at": nil},
		bson.M{"$set": bson.M{"deleted_at": now, "updated_at": now}})
	return err
}
