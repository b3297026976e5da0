package gallery

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Video 已发布视频实体
// 用途：渲染完成并转存后入库，作为作品列表的数据来源
type Video struct {
	ID string `bson:"id" json:"id"` // 视频ID（UUID）

	// 来源会话
	SessionID string `bson:"session_id" json:"session_id"`
	Prompt    string `bson:"prompt" json:"prompt"` // 生成视频的原始提示词

	Title string `bson:"title,omitempty" json:"title,omitempty"` // 视频标题
	URL   string `bson:"url" json:"url"`                         // 转存后的视频URL

	// 视频属性
	Duration   float64 `bson:"duration" json:"duration"`     // 总时长（秒）
	Format     string  `bson:"format" json:"format"`         // 输出格式（mp4）
	Resolution string  `bson:"resolution" json:"resolution"` // 分辨率（hd 等）
	SceneCount int     `bson:"scene_count" json:"scene_count"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// Collection 返回集合名称
func (v *Video) Collection() string { return "gallery_videos" }

// EnsureIndexes 创建和维护索引
func (v *Video) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(v.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetName("idx_session_id"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
