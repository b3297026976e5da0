package pipeline

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storyreel/internal/model/gallery"
	pipelinecore "storyreel/internal/pipeline"
	httputil "storyreel/internal/pkg/http"
	"storyreel/internal/service"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// VideoInfo 作品信息 DTO
type VideoInfo struct {
	ID         string  `json:"id"`              // 视频ID
	SessionID  string  `json:"session_id"`      // 来源会话ID
	Prompt     string  `json:"prompt"`          // 原始提示词
	Title      string  `json:"title,omitempty"` // 标题
	URL        string  `json:"url"`             // 视频URL
	Duration   float64 `json:"duration"`        // 总时长（秒）
	Format     string  `json:"format"`          // 输出格式
	Resolution string  `json:"resolution"`      // 分辨率
	SceneCount int     `json:"scene_count"`     // 场景数
	CreatedAt  string  `json:"created_at"`      // 创建时间
}

// toVideoInfo 将 Video 实体转换为 VideoInfo
func toVideoInfo(v *gallery.Video) VideoInfo {
	return VideoInfo{
		ID:         v.ID,
		SessionID:  v.SessionID,
		Prompt:     v.Prompt,
		Title:      v.Title,
		URL:        v.URL,
		Duration:   v.Duration,
		Format:     v.Format,
		Resolution: v.Resolution,
		SceneCount: v.SceneCount,
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
}

// toVideoInfoList 将 Video 列表转换为 VideoInfo 列表
func toVideoInfoList(videos []*gallery.Video) []VideoInfo {
	result := make([]VideoInfo, len(videos))
	for i, v := range videos {
		result[i] = toVideoInfo(v)
	}
	return result
}

// respondServiceError 根据Service层错误类型返回响应
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrVideoNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    40401,
			Message: err.Error(),
		})
	case errors.Is(err, pipelinecore.ErrRenderInFlight):
		c.JSON(http.StatusConflict, ErrorResponse{
			Code:    40901,
			Message: err.Error(),
		})
	case errors.Is(err, pipelinecore.ErrIndexOutOfRange),
		errors.Is(err, service.ErrScenesNotReady),
		errors.Is(err, service.ErrAudiosNotReady),
		errors.Is(err, service.ErrItemsNotReady),
		errors.Is(err, service.ErrInvalidEdge),
		errors.Is(err, service.ErrInvalidTag),
		errors.Is(err, service.ErrRenderNotDone):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40002,
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: err.Error(),
		})
	}
}
