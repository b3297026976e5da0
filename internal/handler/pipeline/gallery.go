package pipeline

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListVideosResponseData 作品列表响应数据
type ListVideosResponseData struct {
	Videos   []VideoInfo `json:"videos"`    // 作品列表
	Total    int64       `json:"total"`     // 总数
	Page     int         `json:"page"`      // 当前页
	PageSize int         `json:"page_size"` // 每页数量
}

// ListVideos 查询作品列表
// @Summary      查询作品列表
// @Description  分页返回已转存的作品视频，按创建时间倒序。
// @Tags         作品
// @Accept       json
// @Produce      json
// @Param        page       query     int  false  "页码（默认1）"
// @Param        page_size  query     int  false  "每页数量（默认20）"
// @Success      200        {object}  map[string]interface{}  "成功响应"
// @Failure      500        {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/videos [get]
func (h *Handler) ListVideos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	videos, total, err := h.finalizeService.ListVideos(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取成功",
		"data": ListVideosResponseData{
			Videos:   toVideoInfoList(videos),
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		},
	})
}

// GetVideo 获取作品详情
// @Summary      获取作品详情
// @Description  根据视频ID返回单个作品的详细信息。
// @Tags         作品
// @Accept       json
// @Produce      json
// @Param        video_id  path      string  true  "视频ID"
// @Success      200       {object}  map[string]interface{}  "成功响应"
// @Failure      404       {object}  ErrorResponse  "视频不存在"
// @Router       /api/v1/videos/{video_id} [get]
func (h *Handler) GetVideo(c *gin.Context) {
	videoID := c.Param("video_id")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "video_id is required",
		})
		return
	}

	video, err := h.finalizeService.GetVideo(c.Request.Context(), videoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取成功",
		"data":    toVideoInfo(video),
	})
}
