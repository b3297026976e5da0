package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BuildItemsResponseData 构建媒体片段响应数据
type BuildItemsResponseData struct {
	Items interface{} `json:"items"` // 媒体片段列表
	Count int         `json:"count"` // 片段数量
}

// BuildMediaItems 将脚本与素材装配为媒体片段列表
// @Summary      构建媒体片段
// @Description  将场景、图片与旁白音频按序配对为媒体片段，片段时长以音频实测时长为准，并为每个片段切分字幕。重新构建会覆盖已有片段并使进行中的渲染失效。
// @Tags         流水线
// @Accept       json
// @Produce      json
// @Param        session_id  path      string  true  "会话ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "脚本或音频尚未生成"
// @Failure      404         {object}  ErrorResponse  "会话不存在"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/sessions/{session_id}/items [post]
func (h *Handler) BuildMediaItems(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "session_id is required",
		})
		return
	}

	items, err := h.pipelineService.BuildMediaItems(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "媒体片段构建成功",
		"data": BuildItemsResponseData{
			Items: items,
			Count: len(items),
		},
	})
}
