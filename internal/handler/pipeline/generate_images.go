package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateImagesResponseData 生成图片响应数据
type GenerateImagesResponseData struct {
	ImageURLs []string `json:"image_urls"` // 生成的图片URL列表
	Count     int      `json:"count"`      // 生成的图片数量
}

// GenerateImages 为会话的每个场景生成图片
// @Summary      生成场景图片
// @Description  以每个场景的画面描述为提示词调用图片生成服务，转存后按场景顺序返回图片URL列表。
// @Tags         素材生成
// @Accept       json
// @Produce      json
// @Param        session_id  path      string  true  "会话ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "脚本尚未生成"
// @Failure      404         {object}  ErrorResponse  "会话不存在"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/sessions/{session_id}/images [post]
func (h *Handler) GenerateImages(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "session_id is required",
		})
		return
	}

	urls, err := h.pipelineService.GenerateImages(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "场景图片生成成功",
		"data": GenerateImagesResponseData{
			ImageURLs: urls,
			Count:     len(urls),
		},
	})
}
