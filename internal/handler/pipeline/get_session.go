package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSession 获取会话详情
// @Summary      获取会话详情
// @Description  返回会话的完整快照：脚本、素材、媒体片段、效果配置与渲染状态。
// @Tags         流水线
// @Accept       json
// @Produce      json
// @Param        session_id  path      string  true  "会话ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      404         {object}  ErrorResponse  "会话不存在"
// @Router       /api/v1/sessions/{session_id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "session_id is required",
		})
		return
	}

	result, err := h.pipelineService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取成功",
		"data":    result,
	})
}
