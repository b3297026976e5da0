package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RenderStatus 查询渲染状态
// @Summary      查询渲染状态
// @Description  返回会话当前渲染任务的状态、进度与产物地址。进度由后台轮询循环推进，前端只需轮询本接口。
// @Tags         渲染
// @Accept       json
// @Produce      json
// @Param        session_id  path      string  true  "会话ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      404         {object}  ErrorResponse  "会话不存在"
// @Router       /api/v1/sessions/{session_id}/render [get]
func (h *Handler) RenderStatus(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "session_id is required",
		})
		return
	}

	job, err := h.pipelineService.RenderStatus(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "获取成功",
		"data":    job,
	})
}
