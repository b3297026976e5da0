package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SubmitRenderResponseData 提交渲染响应数据
type SubmitRenderResponseData struct {
	JobID string `json:"job_id"` // 外部渲染任务ID
}

// SubmitRender 构建时间轴并提交渲染
// @Summary      提交渲染
// @Description  将当前片段列表与效果配置构建为时间轴，提交到外部渲染服务并开始后台轮询进度。已有进行中的渲染任务时返回409。
// @Tags         渲染
// @Accept       json
// @Produce      json
// @Param        session_id  path      string  true  "会话ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "媒体片段尚未构建"
// @Failure      404         {object}  ErrorResponse  "会话不存在"
// @Failure      409         {object}  ErrorResponse  "已有渲染任务进行中"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/sessions/{session_id}/render [post]
func (h *Handler) SubmitRender(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "session_id is required",
		})
		return
	}

	jobID, err := h.pipelineService.SubmitRender(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "渲染任务已提交",
		"data": SubmitRenderResponseData{
			JobID: jobID,
		},
	})
}
