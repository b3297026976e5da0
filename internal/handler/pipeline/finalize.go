package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FinalizeRequest 终片转存请求
type FinalizeRequest struct {
	Title string `json:"title"` // 作品标题（可选）
}

// Finalize 转存渲染产物并登记作品
// @Summary      终片转存
// @Description  渲染完成后将产物从渲染服务下载并转存到自有存储，同时创建作品记录。要求当前渲染任务处于done状态。
// @Tags         渲染
// @Accept       json
// @Produce      json
// @Param        session_id  path      string           true   "会话ID"
// @Param        request     body      FinalizeRequest  false  "终片转存请求"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "渲染尚未完成"
// @Failure      404         {object}  ErrorResponse  "会话不存在"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/sessions/{session_id}/finalize [post]
func (h *Handler) Finalize(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "session_id is required",
		})
		return
	}

	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	video, err := h.finalizeService.Finalize(c.Request.Context(), sessionID, req.Title)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "终片转存成功",
		"data":    toVideoInfo(video),
	})
}
