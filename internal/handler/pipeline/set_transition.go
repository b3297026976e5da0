package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetTransitionRequest 设置转场请求
type SetTransitionRequest struct {
	Edge       string `json:"edge" binding:"required"`       // 转场边：in 或 out
	Transition string `json:"transition" binding:"required"` // 转场标签：none/fade/wipeLeft/wipeRight/zoom
}

// SetTransition 设置片段转场
// @Summary      设置片段转场
// @Description  设置指定片段入场或出场的转场效果。未知的片段ID是空操作；实际发生修改会使进行中的渲染失效。
// @Tags         编辑
// @Accept       json
// @Produce      json
// @Param        session_id  path      string                true  "会话ID"
// @Param        item_id     path      string                true  "片段ID"
// @Param        request     body      SetTransitionRequest  true  "设置转场请求"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "无效的转场边或标签"
// @Failure      404         {object}  ErrorResponse  "会话不存在"
// @Router       /api/v1/sessions/{session_id}/items/{item_id}/transition [put]
func (h *Handler) SetTransition(c *gin.Context) {
	sessionID := c.Param("session_id")
	itemID := c.Param("item_id")
	if sessionID == "" || itemID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "session_id and item_id are required",
		})
		return
	}

	var req SetTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	if err := h.pipelineService.SetTransition(c.Request.Context(), sessionID, itemID, req.Edge, req.Transition); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "转场设置成功",
	})
}
