package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReorderRequest 片段重排序请求
type ReorderRequest struct {
	SourceIndex      *int `json:"source_index" binding:"required"`      // 源位置（从0开始）
	DestinationIndex *int `json:"destination_index" binding:"required"` // 目标位置（从0开始）
}

// Reorder 移动片段位置
// @Summary      片段重排序
// @Description  将片段从源位置移动到目标位置（移除后插入语义）。任一下标越界则不做任何修改。成功的重排序会使进行中的渲染失效。
// @Tags         编辑
// @Accept       json
// @Produce      json
// @Param        session_id  path      string          true  "会话ID"
// @Param        request     body      ReorderRequest  true  "重排序请求"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "下标越界或参数错误"
// @Failure      404         {object}  ErrorResponse  "会话不存在"
// @Router       /api/v1/sessions/{session_id}/items/reorder [post]
func (h *Handler) Reorder(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "session_id is required",
		})
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	if err := h.pipelineService.Reorder(c.Request.Context(), sessionID, *req.SourceIndex, *req.DestinationIndex); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "重排序成功",
	})
}
