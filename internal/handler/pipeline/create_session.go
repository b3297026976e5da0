package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateSessionRequest 创建会话请求
type CreateSessionRequest struct {
	Prompt string `json:"prompt" binding:"required"` // 视频主题提示词（必填）
}

// CreateSession 创建会话并生成分镜脚本
// @Summary      创建流水线会话
// @Description  根据提示词生成分镜脚本并创建流水线会话，后续的素材生成、编辑与渲染都在该会话内进行。
// @Tags         流水线
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSessionRequest  true  "创建会话请求"
// @Success      200      {object}  map[string]interface{}  "成功响应"
// @Failure      400      {object}  ErrorResponse  "请求参数错误"
// @Failure      500      {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	result, err := h.pipelineService.CreateSession(c.Request.Context(), req.Prompt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "会话创建成功",
		"data":    result,
	})
}
