package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pipelinecore "storyreel/internal/pipeline"
)

// SetEffectRequest 设置全局效果请求
type SetEffectRequest struct {
	SubtitleStyle    string  `json:"subtitle_style"`    // 字幕样式
	SubtitlePosition string  `json:"subtitle_position"` // 字幕位置
	MusicStyle       string  `json:"music_style"`       // 背景音乐风格标签
	MusicURL         string  `json:"music_url"`         // 背景音乐文件地址
	MusicVolume      float64 `json:"music_volume"`      // 背景音乐音量（0.0-1.0）
}

// SetEffect 设置全局效果
// @Summary      设置全局效果
// @Description  设置整条流水线共用的字幕样式、字幕位置与背景音乐。修改会使进行中的渲染失效。
// @Tags         编辑
// @Accept       json
// @Produce      json
// @Param        session_id  path      string            true  "会话ID"
// @Param        request     body      SetEffectRequest  true  "设置效果请求"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "请求参数错误"
// @Failure      404         {object}  ErrorResponse  "会话不存在"
// @Router       /api/v1/sessions/{session_id}/effect [put]
func (h *Handler) SetEffect(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "session_id is required",
		})
		return
	}

	var req SetEffectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	effect := pipelinecore.Effect{
		SubtitleStyle:    req.SubtitleStyle,
		SubtitlePosition: req.SubtitlePosition,
		Music: pipelinecore.MusicStyle{
			Style:  req.MusicStyle,
			MP3URL: req.MusicURL,
			Volume: req.MusicVolume,
		},
	}

	if err := h.pipelineService.SetEffect(c.Request.Context(), sessionID, effect); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "效果设置成功",
	})
}
