package pipeline

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateAudiosResponseData 生成音频响应数据
type GenerateAudiosResponseData struct {
	AudioURLs []string `json:"audio_urls"` // 生成的音频URL列表
	Count     int      `json:"count"`      // 生成的音频数量
}

// GenerateAudios 为会话的每个场景合成旁白音频
// @Summary      生成旁白音频
// @Description  为会话脚本中的每个场景调用TTS合成旁白音频，转存后按场景顺序返回音频URL列表。
// @Tags         素材生成
// @Accept       json
// @Produce      json
// @Param        session_id  path      string  true  "会话ID"
// @Success      200         {object}  map[string]interface{}  "成功响应"
// @Failure      400         {object}  ErrorResponse  "脚本尚未生成"
// @Failure      404         {object}  ErrorResponse  "会话不存在"
// @Failure      500         {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/sessions/{session_id}/audios [post]
func (h *Handler) GenerateAudios(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "session_id is required",
		})
		return
	}

	urls, err := h.pipelineService.GenerateAudios(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "旁白音频生成成功",
		"data": GenerateAudiosResponseData{
			AudioURLs: urls,
			Count:     len(urls),
		},
	})
}
