package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "storyreel/internal/pkg/http"
	"storyreel/internal/pkg/storage/local"
)

// UploadHandler 本地直传处理器
// 仅本地存储模式启用，承接预签名上传URL指向的服务端上传接口
type UploadHandler struct {
	storage *local.LocalStorage
}

// NewUploadHandler 创建本地直传处理器
func NewUploadHandler(storage *local.LocalStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Upload 通过上传token写入文件
// @Summary      本地直传
// @Description  校验预签名上传URL携带的token后将请求体写入本地存储。token与key绑定，不匹配则拒绝。
// @Tags         资源
// @Accept       octet-stream
// @Produce      json
// @Param        token  query     string  true  "上传token"
// @Param        key    query     string  true  "存储key"
// @Success      200    {object}  map[string]interface{}  "成功响应"
// @Failure      401    {object}  httputil.ErrorResponse  "token无效"
// @Router       /api/v1/internal/resources/upload [put]
func (h *UploadHandler) Upload(c *gin.Context) {
	token := c.Query("token")
	key := c.Query("key")
	if token == "" || key == "" {
		c.JSON(http.StatusBadRequest, httputil.ErrorResponse{
			Code:    40001,
			Message: "token and key are required",
		})
		return
	}

	grantedKey, err := h.storage.ValidateUploadToken(token)
	if err != nil || grantedKey != key {
		c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
			Code:    40102,
			Message: "Invalid upload token",
		})
		return
	}

	url, err := h.storage.Upload(c.Request.Context(), key, c.Request.Body, c.ContentType())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httputil.ErrorResponse{
			Code:    50001,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "上传成功",
		"data":    gin.H{"url": url, "key": key},
	})
}
