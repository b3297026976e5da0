package t2i

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/volcengine/volcengine-go-sdk/volcengine"
	"github.com/volcengine/volcengine-go-sdk/volcengine/credentials"
	"github.com/volcengine/volcengine-go-sdk/volcengine/session"

	"storyreel/internal/config"
)

// Client 场景图片生成客户端（text-to-image）
// 调用火山引擎 visual 服务，从场景描述生成竖版场景图
type Client struct {
	cfg        *config.ImageConfig
	session    *session.Session
	httpClient *http.Client
	apiURL     string
	accessKey  string
	secretKey  string
}

// NewClient 创建图片生成客户端
func NewClient(cfg *config.ImageConfig) (*Client, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("image service access key and secret key are required")
	}

	creds := credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")

	region := cfg.Region
	if region == "" {
		region = "cn-north-1"
	}

	volcengineConfig := volcengine.NewConfig().
		WithCredentials(creds).
		WithRegion(region)

	sess, err := session.NewSession(volcengineConfig)
	if err != nil {
		return nil, fmt.Errorf("create volcengine session: %w", err)
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = "https://visual.volcengineapi.com"
	}

	return &Client{
		cfg:        cfg,
		session:    sess,
		httpClient: &http.Client{Timeout: 300 * time.Second},
		apiURL:     apiURL,
		accessKey:  cfg.AccessKey,
		secretKey:  cfg.SecretKey,
	}, nil
}

// generateImageResponse 图片生成响应
type generateImageResponse struct {
	ResponseMetadata *struct {
		Error *struct {
			Code    string `json:"Code"`
			Message string `json:"Message"`
		} `json:"Error,omitempty"`
	} `json:"ResponseMetadata,omitempty"`
	Data *struct {
		BinaryDataBase64 []string `json:"binary_data_base64,omitempty"`
		ImageURL         []string `json:"image_url,omitempty"`
	} `json:"data,omitempty"`
}

// GenerateImage 根据提示词生成一张图片，返回图片二进制数据
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if prompt == "" {
		return nil, fmt.Errorf("image prompt is required")
	}

	reqKey := c.cfg.ReqKey
	if reqKey == "" {
		reqKey = "high_aes_general_v21_L"
	}
	width := c.cfg.Width
	if width == 0 {
		width = 720
	}
	height := c.cfg.Height
	if height == 0 {
		height = 1280
	}
	scale := c.cfg.Scale
	if scale == 0 {
		scale = 3.5
	}

	form := map[string]interface{}{
		"req_key":    reqKey,
		"prompt":     prompt,
		"seed":       -1,
		"scale":      scale,
		"width":      width,
		"height":     height,
		"use_sr":     true,
		"return_url": false,
	}

	requestBody, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	apiURL := fmt.Sprintf("%s/?Action=CVProcess&Version=2020-08-26", c.apiURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if err := c.signRequest(httpReq, requestBody); err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var apiResp generateImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if apiResp.ResponseMetadata != nil && apiResp.ResponseMetadata.Error != nil {
		return nil, fmt.Errorf("API error: %s - %s",
			apiResp.ResponseMetadata.Error.Code,
			apiResp.ResponseMetadata.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed, status: %d", resp.StatusCode)
	}

	if apiResp.Data == nil || len(apiResp.Data.BinaryDataBase64) == 0 {
		return nil, fmt.Errorf("no image data in response")
	}

	imageData, err := base64.StdEncoding.DecodeString(apiResp.Data.BinaryDataBase64[0])
	if err != nil {
		return nil, fmt.Errorf("decode base64 image data: %w", err)
	}

	return imageData, nil
}

// signRequest 为请求添加火山引擎签名
// 参考: https://www.volcengine.com/docs/6460/6490
func (c *Client) signRequest(req *http.Request, body []byte) error {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	date := timestamp[:8]

	region := c.cfg.Region
	if region == "" {
		region = "cn-north-1"
	}

	uri := req.URL.Path
	if uri == "" {
		uri = "/"
	}

	stringToSign := fmt.Sprintf("%s\n%s\n%s\n%s\n%s",
		req.Method,
		uri,
		req.URL.Query().Encode(),
		"",
		string(body))

	// 逐级派生签名密钥: date -> region -> service -> request
	kDate := hmacSHA256([]byte(c.secretKey), date)
	kRegion := hmacSHA256(kDate, region)
	kService := hmacSHA256(kRegion, "visual")
	kSigning := hmacSHA256(kService, "request")
	signature := hmacSHA256(kSigning, stringToSign)

	authorization := fmt.Sprintf("HMAC-SHA256 Credential=%s/%s/%s/visual/request, SignedHeaders=, Signature=%x",
		c.accessKey,
		date,
		region,
		signature)

	req.Header.Set("Authorization", authorization)
	req.Header.Set("X-Date", timestamp)

	return nil
}

// hmacSHA256 计算 HMAC-SHA256
func hmacSHA256(key []byte, data string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return h.Sum(nil)
}
