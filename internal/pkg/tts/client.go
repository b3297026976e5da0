package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"storyreel/internal/config"
	"storyreel/internal/pkg/id"
)

// Client 旁白语音合成客户端
// 调用 TTS HTTP API 将场景旁白文本合成为 mp3 音频
type Client struct {
	apiURL      string
	accessToken string
	appID       string
	cluster     string
	voiceType   string
	sampleRate  int
	httpClient  *http.Client
}

// NewClient 创建 TTS 客户端
func NewClient(cfg *config.TTSConfig) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("TTS access token is required")
	}

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = "https://openspeech.bytedance.com/api/v1/tts"
	}

	cluster := cfg.Cluster
	if cluster == "" {
		cluster = "volcano_tts"
	}

	voiceType := cfg.VoiceType
	if voiceType == "" {
		voiceType = "BV115_streaming"
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = 44100
	}

	return &Client{
		apiURL:      apiURL,
		accessToken: cfg.AccessToken,
		appID:       cfg.AppID,
		cluster:     cluster,
		voiceType:   voiceType,
		sampleRate:  sampleRate,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Result 语音合成结果
type Result struct {
	AudioData []byte  // 音频数据（mp3 二进制）
	Duration  float64 // 音频时长（秒，API 返回时有值，否则为 0）
}

// Synthesize 合成旁白语音
// 返回音频二进制数据；时长以下游 ffprobe 实测为准，这里仅透传 API 报告值
func (c *Client) Synthesize(ctx context.Context, text string, speedRatio float64) (*Result, error) {
	if text == "" {
		return nil, fmt.Errorf("narration text is required")
	}
	if speedRatio <= 0 {
		speedRatio = 1.0
	}

	requestID := id.New()
	reqBody, err := json.Marshal(c.buildRequestConfig(text, requestID, speedRatio))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer; %s", c.accessToken))
	req.Header.Set("Content-Type", "application/json")

	log.Debug().
		Str("request_id", requestID).
		Int("text_len", len(text)).
		Msg("sending TTS request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var apiResp struct {
		Code     float64 `json:"code"`
		Message  string  `json:"message"`
		Data     string  `json:"data"`
		Addition struct {
			Duration string `json:"duration"` // 毫秒（字符串）
		} `json:"addition"`
	}
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("parse JSON response: %w", err)
	}

	if apiResp.Code != 3000 {
		message := apiResp.Message
		if message == "" {
			message = "unknown error"
		}
		return nil, fmt.Errorf("API response error: %s (code: %.0f)", message, apiResp.Code)
	}

	if apiResp.Data == "" {
		return nil, fmt.Errorf("audio data not found in response")
	}

	audioData, err := base64.StdEncoding.DecodeString(apiResp.Data)
	if err != nil {
		return nil, fmt.Errorf("decode audio data: %w", err)
	}

	result := &Result{AudioData: audioData}
	if apiResp.Addition.Duration != "" {
		var ms float64
		if _, err := fmt.Sscanf(apiResp.Addition.Duration, "%f", &ms); err == nil {
			result.Duration = ms / 1000.0
		}
	}

	return result, nil
}

// buildRequestConfig 构建请求配置
func (c *Client) buildRequestConfig(text, requestID string, speedRatio float64) map[string]interface{} {
	appConfig := map[string]interface{}{
		"token":   c.accessToken,
		"cluster": c.cluster,
	}
	if c.appID != "" {
		appConfig["appid"] = c.appID
	}

	audioConfig := map[string]interface{}{
		"voice_type":   c.voiceType,
		"encoding":     "mp3",
		"rate":         c.sampleRate,
		"speed_ratio":  speedRatio,
		"volume_ratio": 1.0,
		"pitch_ratio":  1.0,
	}

	requestConfig := map[string]interface{}{
		"reqid":     requestID,
		"text":      text,
		"text_type": "plain",
		"operation": "query",
	}

	return map[string]interface{}{
		"app":     appConfig,
		"user":    map[string]interface{}{"uid": requestID},
		"audio":   audioConfig,
		"request": requestConfig,
	}
}
