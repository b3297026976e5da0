package renderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client 外部渲染服务客户端
// 提交声明式时间轴文档，返回异步任务ID；随后按任务ID查询状态。
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient 创建渲染服务客户端
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("render service base URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("render service API key is required")
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Submit 提交渲染任务
// POST {base}/render，成功返回任务ID
func (c *Client) Submit(ctx context.Context, req *RenderRequest) (string, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal render request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/render", c.baseURL)

	log.Debug().
		Str("api_url", apiURL).
		Int("tracks", len(req.Timeline.Tracks)).
		Msg("提交渲染任务")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		log.Error().
			Int("status_code", resp.StatusCode).
			Str("url", apiURL).
			Str("response_body", string(body)).
			Msg("渲染任务提交失败")
		return "", fmt.Errorf("render submission failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if apiResp.ID == "" {
		return "", fmt.Errorf("job ID is empty in response")
	}

	return apiResp.ID, nil
}

// Status 查询渲染任务状态
// GET {base}/render/{id}
func (c *Client) Status(ctx context.Context, jobID string) (*RenderStatus, error) {
	apiURL := fmt.Sprintf("%s/render/%s", c.baseURL, jobID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().
			Int("status_code", resp.StatusCode).
			Str("url", apiURL).
			Str("job_id", jobID).
			Str("response_body", string(body)).
			Msg("查询渲染任务状态失败")
		return nil, fmt.Errorf("render status query failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var status RenderStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if status.ID == "" {
		status.ID = jobID
	}

	return &status, nil
}
