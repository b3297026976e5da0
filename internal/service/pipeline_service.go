package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"storyreel/internal/ai/chain"
	"storyreel/internal/config"
	"storyreel/internal/pipeline"
	"storyreel/internal/pkg/id"
	"storyreel/internal/pkg/renderapi"
	"storyreel/internal/pkg/storage"
	"storyreel/internal/pkg/t2i"
	"storyreel/internal/pkg/tts"
)

var (
	ErrSessionNotFound = errors.New("会话不存在")
	ErrScenesNotReady  = errors.New("脚本尚未生成")
	ErrAudiosNotReady  = errors.New("旁白音频尚未生成")
	ErrItemsNotReady   = errors.New("媒体片段尚未构建")
	ErrInvalidEdge     = errors.New("无效的转场边")
	ErrInvalidTag      = errors.New("无效的转场标签")
)

// PipelineService 视频流水线服务接口
// 管理会话生命周期：脚本 -> 素材 -> 片段 -> 编辑 -> 渲染
type PipelineService interface {
	// CreateSession 创建会话并生成分镜脚本
	CreateSession(ctx context.Context, prompt string) (*SessionResult, error)

	// GetSession 获取会话快照
	GetSession(ctx context.Context, sessionID string) (*SessionResult, error)

	// GenerateAudios 为每个场景合成旁白音频并转存
	GenerateAudios(ctx context.Context, sessionID string) ([]string, error)

	// GenerateImages 为每个场景生成图片并转存
	GenerateImages(ctx context.Context, sessionID string) ([]string, error)

	// BuildMediaItems 将脚本与素材装配为媒体片段列表
	BuildMediaItems(ctx context.Context, sessionID string) ([]pipeline.MediaItem, error)

	// Reorder 移动片段位置
	Reorder(ctx context.Context, sessionID string, sourceIndex, destinationIndex int) error

	// SetTransition 设置片段转场
	SetTransition(ctx context.Context, sessionID, itemID, edge, transition string) error

	// SetEffect 设置全局效果（字幕样式/位置、背景音乐）
	SetEffect(ctx context.Context, sessionID string, effect pipeline.Effect) error

	// SubmitRender 构建时间轴并提交渲染
	SubmitRender(ctx context.Context, sessionID string) (string, error)

	// RenderStatus 查询当前渲染任务状态
	RenderStatus(ctx context.Context, sessionID string) (pipeline.RenderJob, error)

	// Session 获取底层会话（供终片转存等内部流程使用）
	Session(sessionID string) (*pipeline.Session, error)
}

// SessionResult 会话快照
type SessionResult struct {
	ID        string               `json:"id"`
	Prompt    string               `json:"prompt"`
	Scenes    []pipeline.Scene     `json:"scenes,omitempty"`
	Images    []string             `json:"images,omitempty"`
	AudioURLs []string             `json:"audio_urls,omitempty"`
	Items     []pipeline.MediaItem `json:"items,omitempty"`
	Effect    pipeline.Effect      `json:"effect"`
	Render    pipeline.RenderJob   `json:"render"`
	CreatedAt time.Time            `json:"created_at"`
}

// pipelineService 视频流水线服务实现
type pipelineService struct {
	mu       sync.RWMutex
	sessions map[string]*pipeline.Session

	script    *chain.ScriptChain
	tts       *tts.Client
	images    *t2i.Client
	storage   storage.Storage
	mapper    *pipeline.ClipMapper
	renderAPI pipeline.RenderAPI
	renderCfg *config.RenderConfig
}

// NewPipelineService 创建视频流水线服务
func NewPipelineService(
	script *chain.ScriptChain,
	ttsClient *tts.Client,
	imageClient *t2i.Client,
	store storage.Storage,
	mapper *pipeline.ClipMapper,
	renderAPI pipeline.RenderAPI,
	renderCfg *config.RenderConfig,
) PipelineService {
	return &pipelineService{
		sessions:  make(map[string]*pipeline.Session),
		script:    script,
		tts:       ttsClient,
		images:    imageClient,
		storage:   store,
		mapper:    mapper,
		renderAPI: renderAPI,
		renderCfg: renderCfg,
	}
}

// CreateSession 创建会话并生成分镜脚本
func (s *pipelineService) CreateSession(ctx context.Context, prompt string) (*SessionResult, error) {
	scenes, err := s.script.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	sessionID := id.New()
	controller := pipeline.NewRenderController(s.renderAPI,
		pipeline.WithPollInterval(s.renderCfg.PollInterval),
		pipeline.WithMaxPollAttempts(s.renderCfg.MaxPollAttempts),
	)

	sess := pipeline.NewSession(sessionID, prompt, controller)
	sess.SetScenes(scenes)

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	log.Info().
		Str("session_id", sessionID).
		Int("scene_count", len(scenes)).
		Msg("Pipeline session created")

	return s.snapshot(sess), nil
}

// GetSession 获取会话快照
func (s *pipelineService) GetSession(ctx context.Context, sessionID string) (*SessionResult, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sess), nil
}

// GenerateAudios 为每个场景合成旁白音频并转存
func (s *pipelineService) GenerateAudios(ctx context.Context, sessionID string) ([]string, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}

	scenes := sess.Scenes()
	if len(scenes) == 0 {
		return nil, ErrScenesNotReady
	}

	urls := make([]string, 0, len(scenes))
	for i, scene := range scenes {
		result, err := s.tts.Synthesize(ctx, scene.Narration, 1.0)
		if err != nil {
			return nil, fmt.Errorf("synthesize audio for scene %d: %w", i+1, err)
		}

		key := fmt.Sprintf("audios/%s/%d.mp3", sessionID, i+1)
		url, err := s.storage.Upload(ctx, key, bytes.NewReader(result.AudioData), "audio/mpeg")
		if err != nil {
			return nil, fmt.Errorf("upload audio for scene %d: %w", i+1, err)
		}
		urls = append(urls, url)
	}

	sess.SetAudioURLs(urls)

	log.Info().
		Str("session_id", sessionID).
		Int("audio_count", len(urls)).
		Msg("Narration audios generated")
	return urls, nil
}

// GenerateImages 为每个场景生成图片并转存
func (s *pipelineService) GenerateImages(ctx context.Context, sessionID string) ([]string, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}

	scenes := sess.Scenes()
	if len(scenes) == 0 {
		return nil, ErrScenesNotReady
	}

	urls := make([]string, 0, len(scenes))
	for i, scene := range scenes {
		data, err := s.images.GenerateImage(ctx, scene.Description)
		if err != nil {
			return nil, fmt.Errorf("generate image for scene %d: %w", i+1, err)
		}

		key := fmt.Sprintf("images/%s/%d.png", sessionID, i+1)
		url, err := s.storage.Upload(ctx, key, bytes.NewReader(data), "image/png")
		if err != nil {
			return nil, fmt.Errorf("upload image for scene %d: %w", i+1, err)
		}
		urls = append(urls, url)
	}

	sess.SetImages(urls)

	log.Info().
		Str("session_id", sessionID).
		Int("image_count", len(urls)).
		Msg("Scene images generated")
	return urls, nil
}

// BuildMediaItems 将脚本与素材装配为媒体片段列表
func (s *pipelineService) BuildMediaItems(ctx context.Context, sessionID string) ([]pipeline.MediaItem, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return nil, err
	}

	scenes := sess.Scenes()
	if len(scenes) == 0 {
		return nil, ErrScenesNotReady
	}
	audioURLs := sess.AudioURLs()
	if len(audioURLs) == 0 {
		return nil, ErrAudiosNotReady
	}

	items, err := s.mapper.BuildMediaItems(ctx, scenes, sess.Images(), audioURLs)
	if err != nil {
		return nil, err
	}

	sess.ReplaceItems(items)
	return items, nil
}

// Reorder 移动片段位置
func (s *pipelineService) Reorder(ctx context.Context, sessionID string, sourceIndex, destinationIndex int) error {
	sess, err := s.Session(sessionID)
	if err != nil {
		return err
	}
	return sess.Reorder(sourceIndex, destinationIndex)
}

// SetTransition 设置片段转场
func (s *pipelineService) SetTransition(ctx context.Context, sessionID, itemID, edge, transition string) error {
	sess, err := s.Session(sessionID)
	if err != nil {
		return err
	}

	parsedEdge, ok := pipeline.ParseTransitionEdge(edge)
	if !ok {
		return ErrInvalidEdge
	}
	parsedTag, ok := pipeline.ParseTransition(transition)
	if !ok {
		return ErrInvalidTag
	}

	sess.SetTransition(itemID, parsedEdge, parsedTag)
	return nil
}

// SetEffect 设置全局效果
func (s *pipelineService) SetEffect(ctx context.Context, sessionID string, effect pipeline.Effect) error {
	sess, err := s.Session(sessionID)
	if err != nil {
		return err
	}
	sess.SetEffect(effect)
	return nil
}

// SubmitRender 构建时间轴并提交渲染
func (s *pipelineService) SubmitRender(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return "", err
	}

	items, effect := sess.Snapshot()
	if len(items) == 0 {
		return "", ErrItemsNotReady
	}

	output := renderapi.Output{
		Format:      s.renderCfg.OutputFormat,
		Resolution:  s.renderCfg.OutputResolution,
		AspectRatio: s.renderCfg.AspectRatio,
	}

	req, err := pipeline.BuildTimeline(items, effect, output)
	if err != nil {
		return "", err
	}

	jobID, err := sess.Controller().Submit(ctx, req)
	if err != nil {
		return "", err
	}

	log.Info().
		Str("session_id", sessionID).
		Str("job_id", jobID).
		Float64("total_duration", pipeline.TotalDuration(items)).
		Msg("Render job submitted")
	return jobID, nil
}

// RenderStatus 查询当前渲染任务状态
func (s *pipelineService) RenderStatus(ctx context.Context, sessionID string) (pipeline.RenderJob, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return pipeline.RenderJob{}, err
	}
	return sess.Controller().Job(), nil
}

// Session 获取底层会话
func (s *pipelineService) Session(sessionID string) (*pipeline.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// snapshot 组装会话快照
func (s *pipelineService) snapshot(sess *pipeline.Session) *SessionResult {
	items, effect := sess.Snapshot()
	return &SessionResult{
		ID:        sess.ID(),
		Prompt:    sess.Prompt(),
		Scenes:    sess.Scenes(),
		Images:    sess.Images(),
		AudioURLs: sess.AudioURLs(),
		Items:     items,
		Effect:    effect,
		Render:    sess.Controller().Job(),
		CreatedAt: sess.CreatedAt(),
	}
}
