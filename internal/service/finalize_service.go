package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"storyreel/internal/model/gallery"
	"storyreel/internal/pipeline"
	"storyreel/internal/pkg/id"
	"storyreel/internal/pkg/storage"
	galleryRepo "storyreel/internal/repository/gallery"
)

var (
	ErrRenderNotDone = errors.New("渲染尚未完成")
	ErrVideoNotFound = errors.New("视频不存在")
)

// FinalizeService 终片转存服务接口
// 渲染完成后将产物转存到自有存储并登记作品
type FinalizeService interface {
	// Finalize 转存渲染产物并创建作品记录
	Finalize(ctx context.Context, sessionID, title string) (*gallery.Video, error)

	// ListVideos 分页查询作品列表
	ListVideos(ctx context.Context, page, pageSize int) ([]*gallery.Video, int64, error)

	// GetVideo 获取作品详情
	GetVideo(ctx context.Context, videoID string) (*gallery.Video, error)
}

// finalizeService 终片转存服务实现
type finalizeService struct {
	pipeline   PipelineService
	storage    storage.Storage
	videoRepo  galleryRepo.VideoRepository
	httpClient *http.Client
	renderCfg  renderOutput
}

type renderOutput struct {
	Format     string
	Resolution string
}

// NewFinalizeService 创建终片转存服务
func NewFinalizeService(
	pipelineSvc PipelineService,
	store storage.Storage,
	videoRepo galleryRepo.VideoRepository,
	outputFormat, outputResolution string,
) FinalizeService {
	return &finalizeService{
		pipeline:  pipelineSvc,
		storage:   store,
		videoRepo: videoRepo,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		renderCfg: renderOutput{
			Format:     outputFormat,
			Resolution: outputResolution,
		},
	}
}

// Finalize 转存渲染产物并创建作品记录
// 要求会话当前渲染任务处于 done 状态且产物地址存在
func (s *finalizeService) Finalize(ctx context.Context, sessionID, title string) (*gallery.Video, error) {
	sess, err := s.pipeline.Session(sessionID)
	if err != nil {
		return nil, err
	}

	job := sess.Controller().Job()
	if job.State != pipeline.StateDone || job.ArtifactURL == "" {
		return nil, ErrRenderNotDone
	}

	// 下载渲染产物
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.ArtifactURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download render artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download render artifact, status: %d", resp.StatusCode)
	}

	// 转存到自有存储
	videoID := id.New()
	key := fmt.Sprintf("videos/%s.%s", videoID, s.renderCfg.Format)
	url, err := s.storage.Upload(ctx, key, resp.Body, "video/"+s.renderCfg.Format)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	items, _ := sess.Snapshot()

	video := &gallery.Video{
		ID:         videoID,
		SessionID:  sessionID,
		Prompt:     sess.Prompt(),
		Title:      title,
		URL:        url,
		Duration:   pipeline.TotalDuration(items),
		Format:     s.renderCfg.Format,
		Resolution: s.renderCfg.Resolution,
		SceneCount: len(items),
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("create video record: %w", err)
	}

	log.Info().
		Str("session_id", sessionID).
		Str("video_id", videoID).
		Str("url", url).
		Msg("Render artifact finalized")
	return video, nil
}

// ListVideos 分页查询作品列表
func (s *finalizeService) ListVideos(ctx context.Context, page, pageSize int) ([]*gallery.Video, int64, error) {
	return s.videoRepo.List(ctx, page, pageSize)
}

// GetVideo 获取作品详情
func (s *finalizeService) GetVideo(ctx context.Context, videoID string) (*gallery.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return nil, ErrVideoNotFound
	}
	return video, nil
}
