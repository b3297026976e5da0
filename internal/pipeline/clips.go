package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"storyreel/internal/pkg/captiontools"
	"storyreel/internal/pkg/id"
)

// DefaultMinClipDuration 音频时长探测失败时的保底时长（秒）
// 片段时长必须大于 0，探测失败降级而不是中断整批构建
const DefaultMinClipDuration = 2.0

// AudioProber 音频时长探测器
// 给定音频地址返回时长（秒）；失败是非致命的
type AudioProber interface {
	ProbeAudioDuration(ctx context.Context, audioURL string) (float64, error)
}

// ClipMapper 场景到片段映射器
// 将场景、图片、旁白音频按下标对齐组合为可渲染的媒体片段
type ClipMapper struct {
	prober             AudioProber
	maxWordsPerCaption int
	minClipDuration    float64
}

// NewClipMapper 创建场景到片段映射器
func NewClipMapper(prober AudioProber, maxWordsPerCaption int, minClipDuration float64) *ClipMapper {
	if maxWordsPerCaption <= 0 {
		maxWordsPerCaption = captiontools.DefaultMaxWordsPerLine
	}
	if minClipDuration <= 0 {
		minClipDuration = DefaultMinClipDuration
	}

	return &ClipMapper{
		prober:             prober,
		maxWordsPerCaption: maxWordsPerCaption,
		minClipDuration:    minClipDuration,
	}
}

// BuildMediaItems 构建媒体片段列表
// 第 i 个场景与 images[i]、audioURLs[i] 配对；以旁白音频数为准。
// 场景缺失（下标越界）降级为占位标题，不视为错误。
func (m *ClipMapper) BuildMediaItems(ctx context.Context, scenes []Scene, images []string, audioURLs []string) ([]MediaItem, error) {
	items := make([]MediaItem, 0, len(audioURLs))

	for i, audioURL := range audioURLs {
		title := fmt.Sprintf("Untitled Scene %d", i+1)
		narration := ""
		if i < len(scenes) {
			if scenes[i].Title != "" {
				title = scenes[i].Title
			}
			narration = scenes[i].Narration
		} else {
			log.Warn().Int("index", i).Msg("no scene for audio, using placeholder title")
		}

		image := ""
		if i < len(images) {
			image = images[i]
		}

		duration := m.probeDuration(ctx, audioURL)

		captions, err := captiontools.Segment(narration, duration, m.maxWordsPerCaption)
		if err != nil {
			return nil, fmt.Errorf("segment captions for item %d: %w", i, err)
		}

		items = append(items, MediaItem{
			ID:            id.New(),
			Title:         title,
			Image:         image,
			Audio:         audioURL,
			Duration:      duration,
			TransitionIn:  TransitionNone,
			TransitionOut: TransitionNone,
			Captions:      captions,
		})
	}

	return items, nil
}

// probeDuration 探测音频时长，失败时降级为保底时长
func (m *ClipMapper) probeDuration(ctx context.Context, audioURL string) float64 {
	if audioURL == "" {
		log.Warn().Msg("empty audio URL, falling back to minimum clip duration")
		return m.minClipDuration
	}

	duration, err := m.prober.ProbeAudioDuration(ctx, audioURL)
	if err != nil {
		log.Warn().
			Err(err).
			Str("audio_url", audioURL).
			Float64("fallback", m.minClipDuration).
			Msg("audio duration probe failed, falling back to minimum clip duration")
		return m.minClipDuration
	}
	if duration <= 0 {
		return m.minClipDuration
	}

	return duration
}
