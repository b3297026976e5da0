package pipeline

import (
	"fmt"

	"storyreel/internal/pkg/captiontools"
	"storyreel/internal/pkg/renderapi"
)

// BuildTimeline 将当前有序片段列表与全局效果构建为声明式时间轴
//
// 片段 k 的绝对开始时间为前 0..k-1 个片段时长的前缀和，长度为自身时长。
// 输出包含三条并行轨道（图片/音频/字幕），每轨每片段一个 clip，
// 同下标的三个 clip 占据完全相同的时间窗口；背景音乐作为一个横跨
// 整条时间轴的附加 clip，与场景边界无关。
//
// 给定相同的输入，输出逐字节可复现（无随机、无时钟依赖）。
func BuildTimeline(items []MediaItem, effect Effect, output renderapi.Output) (*renderapi.RenderRequest, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot build timeline from empty media item list")
	}

	imageClips := make([]renderapi.Clip, 0, len(items))
	audioClips := make([]renderapi.Clip, 0, len(items))
	captionClips := make([]renderapi.Clip, 0, len(items))

	start := 0.0
	for _, item := range items {
		// 转场只作用于图片 clip，不影响时间计算
		var transition *renderapi.Transition
		if hasTransition(item.TransitionIn) || hasTransition(item.TransitionOut) {
			transition = &renderapi.Transition{}
			if hasTransition(item.TransitionIn) {
				transition.In = item.TransitionIn.String()
			}
			if hasTransition(item.TransitionOut) {
				transition.Out = item.TransitionOut.String()
			}
		}

		imageClips = append(imageClips, renderapi.Clip{
			Asset: renderapi.Asset{
				Type: renderapi.AssetTypeImage,
				Src:  item.Image,
			},
			Start:      start,
			Length:     item.Duration,
			Transition: transition,
		})

		audioClips = append(audioClips, renderapi.Clip{
			Asset: renderapi.Asset{
				Type: renderapi.AssetTypeAudio,
				Src:  item.Audio,
			},
			Start:  start,
			Length: item.Duration,
		})

		captionClips = append(captionClips, renderapi.Clip{
			Asset: renderapi.Asset{
				Type:     renderapi.AssetTypeCaption,
				Style:    effect.SubtitleStyle,
				Position: effect.SubtitlePosition,
				Segments: toCaptionSegments(item.Captions),
			},
			Start:  start,
			Length: item.Duration,
		})

		start += item.Duration
	}

	tracks := []renderapi.Track{
		{Clips: imageClips},
		{Clips: audioClips},
		{Clips: captionClips},
	}

	// 背景音乐：单个 clip 覆盖全部时长
	if effect.Music.MP3URL != "" {
		tracks = append(tracks, renderapi.Track{
			Clips: []renderapi.Clip{{
				Asset: renderapi.Asset{
					Type:   renderapi.AssetTypeAudio,
					Src:    effect.Music.MP3URL,
					Volume: effect.Music.Volume,
				},
				Start:  0,
				Length: start,
			}},
		})
	}

	return &renderapi.RenderRequest{
		Timeline: renderapi.TimelineSpec{
			Background: "#000000",
			Tracks:     tracks,
		},
		Output: output,
	}, nil
}

// TotalDuration 计算片段列表的总时长（秒）
func TotalDuration(items []MediaItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Duration
	}
	return total
}

func hasTransition(t Transition) bool {
	return t != "" && t != TransitionNone
}

func toCaptionSegments(captions []captiontools.Caption) []renderapi.CaptionSegment {
	segments := make([]renderapi.CaptionSegment, len(captions))
	for i, c := range captions {
		segments[i] = renderapi.CaptionSegment{
			Text:   c.Text,
			Start:  c.Start,
			Length: c.Length,
		}
	}
	return segments
}
