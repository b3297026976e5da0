package pipeline

import (
	"storyreel/internal/pkg/captiontools"
)

// Scene 脚本中的一个叙事单元（上游脚本生成的产物，生成后不可变）
type Scene struct {
	ID          string `json:"id"`          // 场景ID
	Title       string `json:"title"`       // 场景标题
	Narration   string `json:"narration"`   // 旁白文本
	Description string `json:"description"` // 画面描述（用作图片生成提示词）
}

// Transition 转场效果标签
type Transition string

const (
	TransitionNone      Transition = "none"      // 无转场
	TransitionFade      Transition = "fade"      // 淡入淡出
	TransitionWipeLeft  Transition = "wipeLeft"  // 左划
	TransitionWipeRight Transition = "wipeRight" // 右划
	TransitionZoom      Transition = "zoom"      // 缩放
)

// String 返回标签的字符串表示
func (t Transition) String() string {
	return string(t)
}

// ParseTransition 解析转场标签，未知标签返回 false
func ParseTransition(s string) (Transition, bool) {
	switch Transition(s) {
	case TransitionNone, TransitionFade, TransitionWipeLeft, TransitionWipeRight, TransitionZoom:
		return Transition(s), true
	default:
		return "", false
	}
}

// TransitionEdge 转场作用的边（入场/出场）
type TransitionEdge string

const (
	EdgeIn  TransitionEdge = "in"  // 入场
	EdgeOut TransitionEdge = "out" // 出场
)

// ParseTransitionEdge 解析转场边，未知值返回 false
func ParseTransitionEdge(s string) (TransitionEdge, bool) {
	switch TransitionEdge(s) {
	case EdgeIn, EdgeOut:
		return TransitionEdge(s), true
	default:
		return "", false
	}
}

// MediaItem 流水线内部的片段描述
// 组合一个场景的图片、旁白音频、实测时长、字幕与转场标签
type MediaItem struct {
	ID            string                 `json:"id"`             // 片段ID（重排序的稳定键）
	Title         string                 `json:"title"`          // 展示标题（来自场景）
	Image         string                 `json:"image"`          // 场景图片地址
	Audio         string                 `json:"audio"`          // 旁白音频地址
	Duration      float64                `json:"duration"`       // 时长（秒，以音频实测为准）
	TransitionIn  Transition             `json:"transition_in"`  // 入场转场
	TransitionOut Transition             `json:"transition_out"` // 出场转场
	Captions      []captiontools.Caption `json:"captions"`       // 字幕分段（相对片段自身时间）
}

// MusicStyle 背景音乐配置
type MusicStyle struct {
	Style  string  `json:"music_style"` // 音乐风格标签
	MP3URL string  `json:"mp3_url"`     // 音乐文件地址
	Volume float64 `json:"volume"`      // 音量（0.0-1.0）
}

// Effect 全局效果配置（整条流水线一份，非逐片段）
// 由编辑操作修改，时间轴构建时读取
type Effect struct {
	SubtitleStyle    string     `json:"subtitle_style"`    // 字幕样式
	SubtitlePosition string     `json:"subtitle_position"` // 字幕位置
	Music            MusicStyle `json:"music_style"`       // 背景音乐
}

// JobState 渲染任务状态
type JobState string

const (
	StateIdle       JobState = "idle"       // 空闲（无任务）
	StateSubmitting JobState = "submitting" // 提交中
	StateQueued     JobState = "queued"     // 已排队
	StateFetching   JobState = "fetching"   // 拉取素材中
	StateRendering  JobState = "rendering"  // 渲染中
	StateSaving     JobState = "saving"     // 保存产物中
	StateDone       JobState = "done"       // 完成（终态）
	StateFailed     JobState = "failed"     // 失败（终态）
)

// String 返回状态的字符串表示
func (s JobState) String() string {
	return string(s)
}

// Terminal 是否为终态（done/failed 不再迁移）
func (s JobState) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// RenderJob 渲染任务观测状态
// 由提交创建，仅由轮询循环推进，done 时产物地址必须存在
type RenderJob struct {
	ID          string   `json:"id"`                     // 外部任务ID
	State       JobState `json:"state"`                  // 当前状态
	Progress    int      `json:"progress"`               // 进度百分比
	ArtifactURL string   `json:"artifact_url,omitempty"` // 产物地址（done 时有值）
	Error       string   `json:"error,omitempty"`        // 错误信息（failed 时有值）
}
