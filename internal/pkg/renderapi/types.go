package renderapi

// 渲染服务的任务状态词汇表（固定小集合）
const (
	StatusQueued    = "queued"    // 已排队
	StatusFetching  = "fetching"  // 拉取素材中
	StatusRendering = "rendering" // 渲染中
	StatusSaving    = "saving"    // 保存产物中
	StatusDone      = "done"      // 完成
	StatusFailed    = "failed"    // 失败
)

// 资源类型
const (
	AssetTypeImage   = "image"   // 图片轨
	AssetTypeAudio   = "audio"   // 音频轨
	AssetTypeCaption = "caption" // 字幕轨
)

// CaptionSegment 字幕分段（时间相对于所属 clip，clip 起点为 0）
type CaptionSegment struct {
	Text   string  `json:"text"`   // 字幕文本
	Start  float64 `json:"start"`  // 相对开始时间（秒）
	Length float64 `json:"length"` // 持续时长（秒）
}

// Transition clip 的入场/出场转场效果
type Transition struct {
	In  string `json:"in,omitempty"`  // 入场效果
	Out string `json:"out,omitempty"` // 出场效果
}

// Asset clip 引用的素材描述
type Asset struct {
	Type     string           `json:"type"`               // image / audio / caption
	Src      string           `json:"src,omitempty"`      // 素材地址
	Volume   float64          `json:"volume,omitempty"`   // 音量（0.0-1.0，音频素材）
	Style    string           `json:"style,omitempty"`    // 字幕样式（字幕素材）
	Position string           `json:"position,omitempty"` // 字幕位置（字幕素材）
	Segments []CaptionSegment `json:"segments,omitempty"` // 字幕分段（字幕素材）
}

// Clip 时间轴上的一个片段
// Start 为时间轴绝对时间（秒），Length 为片段时长（秒）
type Clip struct {
	Asset      Asset       `json:"asset"`
	Start      float64     `json:"start"`
	Length     float64     `json:"length"`
	Transition *Transition `json:"transition,omitempty"`
}

// Track 一条轨道，包含按时间排列的 clip
type Track struct {
	Clips []Clip `json:"clips"`
}

// TimelineSpec 声明式时间轴
type TimelineSpec struct {
	Background string  `json:"background,omitempty"` // 背景色
	Tracks     []Track `json:"tracks"`               // 并行轨道
}

// Output 输出格式描述
type Output struct {
	Format      string `json:"format"`       // mp4 等
	Resolution  string `json:"resolution"`   // sd / hd / 1080
	AspectRatio string `json:"aspect_ratio"` // 9:16 等
}

// RenderRequest 渲染任务提交文档
type RenderRequest struct {
	Timeline TimelineSpec `json:"timeline"`
	Output   Output       `json:"output"`
}

// RenderStatus 渲染任务状态查询结果
type RenderStatus struct {
	ID     string `json:"id"`              // 任务ID
	Status string `json:"status"`          // 当前状态
	URL    string `json:"url,omitempty"`   // 产物地址（done 时返回）
	Error  string `json:"error,omitempty"` // 错误信息（failed 时返回）
}
