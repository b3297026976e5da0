package captiontools

import (
	"fmt"
	"strings"
)

// DefaultMaxWordsPerLine 每条字幕默认最大词数
const DefaultMaxWordsPerLine = 9

// Caption 字幕块
// start/length 为相对于所属媒体项自身时长的偏移（秒），媒体项起点为 0
type Caption struct {
	Text   string  `json:"text"`   // 字幕文本
	Start  float64 `json:"start"`  // 相对开始时间（秒）
	Length float64 `json:"length"` // 持续时长（秒）
}

// Segment 将旁白文本切分为带时间的字幕块
// 按空白切词，每块最多 maxWordsPerLine 个词，保持词序且不拆词。
// 时长在各块间均分（不按每块词数加权），保证各块时长之和等于 totalDuration。
//
// 边界：text 为空返回 nil；totalDuration <= 0 且文本非空视为调用方契约违反。
func Segment(text string, totalDuration float64, maxWordsPerLine int) ([]Caption, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	if totalDuration <= 0 {
		return nil, fmt.Errorf("total duration must be positive, got %v", totalDuration)
	}

	if maxWordsPerLine <= 0 {
		maxWordsPerLine = DefaultMaxWordsPerLine
	}

	// 按最大词数分块
	var chunks []string
	for start := 0; start < len(words); start += maxWordsPerLine {
		end := start + maxWordsPerLine
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}

	// 均分时长，第 i 块从 i*length 开始
	length := totalDuration / float64(len(chunks))
	captions := make([]Caption, len(chunks))
	for i, chunk := range chunks {
		captions[i] = Caption{
			Text:   chunk,
			Start:  float64(i) * length,
			Length: length,
		}
	}

	return captions, nil
}
