package pipeline

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrIndexOutOfRange 重排序下标越界
var ErrIndexOutOfRange = errors.New("index out of range")

// Session 一次流水线运行的全部可变状态
// 单写者：列表与效果只通过会话的方法修改；时间轴构建与渲染提交
// 在每次请求时取一致快照读，不会观测到进行中的重排。
//
// 任何列表/效果变更都会使进行中的渲染任务失效（绝对时间依赖当前顺序）。
type Session struct {
	mu         sync.RWMutex
	id         string
	prompt     string
	scenes     []Scene
	images     []string
	audioURLs  []string
	items      []MediaItem
	effect     Effect
	controller *RenderController
	createdAt  time.Time
}

// NewSession 创建流水线会话
func NewSession(id, prompt string, controller *RenderController) *Session {
	return &Session{
		id:         id,
		prompt:     prompt,
		effect:     Effect{SubtitleStyle: "minimal", SubtitlePosition: "bottom"},
		controller: controller,
		createdAt:  time.Now(),
	}
}

// ID 返回会话ID
func (s *Session) ID() string {
	return s.id
}

// Prompt 返回创建会话的原始提示词
func (s *Session) Prompt() string {
	return s.prompt
}

// CreatedAt 返回会话创建时间
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Controller 返回会话的渲染控制器
func (s *Session) Controller() *RenderController {
	return s.controller
}

// SetScenes 记录上游生成的脚本场景
func (s *Session) SetScenes(scenes []Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenes = append([]Scene(nil), scenes...)
}

// Scenes 返回脚本场景快照
func (s *Session) Scenes() []Scene {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Scene(nil), s.scenes...)
}

// SetImages 记录每个场景的图片地址
func (s *Session) SetImages(images []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append([]string(nil), images...)
}

// Images 返回图片地址快照
func (s *Session) Images() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.images...)
}

// SetAudioURLs 记录每个场景的旁白音频地址
func (s *Session) SetAudioURLs(urls []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioURLs = append([]string(nil), urls...)
}

// AudioURLs 返回旁白音频地址快照
func (s *Session) AudioURLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.audioURLs...)
}

// ReplaceItems 整体替换媒体片段列表（上游素材变化时整批重建，不做补丁）
// 替换使进行中的渲染任务失效
func (s *Session) ReplaceItems(items []MediaItem) {
	s.mu.Lock()
	s.items = append([]MediaItem(nil), items...)
	s.mu.Unlock()

	s.controller.Invalidate()
}

// Items 返回媒体片段列表快照
func (s *Session) Items() []MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MediaItem(nil), s.items...)
}

// Snapshot 返回片段列表与效果的一致快照（渲染提交时使用）
func (s *Session) Snapshot() ([]MediaItem, Effect) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MediaItem(nil), s.items...), s.effect
}

// Effect 返回当前全局效果配置
func (s *Session) Effect() Effect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.effect
}

// SetEffect 更新全局效果配置，使进行中的渲染任务失效
func (s *Session) SetEffect(effect Effect) {
	s.mu.Lock()
	s.effect = effect
	s.mu.Unlock()

	s.controller.Invalidate()
}

// Reorder 将 sourceIndex 处的片段移动到 destinationIndex
// 其余片段保持相对顺序（单元素移动，不是交换）。
// 下标越界拒绝且不修改状态；成功的移动使进行中的渲染任务失效。
func (s *Session) Reorder(sourceIndex, destinationIndex int) error {
	s.mu.Lock()
	moved, err := moveItem(s.items, sourceIndex, destinationIndex)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.items = moved
	s.mu.Unlock()

	s.controller.Invalidate()
	return nil
}

// SetTransition 设置指定片段某一边的转场效果
// 未知 itemID 是 no-op（不是错误）；实际发生修改时使渲染任务失效
func (s *Session) SetTransition(itemID string, edge TransitionEdge, transition Transition) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID != itemID {
			continue
		}
		switch edge {
		case EdgeIn:
			s.items[i].TransitionIn = transition
		case EdgeOut:
			s.items[i].TransitionOut = transition
		default:
			s.mu.Unlock()
			log.Warn().Str("edge", string(edge)).Msg("unknown transition edge ignored")
			return
		}
		changed = true
		break
	}
	s.mu.Unlock()

	if !changed {
		log.Debug().Str("item_id", itemID).Msg("transition update for unknown media item ignored")
		return
	}

	s.controller.Invalidate()
}

// moveItem 纯函数的单元素列表移动：移除 from 处元素并插入到 to 处
// 与任何 UI 拖拽事件解耦，可直接测试
func moveItem(items []MediaItem, from, to int) ([]MediaItem, error) {
	if from < 0 || from >= len(items) {
		return nil, fmt.Errorf("source index %d outside [0, %d): %w", from, len(items), ErrIndexOutOfRange)
	}
	if to < 0 || to >= len(items) {
		return nil, fmt.Errorf("destination index %d outside [0, %d): %w", to, len(items), ErrIndexOutOfRange)
	}

	result := append([]MediaItem(nil), items...)
	item := result[from]
	result = append(result[:from], result[from+1:]...)

	rest := append([]MediaItem(nil), result[to:]...)
	result = append(result[:to], item)
	result = append(result, rest...)

	return result, nil
}
