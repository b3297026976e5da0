package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"storyreel/internal/pkg/renderapi"
)

// 默认轮询参数
const (
	DefaultPollInterval    = 5 * time.Second
	DefaultMaxPollAttempts = 120 // 轮询上限，超出强制转为失败（超时）
)

// 状态到进度百分比的固定映射
var stateProgress = map[JobState]int{
	StateQueued:    10,
	StateFetching:  20,
	StateRendering: 40,
	StateSaving:    80,
	StateDone:      100,
}

// ErrRenderInFlight 已有渲染任务在进行中，禁止重复提交
var ErrRenderInFlight = errors.New("render job already in flight")

// Clock 可注入时钟，测试时无需真实等待
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// RenderAPI 渲染服务接口（由 renderapi.Client 实现）
type RenderAPI interface {
	Submit(ctx context.Context, req *renderapi.RenderRequest) (string, error)
	Status(ctx context.Context, jobID string) (*renderapi.RenderStatus, error)
}

// RenderController 渲染任务控制器
// 提交时间轴到外部渲染服务，以固定间隔轮询任务状态直到终态。
// 状态机：idle -> submitting -> queued -> fetching -> rendering -> saving -> done，
// 任一非 idle、非 done 状态均可进入 failed；done/failed 为吸收态。
//
// 同一时刻最多一个轮询循环；轮询之间不重叠（上一次响应未返回前不发起下一次）。
// 列表或效果变更使进行中的任务失效（停止轮询、丢弃状态），需要重新提交。
type RenderController struct {
	api          RenderAPI
	clock        Clock
	pollInterval time.Duration
	maxAttempts  int

	mu     sync.Mutex
	job    RenderJob
	gen    uint64             // 提交代数，失效后旧轮询循环的更新被丢弃
	cancel context.CancelFunc // 当前轮询循环的取消函数
}

// RenderControllerOption 控制器可选参数
type RenderControllerOption func(*RenderController)

// WithPollInterval 设置轮询间隔
func WithPollInterval(d time.Duration) RenderControllerOption {
	return func(c *RenderController) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithMaxPollAttempts 设置最大轮询次数
func WithMaxPollAttempts(n int) RenderControllerOption {
	return func(c *RenderController) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithClock 注入时钟（测试用）
func WithClock(clock Clock) RenderControllerOption {
	return func(c *RenderController) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewRenderController 创建渲染任务控制器
func NewRenderController(api RenderAPI, opts ...RenderControllerOption) *RenderController {
	c := &RenderController{
		api:          api,
		clock:        realClock{},
		pollInterval: DefaultPollInterval,
		maxAttempts:  DefaultMaxPollAttempts,
		job:          RenderJob{State: StateIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Job 返回当前任务状态快照
func (c *RenderController) Job() RenderJob {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.job
}

// Submit 提交渲染任务并启动轮询
// 空时间轴或提交调用失败立即转为 failed；任务进行中重复提交是调用方错误。
func (c *RenderController) Submit(ctx context.Context, req *renderapi.RenderRequest) (string, error) {
	c.mu.Lock()
	if !c.job.State.Terminal() && c.job.State != StateIdle {
		c.mu.Unlock()
		return "", ErrRenderInFlight
	}

	// 新一次提交，旧任务的任何遗留更新作废
	c.gen++
	gen := c.gen
	c.job = RenderJob{State: StateSubmitting}
	c.mu.Unlock()

	if req == nil || len(req.Timeline.Tracks) == 0 || len(req.Timeline.Tracks[0].Clips) == 0 {
		err := fmt.Errorf("timeline has no media items")
		c.fail(gen, err.Error())
		return "", err
	}

	jobID, err := c.api.Submit(ctx, req)
	if err != nil {
		c.fail(gen, fmt.Sprintf("render submission failed: %v", err))
		return "", fmt.Errorf("submit render job: %w", err)
	}

	c.mu.Lock()
	if c.gen != gen {
		// 提交期间被失效，任务不再被观测
		c.mu.Unlock()
		return jobID, nil
	}
	c.job.ID = jobID
	c.job.State = StateQueued
	c.job.Progress = stateProgress[StateQueued]

	pollCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	log.Info().Str("job_id", jobID).Msg("render job submitted, polling started")
	go c.pollLoop(pollCtx, gen, jobID)

	return jobID, nil
}

// Invalidate 使当前任务失效：停止轮询，状态回到 idle
// 输入（片段列表/效果）变更时由会话调用；不是错误路径
func (c *RenderController) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.job.State != StateIdle {
		log.Debug().Str("job_id", c.job.ID).Str("state", c.job.State.String()).Msg("render job invalidated")
	}
	c.gen++
	c.job = RenderJob{State: StateIdle}
}

// pollLoop 轮询任务状态直到终态或超出次数上限
// 循环内串行等待每次响应，保证轮询不重叠；所有失败都落入终态，不向外抛出
func (c *RenderController) pollLoop(ctx context.Context, gen uint64, jobID string) {
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return
		case <-c.clock.After(c.pollInterval):
		}

		status, err := c.api.Status(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.fail(gen, fmt.Sprintf("render status query failed: %v", err))
			return
		}

		if terminal := c.apply(gen, status); terminal {
			return
		}
	}

	c.fail(gen, fmt.Sprintf("render job timed out after %d poll attempts", c.maxAttempts))
}

// apply 应用一次状态查询结果，返回是否已达终态
func (c *RenderController) apply(gen uint64, status *renderapi.RenderStatus) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen || c.job.State.Terminal() {
		return true
	}

	switch status.Status {
	case renderapi.StatusQueued:
		c.setStateLocked(StateQueued)
	case renderapi.StatusFetching:
		c.setStateLocked(StateFetching)
	case renderapi.StatusRendering:
		c.setStateLocked(StateRendering)
	case renderapi.StatusSaving:
		c.setStateLocked(StateSaving)
	case renderapi.StatusDone:
		// 防御性契约：done 但没有产物地址不能被当作成功
		if status.URL == "" {
			c.failLocked("render service reported done without an artifact URL")
			return true
		}
		c.job.State = StateDone
		c.job.Progress = stateProgress[StateDone]
		c.job.ArtifactURL = status.URL
		log.Info().Str("job_id", c.job.ID).Str("artifact_url", status.URL).Msg("render job done")
		return true
	case renderapi.StatusFailed:
		msg := status.Error
		if msg == "" {
			msg = "render service reported failure"
		}
		c.failLocked(msg)
		return true
	default:
		// 未知状态视为协议错误
		c.failLocked(fmt.Sprintf("unrecognized render status %q", status.Status))
		return true
	}

	return false
}

func (c *RenderController) setStateLocked(state JobState) {
	if c.job.State != state {
		log.Debug().Str("job_id", c.job.ID).Str("state", state.String()).Msg("render job state changed")
	}
	c.job.State = state
	c.job.Progress = stateProgress[state]
}

// fail 将任务转入 failed 终态（代数不匹配时丢弃）
func (c *RenderController) fail(gen uint64, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen || c.job.State.Terminal() {
		return
	}
	c.failLocked(msg)
}

func (c *RenderController) failLocked(msg string) {
	c.job.State = StateFailed
	c.job.Error = msg
	log.Warn().Str("job_id", c.job.ID).Str("error", msg).Msg("render job failed")
}
