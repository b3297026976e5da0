package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"storyreel/internal/pkg/renderapi"
)

// instantClock 立即触发的时钟，测试无需真实等待
type instantClock struct{}

func (instantClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

// scriptedAPI 按脚本返回状态序列的渲染服务桩
// 状态序列耗尽后重复最后一个
type scriptedAPI struct {
	mu        sync.Mutex
	jobID     string
	submitErr error
	statusErr error
	statuses  []renderapi.RenderStatus
	idx       int
	submitted int
}

func (a *scriptedAPI) Submit(ctx context.Context, req *renderapi.RenderRequest) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.submitted++
	if a.submitErr != nil {
		return "", a.submitErr
	}
	if a.jobID == "" {
		a.jobID = "job-1"
	}
	return a.jobID, nil
}

func (a *scriptedAPI) Status(ctx context.Context, jobID string) (*renderapi.RenderStatus, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.statusErr != nil {
		return nil, a.statusErr
	}
	if len(a.statuses) == 0 {
		return &renderapi.RenderStatus{ID: jobID, Status: renderapi.StatusQueued}, nil
	}
	status := a.statuses[a.idx]
	if a.idx < len(a.statuses)-1 {
		a.idx++
	}
	status.ID = jobID
	return &status, nil
}

func validRenderRequest() *renderapi.RenderRequest {
	return &renderapi.RenderRequest{
		Timeline: renderapi.TimelineSpec{
			Background: "#000000",
			Tracks: []renderapi.Track{
				{Clips: []renderapi.Clip{{Asset: renderapi.Asset{Type: renderapi.AssetTypeImage, Src: "1.png"}, Length: 3}}},
			},
		},
		Output: renderapi.Output{Format: "mp4", Resolution: "hd", AspectRatio: "9:16"},
	}
}

// waitForTerminal 等待任务进入终态
func waitForTerminal(c *RenderController) RenderJob {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job := c.Job()
		if job.State.Terminal() {
			return job
		}
		time.Sleep(time.Millisecond)
	}
	return c.Job()
}

func TestRenderControllerSubmit(t *testing.T) {
	Convey("RenderController.Submit 提交渲染任务", t, func() {
		Convey("成功提交后任务进入 queued，进度 10", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{{Status: renderapi.StatusQueued}}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(3))

			jobID, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)
			So(jobID, ShouldEqual, "job-1")

			job := c.Job()
			So(job.ID, ShouldEqual, "job-1")
			So(job.Progress, ShouldBeGreaterThanOrEqualTo, 10)
		})

		Convey("空时间轴立即转为 failed", func() {
			api := &scriptedAPI{}
			c := NewRenderController(api, WithClock(instantClock{}))

			_, err := c.Submit(context.Background(), &renderapi.RenderRequest{})
			So(err, ShouldNotBeNil)
			So(c.Job().State, ShouldEqual, StateFailed)
			So(api.submitted, ShouldEqual, 0)
		})

		Convey("提交调用失败转为 failed 并返回错误", func() {
			api := &scriptedAPI{submitErr: errors.New("connection refused")}
			c := NewRenderController(api, WithClock(instantClock{}))

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldNotBeNil)

			job := c.Job()
			So(job.State, ShouldEqual, StateFailed)
			So(job.Error, ShouldContainSubstring, "connection refused")
		})

		Convey("任务进行中重复提交返回 ErrRenderInFlight", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{{Status: renderapi.StatusRendering}}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(100000))

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)

			_, err = c.Submit(context.Background(), validRenderRequest())
			So(errors.Is(err, ErrRenderInFlight), ShouldBeTrue)

			c.Invalidate()
		})

		Convey("终态后允许再次提交", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{
				{Status: renderapi.StatusDone, URL: "https://render.example.com/out.mp4"},
			}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(5))

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)
			So(waitForTerminal(c).State, ShouldEqual, StateDone)

			_, err = c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)
			c.Invalidate()
		})
	})
}

func TestRenderControllerPolling(t *testing.T) {
	Convey("轮询循环推进任务状态", t, func() {
		Convey("完整状态推进后 done，进度 100，产物地址就位", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{
				{Status: renderapi.StatusQueued},
				{Status: renderapi.StatusFetching},
				{Status: renderapi.StatusRendering},
				{Status: renderapi.StatusSaving},
				{Status: renderapi.StatusDone, URL: "https://render.example.com/out.mp4"},
			}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(10))

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)

			job := waitForTerminal(c)
			So(job.State, ShouldEqual, StateDone)
			So(job.Progress, ShouldEqual, 100)
			So(job.ArtifactURL, ShouldEqual, "https://render.example.com/out.mp4")
			So(job.Error, ShouldBeEmpty)
		})

		Convey("done 但无产物地址转为 failed", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{
				{Status: renderapi.StatusDone},
			}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(5))

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)

			job := waitForTerminal(c)
			So(job.State, ShouldEqual, StateFailed)
			So(job.Error, ShouldContainSubstring, "artifact URL")
		})

		Convey("服务报告失败转为 failed 并携带原因", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{
				{Status: renderapi.StatusRendering},
				{Status: renderapi.StatusFailed, Error: "out of render credits"},
			}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(5))

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)

			job := waitForTerminal(c)
			So(job.State, ShouldEqual, StateFailed)
			So(job.Error, ShouldEqual, "out of render credits")
		})

		Convey("未知状态视为协议错误转为 failed", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{
				{Status: "exploded"},
			}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(5))

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)

			job := waitForTerminal(c)
			So(job.State, ShouldEqual, StateFailed)
			So(job.Error, ShouldContainSubstring, "exploded")
		})

		Convey("状态查询失败转为 failed", func() {
			api := &scriptedAPI{statusErr: errors.New("gateway timeout")}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(5))

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)

			job := waitForTerminal(c)
			So(job.State, ShouldEqual, StateFailed)
			So(job.Error, ShouldContainSubstring, "gateway timeout")
		})

		Convey("超出轮询次数上限转为 failed（超时）", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{
				{Status: renderapi.StatusRendering},
			}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(3))

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)

			job := waitForTerminal(c)
			So(job.State, ShouldEqual, StateFailed)
			So(job.Error, ShouldContainSubstring, fmt.Sprintf("%d poll attempts", 3))
		})
	})
}

func TestRenderControllerInvalidate(t *testing.T) {
	Convey("Invalidate 使进行中的任务失效", t, func() {
		Convey("失效后状态回到 idle", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{
				{Status: renderapi.StatusRendering},
			}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(100000))

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)

			c.Invalidate()
			So(c.Job().State, ShouldEqual, StateIdle)

			// 旧轮询循环的遗留更新被丢弃
			time.Sleep(20 * time.Millisecond)
			So(c.Job().State, ShouldEqual, StateIdle)
		})

		Convey("空闲时失效是无害的", func() {
			c := NewRenderController(&scriptedAPI{}, WithClock(instantClock{}))
			c.Invalidate()
			So(c.Job().State, ShouldEqual, StateIdle)
		})

		Convey("会话修改片段列表使渲染任务失效", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{
				{Status: renderapi.StatusRendering},
			}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(100000))
			sess := NewSession("sess-1", "prompt", c)
			sess.ReplaceItems([]MediaItem{
				{ID: "a", Duration: 2},
				{ID: "b", Duration: 3},
			})

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)

			err = sess.Reorder(0, 1)
			So(err, ShouldBeNil)
			So(c.Job().State, ShouldEqual, StateIdle)
		})

		Convey("设置效果使渲染任务失效", func() {
			api := &scriptedAPI{statuses: []renderapi.RenderStatus{
				{Status: renderapi.StatusRendering},
			}}
			c := NewRenderController(api, WithClock(instantClock{}), WithMaxPollAttempts(100000))
			sess := NewSession("sess-1", "prompt", c)
			sess.ReplaceItems([]MediaItem{{ID: "a", Duration: 2}})

			_, err := c.Submit(context.Background(), validRenderRequest())
			So(err, ShouldBeNil)

			sess.SetEffect(Effect{SubtitleStyle: "bold"})
			So(c.Job().State, ShouldEqual, StateIdle)
		})
	})
}
