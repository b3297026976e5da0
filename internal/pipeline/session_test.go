package pipeline

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"storyreel/internal/pkg/renderapi"
)

// nopRenderAPI 永不完成的渲染服务桩
type nopRenderAPI struct{}

func (nopRenderAPI) Submit(ctx context.Context, req *renderapi.RenderRequest) (string, error) {
	return "job-1", nil
}

func (nopRenderAPI) Status(ctx context.Context, jobID string) (*renderapi.RenderStatus, error) {
	return &renderapi.RenderStatus{ID: jobID, Status: renderapi.StatusRendering}, nil
}

func newTestSession() *Session {
	controller := NewRenderController(nopRenderAPI{})
	sess := NewSession("sess-1", "a video about cats", controller)
	sess.ReplaceItems([]MediaItem{
		{ID: "a", Title: "A", Duration: 2},
		{ID: "b", Title: "B", Duration: 3},
		{ID: "c", Title: "C", Duration: 4},
	})
	return sess
}

func itemIDs(items []MediaItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func TestMoveItem(t *testing.T) {
	Convey("moveItem 是移除后插入语义的纯函数", t, func() {
		items := []MediaItem{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

		Convey("向前移动", func() {
			moved, err := moveItem(items, 2, 0)
			So(err, ShouldBeNil)
			So(itemIDs(moved), ShouldResemble, []string{"c", "a", "b", "d"})
		})

		Convey("向后移动", func() {
			moved, err := moveItem(items, 0, 2)
			So(err, ShouldBeNil)
			So(itemIDs(moved), ShouldResemble, []string{"b", "c", "a", "d"})
		})

		Convey("原地移动是恒等操作", func() {
			moved, err := moveItem(items, 1, 1)
			So(err, ShouldBeNil)
			So(itemIDs(moved), ShouldResemble, []string{"a", "b", "c", "d"})
		})

		Convey("不修改输入切片", func() {
			_, err := moveItem(items, 0, 3)
			So(err, ShouldBeNil)
			So(itemIDs(items), ShouldResemble, []string{"a", "b", "c", "d"})
		})

		Convey("源下标越界返回 ErrIndexOutOfRange", func() {
			_, err := moveItem(items, 4, 0)
			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)

			_, err = moveItem(items, -1, 0)
			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
		})

		Convey("目标下标越界返回 ErrIndexOutOfRange", func() {
			_, err := moveItem(items, 0, 4)
			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
		})

		Convey("空列表上任何移动都越界", func() {
			_, err := moveItem(nil, 0, 0)
			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
		})
	})
}

func TestSessionReorder(t *testing.T) {
	Convey("Session.Reorder 移动片段", t, func() {
		Convey("成功的移动改变顺序", func() {
			sess := newTestSession()
			err := sess.Reorder(2, 0)
			So(err, ShouldBeNil)
			So(itemIDs(sess.Items()), ShouldResemble, []string{"c", "a", "b"})
		})

		Convey("越界拒绝且状态不变", func() {
			sess := newTestSession()
			err := sess.Reorder(0, 5)
			So(err, ShouldNotBeNil)
			So(itemIDs(sess.Items()), ShouldResemble, []string{"a", "b", "c"})
		})
	})
}

func TestSessionSetTransition(t *testing.T) {
	Convey("Session.SetTransition 设置片段转场", t, func() {
		Convey("按 ID 设置入场转场", func() {
			sess := newTestSession()
			sess.SetTransition("b", EdgeIn, TransitionFade)

			items := sess.Items()
			So(items[1].TransitionIn, ShouldEqual, TransitionFade)
			So(items[1].TransitionOut, ShouldEqual, Transition(""))
		})

		Convey("按 ID 设置出场转场", func() {
			sess := newTestSession()
			sess.SetTransition("c", EdgeOut, TransitionWipeLeft)
			So(sess.Items()[2].TransitionOut, ShouldEqual, TransitionWipeLeft)
		})

		Convey("未知片段ID是空操作", func() {
			sess := newTestSession()
			before := sess.Items()
			sess.SetTransition("missing", EdgeIn, TransitionZoom)
			So(sess.Items(), ShouldResemble, before)
		})
	})
}

func TestSessionSnapshot(t *testing.T) {
	Convey("Session 快照读与防御性拷贝", t, func() {
		sess := newTestSession()

		Convey("Items 返回的切片与内部状态隔离", func() {
			items := sess.Items()
			items[0].Title = "mutated"
			So(sess.Items()[0].Title, ShouldEqual, "A")
		})

		Convey("Snapshot 同时返回片段与效果", func() {
			sess.SetEffect(Effect{SubtitleStyle: "bold", SubtitlePosition: "top"})
			items, effect := sess.Snapshot()
			So(len(items), ShouldEqual, 3)
			So(effect.SubtitleStyle, ShouldEqual, "bold")
			So(effect.SubtitlePosition, ShouldEqual, "top")
		})
	})
}

func TestParseTransition(t *testing.T) {
	Convey("转场标签与转场边解析", t, func() {
		Convey("合法标签", func() {
			for _, tag := range []string{"none", "fade", "wipeLeft", "wipeRight", "zoom"} {
				parsed, ok := ParseTransition(tag)
				So(ok, ShouldBeTrue)
				So(parsed.String(), ShouldEqual, tag)
			}
		})

		Convey("未知标签被拒绝", func() {
			_, ok := ParseTransition("dissolve")
			So(ok, ShouldBeFalse)
		})

		Convey("合法转场边", func() {
			for _, edge := range []string{"in", "out"} {
				_, ok := ParseTransitionEdge(edge)
				So(ok, ShouldBeTrue)
			}
		})

		Convey("未知转场边被拒绝", func() {
			_, ok := ParseTransitionEdge("both")
			So(ok, ShouldBeFalse)
		})
	})
}
