package pipeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"storyreel/internal/pkg/captiontools"
	"storyreel/internal/pkg/renderapi"
)

func testItems() []MediaItem {
	return []MediaItem{
		{
			ID:       "item-1",
			Title:    "Opening",
			Image:    "https://cdn.example.com/1.png",
			Audio:    "https://cdn.example.com/1.mp3",
			Duration: 4.0,
			Captions: []captiontools.Caption{
				{Text: "hello world", Start: 0, Length: 4.0},
			},
		},
		{
			ID:       "item-2",
			Title:    "Middle",
			Image:    "https://cdn.example.com/2.png",
			Audio:    "https://cdn.example.com/2.mp3",
			Duration: 3.5,
		},
		{
			ID:       "item-3",
			Title:    "Ending",
			Image:    "https://cdn.example.com/3.png",
			Audio:    "https://cdn.example.com/3.mp3",
			Duration: 2.5,
		},
	}
}

func TestBuildTimeline(t *testing.T) {
	Convey("BuildTimeline 将片段列表构建为声明式时间轴", t, func() {
		output := renderapi.Output{Format: "mp4", Resolution: "hd", AspectRatio: "9:16"}

		Convey("空片段列表返回错误", func() {
			_, err := BuildTimeline(nil, Effect{}, output)
			So(err, ShouldNotBeNil)
		})

		Convey("片段开始时间是前缀和", func() {
			req, err := BuildTimeline(testItems(), Effect{}, output)
			So(err, ShouldBeNil)
			So(len(req.Timeline.Tracks), ShouldEqual, 3)

			imageClips := req.Timeline.Tracks[0].Clips
			So(len(imageClips), ShouldEqual, 3)
			So(imageClips[0].Start, ShouldAlmostEqual, 0.0, 1e-9)
			So(imageClips[1].Start, ShouldAlmostEqual, 4.0, 1e-9)
			So(imageClips[2].Start, ShouldAlmostEqual, 7.5, 1e-9)
			So(imageClips[2].Length, ShouldAlmostEqual, 2.5, 1e-9)
		})

		Convey("三条轨道同下标的 clip 占据相同时间窗口", func() {
			req, err := BuildTimeline(testItems(), Effect{}, output)
			So(err, ShouldBeNil)

			for i := 0; i < 3; i++ {
				img := req.Timeline.Tracks[0].Clips[i]
				aud := req.Timeline.Tracks[1].Clips[i]
				cap := req.Timeline.Tracks[2].Clips[i]
				So(aud.Start, ShouldAlmostEqual, img.Start, 1e-9)
				So(aud.Length, ShouldAlmostEqual, img.Length, 1e-9)
				So(cap.Start, ShouldAlmostEqual, img.Start, 1e-9)
				So(cap.Length, ShouldAlmostEqual, img.Length, 1e-9)
			}
		})

		Convey("轨道资产类型正确", func() {
			req, err := BuildTimeline(testItems(), Effect{}, output)
			So(err, ShouldBeNil)
			So(req.Timeline.Tracks[0].Clips[0].Asset.Type, ShouldEqual, renderapi.AssetTypeImage)
			So(req.Timeline.Tracks[1].Clips[0].Asset.Type, ShouldEqual, renderapi.AssetTypeAudio)
			So(req.Timeline.Tracks[2].Clips[0].Asset.Type, ShouldEqual, renderapi.AssetTypeCaption)
		})

		Convey("字幕 clip 携带效果配置与字幕分段", func() {
			effect := Effect{SubtitleStyle: "bold", SubtitlePosition: "bottom"}
			req, err := BuildTimeline(testItems(), effect, output)
			So(err, ShouldBeNil)

			cap := req.Timeline.Tracks[2].Clips[0]
			So(cap.Asset.Style, ShouldEqual, "bold")
			So(cap.Asset.Position, ShouldEqual, "bottom")
			So(len(cap.Asset.Segments), ShouldEqual, 1)
			So(cap.Asset.Segments[0].Text, ShouldEqual, "hello world")
		})

		Convey("未配置背景音乐时只有三条轨道", func() {
			req, err := BuildTimeline(testItems(), Effect{}, output)
			So(err, ShouldBeNil)
			So(len(req.Timeline.Tracks), ShouldEqual, 3)
		})

		Convey("配置背景音乐时追加单 clip 音乐轨横跨全长", func() {
			effect := Effect{
				Music: MusicStyle{Style: "cinematic", MP3URL: "https://cdn.example.com/bgm.mp3", Volume: 0.2},
			}
			req, err := BuildTimeline(testItems(), effect, output)
			So(err, ShouldBeNil)
			So(len(req.Timeline.Tracks), ShouldEqual, 4)

			music := req.Timeline.Tracks[3].Clips
			So(len(music), ShouldEqual, 1)
			So(music[0].Start, ShouldAlmostEqual, 0.0, 1e-9)
			So(music[0].Length, ShouldAlmostEqual, 10.0, 1e-9)
			So(music[0].Asset.Src, ShouldEqual, "https://cdn.example.com/bgm.mp3")
			So(music[0].Asset.Volume, ShouldAlmostEqual, 0.2, 1e-9)
		})

		Convey("无转场的片段不携带转场对象", func() {
			req, err := BuildTimeline(testItems(), Effect{}, output)
			So(err, ShouldBeNil)
			So(req.Timeline.Tracks[0].Clips[0].Transition, ShouldBeNil)
		})

		Convey("转场只出现在图片 clip 上", func() {
			items := testItems()
			items[1].TransitionIn = TransitionFade
			items[1].TransitionOut = TransitionZoom

			req, err := BuildTimeline(items, Effect{}, output)
			So(err, ShouldBeNil)

			img := req.Timeline.Tracks[0].Clips[1]
			So(img.Transition, ShouldNotBeNil)
			So(img.Transition.In, ShouldEqual, "fade")
			So(img.Transition.Out, ShouldEqual, "zoom")
			So(req.Timeline.Tracks[1].Clips[1].Transition, ShouldBeNil)
		})

		Convey("重排后重建时间轴，开始时间跟随新顺序", func() {
			items := testItems()
			moved, err := moveItem(items, 2, 0)
			So(err, ShouldBeNil)

			req, err := BuildTimeline(moved, Effect{}, output)
			So(err, ShouldBeNil)

			clips := req.Timeline.Tracks[0].Clips
			So(clips[0].Asset.Src, ShouldEqual, "https://cdn.example.com/3.png")
			So(clips[0].Start, ShouldAlmostEqual, 0.0, 1e-9)
			So(clips[1].Start, ShouldAlmostEqual, 2.5, 1e-9)
			So(clips[2].Start, ShouldAlmostEqual, 6.5, 1e-9)
		})

		Convey("相同输入产出完全一致的时间轴", func() {
			req1, err1 := BuildTimeline(testItems(), Effect{SubtitleStyle: "minimal"}, output)
			req2, err2 := BuildTimeline(testItems(), Effect{SubtitleStyle: "minimal"}, output)
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(req1, ShouldResemble, req2)
		})

		Convey("背景色固定为黑色", func() {
			req, err := BuildTimeline(testItems(), Effect{}, output)
			So(err, ShouldBeNil)
			So(req.Timeline.Background, ShouldEqual, "#000000")
		})
	})
}

func TestTotalDuration(t *testing.T) {
	Convey("TotalDuration 返回片段时长之和", t, func() {
		So(TotalDuration(nil), ShouldAlmostEqual, 0.0, 1e-9)
		So(TotalDuration(testItems()), ShouldAlmostEqual, 10.0, 1e-9)
	})
}
