package pipeline

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// mapProber 按URL查表的音频时长探测桩
type mapProber struct {
	durations map[string]float64
	err       error
	calls     int
}

func (p *mapProber) ProbeAudioDuration(ctx context.Context, audioURL string) (float64, error) {
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	return p.durations[audioURL], nil
}

func TestBuildMediaItems(t *testing.T) {
	Convey("ClipMapper.BuildMediaItems 装配媒体片段", t, func() {
		scenes := []Scene{
			{ID: "s1", Title: "Dawn", Narration: "the sun rises over the hills", Description: "sunrise"},
			{ID: "s2", Title: "Noon", Narration: "the city wakes up", Description: "busy street"},
		}
		images := []string{"img1.png", "img2.png"}
		audios := []string{"aud1.mp3", "aud2.mp3"}

		Convey("场景、图片、音频按下标配对", func() {
			prober := &mapProber{durations: map[string]float64{"aud1.mp3": 4.0, "aud2.mp3": 3.0}}
			mapper := NewClipMapper(prober, 9, 2.0)

			items, err := mapper.BuildMediaItems(context.Background(), scenes, images, audios)
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 2)

			So(items[0].Title, ShouldEqual, "Dawn")
			So(items[0].Image, ShouldEqual, "img1.png")
			So(items[0].Audio, ShouldEqual, "aud1.mp3")
			So(items[0].Duration, ShouldAlmostEqual, 4.0, 1e-9)
			So(items[1].Title, ShouldEqual, "Noon")
			So(items[1].Duration, ShouldAlmostEqual, 3.0, 1e-9)
		})

		Convey("每个片段分配唯一ID且默认无转场", func() {
			prober := &mapProber{durations: map[string]float64{"aud1.mp3": 4.0, "aud2.mp3": 3.0}}
			mapper := NewClipMapper(prober, 9, 2.0)

			items, err := mapper.BuildMediaItems(context.Background(), scenes, images, audios)
			So(err, ShouldBeNil)
			So(items[0].ID, ShouldNotBeEmpty)
			So(items[1].ID, ShouldNotBeEmpty)
			So(items[0].ID, ShouldNotEqual, items[1].ID)
			So(items[0].TransitionIn, ShouldEqual, TransitionNone)
			So(items[0].TransitionOut, ShouldEqual, TransitionNone)
		})

		Convey("字幕按片段实测时长切分，相对片段从 0 开始", func() {
			prober := &mapProber{durations: map[string]float64{"aud1.mp3": 6.0, "aud2.mp3": 3.0}}
			mapper := NewClipMapper(prober, 3, 2.0)

			items, err := mapper.BuildMediaItems(context.Background(), scenes, images, audios)
			So(err, ShouldBeNil)

			// "the sun rises over the hills" = 6 词，上限 3 -> 2 块各 3 秒
			So(len(items[0].Captions), ShouldEqual, 2)
			So(items[0].Captions[0].Start, ShouldAlmostEqual, 0.0, 1e-9)
			So(items[0].Captions[0].Length, ShouldAlmostEqual, 3.0, 1e-9)
			So(items[0].Captions[1].Start, ShouldAlmostEqual, 3.0, 1e-9)
		})

		Convey("探测失败降级为保底时长而不是报错", func() {
			prober := &mapProber{err: errors.New("ffprobe exploded")}
			mapper := NewClipMapper(prober, 9, 2.0)

			items, err := mapper.BuildMediaItems(context.Background(), scenes, images, audios)
			So(err, ShouldBeNil)
			So(items[0].Duration, ShouldAlmostEqual, 2.0, 1e-9)
			So(items[1].Duration, ShouldAlmostEqual, 2.0, 1e-9)
		})

		Convey("探测返回非正值同样降级", func() {
			prober := &mapProber{durations: map[string]float64{"aud1.mp3": 0, "aud2.mp3": -1}}
			mapper := NewClipMapper(prober, 9, 2.0)

			items, err := mapper.BuildMediaItems(context.Background(), scenes, images, audios)
			So(err, ShouldBeNil)
			So(items[0].Duration, ShouldAlmostEqual, 2.0, 1e-9)
			So(items[1].Duration, ShouldAlmostEqual, 2.0, 1e-9)
		})

		Convey("空音频地址不调用探测器直接用保底时长", func() {
			prober := &mapProber{}
			mapper := NewClipMapper(prober, 9, 2.0)

			items, err := mapper.BuildMediaItems(context.Background(), scenes, images, []string{""})
			So(err, ShouldBeNil)
			So(items[0].Duration, ShouldAlmostEqual, 2.0, 1e-9)
			So(prober.calls, ShouldEqual, 0)
		})

		Convey("音频多于场景时使用占位标题", func() {
			prober := &mapProber{durations: map[string]float64{"aud1.mp3": 2.0, "aud2.mp3": 2.0, "aud3.mp3": 2.0}}
			mapper := NewClipMapper(prober, 9, 2.0)

			items, err := mapper.BuildMediaItems(context.Background(), scenes[:1], images, []string{"aud1.mp3", "aud2.mp3", "aud3.mp3"})
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 3)
			So(items[0].Title, ShouldEqual, "Dawn")
			So(items[1].Title, ShouldEqual, "Untitled Scene 2")
			So(items[2].Title, ShouldEqual, "Untitled Scene 3")
		})

		Convey("场景标题为空时使用占位标题", func() {
			prober := &mapProber{durations: map[string]float64{"aud1.mp3": 2.0}}
			mapper := NewClipMapper(prober, 9, 2.0)

			items, err := mapper.BuildMediaItems(context.Background(),
				[]Scene{{ID: "s1", Narration: "words"}}, nil, []string{"aud1.mp3"})
			So(err, ShouldBeNil)
			So(items[0].Title, ShouldEqual, "Untitled Scene 1")
		})

		Convey("图片缺失时留空，不视为错误", func() {
			prober := &mapProber{durations: map[string]float64{"aud1.mp3": 2.0, "aud2.mp3": 2.0}}
			mapper := NewClipMapper(prober, 9, 2.0)

			items, err := mapper.BuildMediaItems(context.Background(), scenes, nil, audios)
			So(err, ShouldBeNil)
			So(items[0].Image, ShouldBeEmpty)
		})

		Convey("无音频时返回空列表", func() {
			prober := &mapProber{}
			mapper := NewClipMapper(prober, 9, 2.0)

			items, err := mapper.BuildMediaItems(context.Background(), scenes, images, nil)
			So(err, ShouldBeNil)
			So(len(items), ShouldEqual, 0)
		})
	})
}
