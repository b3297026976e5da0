package captiontools

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSegment(t *testing.T) {
	Convey("Segment 能把旁白文本切分为带时间的字幕块", t, func() {
		Convey("空文本返回 nil 且无错误", func() {
			captions, err := Segment("", 10.0, 9)
			So(err, ShouldBeNil)
			So(captions, ShouldBeNil)
		})

		Convey("纯空白文本同样返回 nil", func() {
			captions, err := Segment("   \n\t  ", 10.0, 9)
			So(err, ShouldBeNil)
			So(captions, ShouldBeNil)
		})

		Convey("文本非空但总时长为 0 时返回错误", func() {
			_, err := Segment("hello world", 0, 9)
			So(err, ShouldNotBeNil)
		})

		Convey("词数不超过上限时只生成一块且覆盖全部时长", func() {
			captions, err := Segment("the quick brown fox", 8.0, 9)
			So(err, ShouldBeNil)
			So(len(captions), ShouldEqual, 1)
			So(captions[0].Text, ShouldEqual, "the quick brown fox")
			So(captions[0].Start, ShouldEqual, 0.0)
			So(captions[0].Length, ShouldEqual, 8.0)
		})

		Convey("超过上限时按词数分块且不拆词", func() {
			// 7 个词，上限 3 -> 3 + 3 + 1
			captions, err := Segment("one two three four five six seven", 9.0, 3)
			So(err, ShouldBeNil)
			So(len(captions), ShouldEqual, 3)
			So(captions[0].Text, ShouldEqual, "one two three")
			So(captions[1].Text, ShouldEqual, "four five six")
			So(captions[2].Text, ShouldEqual, "seven")
		})

		Convey("时长在各块间均分，与每块词数无关", func() {
			captions, err := Segment("one two three four five six seven", 9.0, 3)
			So(err, ShouldBeNil)
			So(len(captions), ShouldEqual, 3)
			for i, c := range captions {
				So(c.Length, ShouldAlmostEqual, 3.0, 1e-9)
				So(c.Start, ShouldAlmostEqual, float64(i)*3.0, 1e-9)
			}
		})

		Convey("各块时长之和等于总时长", func() {
			captions, err := Segment("a b c d e f g h i j k", 7.0, 4)
			So(err, ShouldBeNil)

			sum := 0.0
			for _, c := range captions {
				sum += c.Length
			}
			So(sum, ShouldAlmostEqual, 7.0, 1e-9)
		})

		Convey("多余空白被折叠，词序保持", func() {
			captions, err := Segment("  hello   world  again ", 6.0, 2)
			So(err, ShouldBeNil)
			So(len(captions), ShouldEqual, 2)
			So(captions[0].Text, ShouldEqual, "hello world")
			So(captions[1].Text, ShouldEqual, "again")
		})

		Convey("上限非法时退回默认值", func() {
			words := make([]string, 18)
			for i := range words {
				words[i] = "w"
			}
			captions, err := Segment(strings.Join(words, " "), 10.0, 0)
			So(err, ShouldBeNil)
			// 18 个词 / 默认 9 -> 2 块
			So(len(captions), ShouldEqual, 2)
		})
	})
}
