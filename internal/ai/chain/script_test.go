package chain

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseScenes(t *testing.T) {
	Convey("parseScenes 解析模型输出为场景列表", t, func() {
		Convey("裸JSON数组", func() {
			scenes, err := parseScenes(`[
				{"title": "Dawn", "narration": "the sun rises", "description": "sunrise over hills"},
				{"title": "Noon", "narration": "the city wakes", "description": "busy street"}
			]`)
			So(err, ShouldBeNil)
			So(len(scenes), ShouldEqual, 2)
			So(scenes[0].Title, ShouldEqual, "Dawn")
			So(scenes[0].Narration, ShouldEqual, "the sun rises")
			So(scenes[1].Description, ShouldEqual, "busy street")
		})

		Convey("每个场景分配唯一ID", func() {
			scenes, err := parseScenes(`[{"title": "A"}, {"title": "B"}]`)
			So(err, ShouldBeNil)
			So(scenes[0].ID, ShouldNotBeEmpty)
			So(scenes[1].ID, ShouldNotBeEmpty)
			So(scenes[0].ID, ShouldNotEqual, scenes[1].ID)
		})

		Convey("容忍markdown代码块包裹", func() {
			scenes, err := parseScenes("```json\n[{\"title\": \"A\", \"narration\": \"n\"}]\n```")
			So(err, ShouldBeNil)
			So(len(scenes), ShouldEqual, 1)
			So(scenes[0].Title, ShouldEqual, "A")
		})

		Convey("无语言标注的代码块同样容忍", func() {
			scenes, err := parseScenes("```\n[{\"title\": \"A\"}]\n```")
			So(err, ShouldBeNil)
			So(len(scenes), ShouldEqual, 1)
		})

		Convey("字段前后空白被去除", func() {
			scenes, err := parseScenes(`[{"title": " Dawn ", "narration": " text "}]`)
			So(err, ShouldBeNil)
			So(scenes[0].Title, ShouldEqual, "Dawn")
			So(scenes[0].Narration, ShouldEqual, "text")
		})

		Convey("非JSON内容返回错误", func() {
			_, err := parseScenes("Sure! Here is your script:")
			So(err, ShouldNotBeNil)
		})

		Convey("空数组返回错误", func() {
			_, err := parseScenes(`[]`)
			So(err, ShouldNotBeNil)
		})
	})
}
