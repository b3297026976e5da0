package local

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestStorage(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/storage", "test-secret", 3600)
	if err != nil {
		t.Fatalf("failed to create local storage: %v", err)
	}
	return s
}

func TestLocalStorageUploadDownload(t *testing.T) {
	Convey("LocalStorage 上传与下载", t, func() {
		s := newTestStorage(t)
		ctx := context.Background()

		Convey("上传后能读回相同内容", func() {
			url, err := s.Upload(ctx, "audios/s1/1.mp3", strings.NewReader("fake mp3 bytes"), "audio/mpeg")
			So(err, ShouldBeNil)
			So(url, ShouldEqual, "http://localhost:8080/storage/audios/s1/1.mp3")

			reader, err := s.Download(ctx, "audios/s1/1.mp3")
			So(err, ShouldBeNil)
			defer reader.Close()

			data, err := io.ReadAll(reader)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "fake mp3 bytes")
		})

		Convey("下载不存在的文件返回错误", func() {
			_, err := s.Download(ctx, "missing.mp3")
			So(err, ShouldNotBeNil)
		})

		Convey("Exists 反映文件状态", func() {
			exists, err := s.Exists(ctx, "x.png")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)

			_, err = s.Upload(ctx, "x.png", strings.NewReader("png"), "image/png")
			So(err, ShouldBeNil)

			exists, err = s.Exists(ctx, "x.png")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("删除不存在的文件视为成功", func() {
			So(s.Delete(ctx, "missing.mp4"), ShouldBeNil)
		})

		Convey("GetFileInfo 返回大小与Content-Type", func() {
			_, err := s.Upload(ctx, "videos/v1.mp4", strings.NewReader("0123456789"), "video/mp4")
			So(err, ShouldBeNil)

			info, err := s.GetFileInfo(ctx, "videos/v1.mp4")
			So(err, ShouldBeNil)
			So(info.Size, ShouldEqual, 10)
			So(info.ContentType, ShouldEqual, "video/mp4")
			So(info.ETag, ShouldNotBeEmpty)
		})
	})
}

func TestLocalStorageUploadToken(t *testing.T) {
	Convey("LocalStorage 上传token", t, func() {
		s := newTestStorage(t)
		ctx := context.Background()

		Convey("预签名上传URL携带可验证的token", func() {
			url, err := s.GetPresignedUploadURL(ctx, "images/s1/1.png", "image/png", time.Hour)
			So(err, ShouldBeNil)
			So(url, ShouldContainSubstring, "token=")
			So(url, ShouldContainSubstring, "key=")
		})

		Convey("token验证返回授权的key", func() {
			token, err := s.generateUploadToken("images/s1/1.png", "image/png", time.Hour)
			So(err, ShouldBeNil)

			key, err := s.ValidateUploadToken(token)
			So(err, ShouldBeNil)
			So(key, ShouldEqual, "images/s1/1.png")
		})

		Convey("过期token被拒绝", func() {
			token, err := s.generateUploadToken("k", "image/png", -time.Minute)
			So(err, ShouldBeNil)

			_, err = s.ValidateUploadToken(token)
			So(err, ShouldEqual, ErrInvalidUploadToken)
		})

		Convey("其他密钥签发的token被拒绝", func() {
			other, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/storage", "other-secret", 3600)
			So(err, ShouldBeNil)

			token, err := other.generateUploadToken("k", "image/png", time.Hour)
			So(err, ShouldBeNil)

			_, err = s.ValidateUploadToken(token)
			So(err, ShouldEqual, ErrInvalidUploadToken)
		})

		Convey("乱码token被拒绝", func() {
			_, err := s.ValidateUploadToken("not-a-jwt")
			So(err, ShouldEqual, ErrInvalidUploadToken)
		})
	})
}
