package util

import "time"

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeImage = "image/"
	MimePNG   = "image/png"
	MimeJPEG  = "image/jpeg"
	MimeWebP  = "image/webp"
	MimeGIF   = "image/gif"
)

var imageExtensions = map[string]string{
	MimePNG:  ".png",
	MimeJPEG: ".jpg",
	MimeWebP: ".webp",
	MimeGIF:  ".gif",
}

// PuzzleDate 谜题日期统一使用 UTC 日历日
func PuzzleDate(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

func ValidDate(s string) bool {
	_, err := time.Parse(DateFormat, s)
	return err == nil
}

// PuzzleImageName 扩展名跟随实际图片类型，未知类型按 png 处理；同一天同类型重复生成时覆盖同名对象
func PuzzleImageName(date, contentType string) string {
	ext, ok := imageExtensions[contentType]
	if !ok {
		ext = ".png"
	}
	return "fusion-" + date + ext
}
