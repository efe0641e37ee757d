package util

import (
	"errors"
	"net/http"
	"strings"
)

// DetectImageType 按内容嗅探类型，不信任上游的 Content-Type
func DetectImageType(data []byte) (string, error) {
	mimeType := http.DetectContentType(data)
	if !IsImage(mimeType) {
		return mimeType, errors.New("invalid image content: " + mimeType)
	}
	return mimeType, nil
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImage)
}
