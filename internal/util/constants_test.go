package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPuzzleDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, "2023-12-31", PuzzleDate(time.Date(2024, 1, 1, 8, 0, 0, 0, tokyo)))
	assert.Equal(t, "2024-01-01", PuzzleDate(time.Date(2024, 1, 1, 9, 0, 0, 0, tokyo)))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2024-02-29"))
	assert.False(t, ValidDate("2023-02-29"))
	assert.False(t, ValidDate("2024-1-1"))
	assert.False(t, ValidDate(""))
}

func TestPuzzleImageName(t *testing.T) {
	assert.Equal(t, "fusion-2024-01-01.png", PuzzleImageName("2024-01-01", MimePNG))
	assert.Equal(t, "fusion-2024-01-01.jpg", PuzzleImageName("2024-01-01", MimeJPEG))
	assert.Equal(t, "fusion-2024-01-01.webp", PuzzleImageName("2024-01-01", MimeWebP))
	assert.Equal(t, "fusion-2024-01-01.png", PuzzleImageName("2024-01-01", "application/octet-stream"))
}

func TestDetectImageType(t *testing.T) {
	mimeType, err := DetectImageType([]byte("\x89PNG\r\n\x1a\n0000"))
	assert.NoError(t, err)
	assert.Equal(t, MimePNG, mimeType)

	mimeType, err = DetectImageType([]byte("\xff\xd8\xff\xe0"))
	assert.NoError(t, err)
	assert.Equal(t, MimeJPEG, mimeType)

	_, err = DetectImageType([]byte(`{"error":"queue full"}`))
	assert.Error(t, err)
}
