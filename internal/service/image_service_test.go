package service

import (
	"context"
	"fusion_backend/internal/config"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n0000")
	jpegBytes = []byte("\xff\xd8\xff\xe0jpeg")
)

func newTestImageService(baseURL, apiKey string) *ImageService {
	return NewImageService(config.ImageGenConfig{
		BaseURL:        baseURL,
		APIKey:         apiKey,
		Model:          "nanobanana-pro",
		Width:          2560,
		Height:         1440,
		MaxPromptChars: 1000,
		Timeout:        5 * time.Second,
	})
}

func TestImageService_Generate(t *testing.T) {
	var gotReq *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(jpegBytes)
	}))
	defer server.Close()

	svc := newTestImageService(server.URL, "secret-key")
	image, err := svc.Generate(context.Background(), "a fused champion", 4242)
	require.NoError(t, err)

	assert.Equal(t, jpegBytes, image.Data)
	assert.Equal(t, "image/jpeg", image.ContentType)

	require.NotNil(t, gotReq)
	assert.Equal(t, "/image/a fused champion", gotReq.URL.Path)
	q := gotReq.URL.Query()
	assert.Equal(t, "2560", q.Get("width"))
	assert.Equal(t, "1440", q.Get("height"))
	assert.Equal(t, "hd", q.Get("quality"))
	assert.Equal(t, "nanobanana-pro", q.Get("model"))
	assert.Equal(t, "4242", q.Get("seed"))
	assert.Equal(t, "true", q.Get("nologo"))
	assert.Equal(t, "false", q.Get("enhance"))
	assert.Equal(t, "secret-key", q.Get("key"))
	assert.Equal(t, "Bearer secret-key", gotReq.Header.Get("Authorization"))
}

func TestImageService_NoKey(t *testing.T) {
	var gotReq *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "text/plain")
		w.Write(pngBytes)
	}))
	defer server.Close()

	image, err := newTestImageService(server.URL, "").Generate(context.Background(), "prompt", 1)
	require.NoError(t, err)

	assert.Empty(t, gotReq.Header.Get("Authorization"))
	assert.False(t, gotReq.URL.Query().Has("key"))
	// 以内容嗅探为准，忽略响应头
	assert.Equal(t, "image/png", image.ContentType)
}

func TestImageService_Non2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("queue full"))
	}))
	defer server.Close()

	_, err := newTestImageService(server.URL, "").Generate(context.Background(), "prompt", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "queue full")
}

func TestImageService_NonImageBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model overloaded"}`))
	}))
	defer server.Close()

	_, err := newTestImageService(server.URL, "").Generate(context.Background(), "prompt", 1)
	assert.Error(t, err)
}

func TestImageService_TruncatesPrompt(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(pngBytes)
	}))
	defer server.Close()

	long := strings.Repeat("é", 1500)
	_, err := newTestImageService(server.URL, "").Generate(context.Background(), long, 1)
	require.NoError(t, err)

	sent := strings.TrimPrefix(gotPath, "/image/")
	assert.Equal(t, 1000, len([]rune(sent)))
}

func TestTruncatePrompt(t *testing.T) {
	assert.Equal(t, "abc", TruncatePrompt("abc", 10))
	assert.Equal(t, "ab", TruncatePrompt("abc", 2))
	assert.Equal(t, "日本", TruncatePrompt("日本語", 2))
}

func TestRandomSeed(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		seed := RandomSeed(rng)
		assert.GreaterOrEqual(t, seed, 0)
		assert.Less(t, seed, 1000000)
	}
}
