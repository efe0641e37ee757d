package service

import (
	"context"
	"fmt"
	"fusion_backend/internal/config"
	"fusion_backend/internal/util"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const maxSeed = 1000000

// GeneratedImage 图像服务返回的原始数据
type GeneratedImage struct {
	Data        []byte
	ContentType string
}

type ImageService struct {
	config config.ImageGenConfig
	client *http.Client
}

func NewImageService(cfg config.ImageGenConfig) *ImageService {
	return &ImageService{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// TruncatePrompt 按字符截断，满足服务端长度限制
func TruncatePrompt(prompt string, max int) string {
	runes := []rune(prompt)
	if len(runes) <= max {
		return prompt
	}
	return string(runes[:max])
}

func (s *ImageService) buildURL(prompt string, seed int) string {
	encoded := url.PathEscape(TruncatePrompt(prompt, s.config.MaxPromptChars))

	query := url.Values{}
	query.Set("width", strconv.Itoa(s.config.Width))
	query.Set("height", strconv.Itoa(s.config.Height))
	query.Set("quality", "hd")
	query.Set("model", s.config.Model)
	query.Set("seed", strconv.Itoa(seed))
	query.Set("nologo", "true")
	query.Set("enhance", "false")
	if s.config.APIKey != "" {
		query.Set("key", s.config.APIKey)
	}

	return strings.TrimRight(s.config.BaseURL, "/") + "/image/" + encoded + "?" + query.Encode()
}

// Generate 非 2xx 直接失败，不重试，由下一次触发兜底
func (s *ImageService) Generate(ctx context.Context, prompt string, seed int) (*GeneratedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.buildURL(prompt, seed), nil)
	if err != nil {
		return nil, err
	}
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("image API error (status %d): %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}

	// 偶尔返回 200 但内容是错误页
	contentType, err := util.DetectImageType(data)
	if err != nil {
		return nil, fmt.Errorf("image API returned non-image body: %w", err)
	}
	return &GeneratedImage{Data: data, ContentType: contentType}, nil
}

// RandomSeed 每次运行一个随机种子
func RandomSeed(rng *rand.Rand) int {
	return rng.Intn(maxSeed)
}
