package service

import (
	"context"
	"encoding/json"
	"fusion_backend/internal/config"
	"fusion_backend/internal/util"
	"fusion_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ContentGenerator 由 *genai.Models 实现，测试中替换为假实现
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ReferenceImage 参考图（两张角色原画）
type ReferenceImage struct {
	Data     []byte
	MIMEType string
}

type RefineService struct {
	generator ContentGenerator
	model     string
}

func NewRefineService(generator ContentGenerator, model string) *RefineService {
	return &RefineService{generator: generator, model: model}
}

// NewGeminiRefineService 未配置 API key 时返回不调用模型的服务
func NewGeminiRefineService(ctx context.Context, cfg config.GeminiConfig) (*RefineService, error) {
	if cfg.APIKey == "" {
		return NewRefineService(nil, cfg.Model), nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return NewRefineService(client.Models, cfg.Model), nil
}

// Refine 永远返回一个可用的提示词：精炼结果或原始提示词
func (s *RefineService) Refine(ctx context.Context, prompt string, images ...ReferenceImage) string {
	if s.generator == nil {
		logger.Log.Warn("Prompt refinement disabled, using composed prompt")
		return prompt
	}

	parts := []*genai.Part{
		genai.NewPartFromText(RefinementInstruction),
		genai.NewPartFromText(prompt),
	}
	for _, img := range images {
		mimeType := img.MIMEType
		if mimeType == "" {
			mimeType = util.MimeJPEG
		}
		parts = append(parts, genai.NewPartFromBytes(img.Data, mimeType))
	}

	resp, err := s.generator.GenerateContent(ctx, s.model, []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}, nil)
	if err != nil {
		logger.Log.Error("Gemini refinement failed, using composed prompt", zap.Error(err))
		return prompt
	}

	result := parseRefinement(firstText(resp))
	if result.kind == refinedEmpty {
		logger.Log.Warn("Gemini returned no text, using composed prompt")
		return prompt
	}

	logger.Log.Info("Refined prompt",
		zap.String("source", result.kind.String()),
		zap.String("prompt", result.text),
	)
	return result.text
}

// firstText 取第一个候选的第一个 part 的文本
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return ""
	}
	return content.Parts[0].Text
}

type refinementKind int

const (
	refinedEmpty refinementKind = iota
	refinedPlain
	refinedActionInput
	refinedPromptField
	refinedRawJSON
)

func (k refinementKind) String() string {
	switch k {
	case refinedPlain:
		return "plain"
	case refinedActionInput:
		return "action_input"
	case refinedPromptField:
		return "prompt_field"
	case refinedRawJSON:
		return "raw_json"
	default:
		return "empty"
	}
}

type refinement struct {
	kind refinementKind
	text string
}

// parseRefinement 模型偶尔无视指令返回 JSON：
// {action_input: string|object{prompt}} → {prompt} → 原文
func parseRefinement(raw string) refinement {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return refinement{kind: refinedEmpty}
	}
	if !strings.HasPrefix(trimmed, "{") {
		return refinement{kind: refinedPlain, text: raw}
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return refinement{kind: refinedRawJSON, text: raw}
	}

	if actionInput, ok := envelope["action_input"]; ok && isPresent(actionInput) {
		if prompt, ok := promptFromActionInput(actionInput); ok {
			return refinement{kind: refinedActionInput, text: prompt}
		}
		return refinement{kind: refinedRawJSON, text: raw}
	}

	if prompt, ok := stringField(envelope, "prompt"); ok {
		return refinement{kind: refinedPromptField, text: prompt}
	}
	return refinement{kind: refinedRawJSON, text: raw}
}

// promptFromActionInput action_input 可能是对象，也可能是再次编码的 JSON 字符串
func promptFromActionInput(value json.RawMessage) (string, bool) {
	var encoded string
	if err := json.Unmarshal(value, &encoded); err == nil {
		value = json.RawMessage(encoded)
	}

	var input map[string]json.RawMessage
	if err := json.Unmarshal(value, &input); err != nil {
		return "", false
	}
	return stringField(input, "prompt")
}

func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	value, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// isPresent null、false、空串、0 视为不存在
func isPresent(value json.RawMessage) bool {
	switch strings.TrimSpace(string(value)) {
	case "", "null", "false", `""`, "0":
		return false
	}
	return true
}
