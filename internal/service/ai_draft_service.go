package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	defaultOpenAIDraftModel   = "gpt-4o-mini"
	defaultDeepSeekDraftModel = "deepseek-chat"
	defaultDraftMaxTokens     = 2048
	defaultDraftTemperature   = 0.7
	defaultKeywordMaxTokens   = 160
	defaultKeywordTemperature = 0.2
	maxKeywordContentRunes    = 4000
	maxKeywordCount           = 8
)

const draftSystemPrompt = "你是一名博客写作助手。根据给定的主题撰写一篇 Markdown 博文草稿，" +
	"并以 JSON 对象返回，字段为 title、content、excerpt，不要输出 JSON 之外的任何内容。"

const keywordSystemPrompt = "你是一名编辑助手。从给定的文章正文中提取最能概括主题的关键词，" +
	"以 JSON 字符串数组返回，最多 8 个，不要输出数组之外的任何内容。"

// ErrEmptyTopic 表示草稿生成缺少主题。
var ErrEmptyTopic = errors.New("draft topic is required")

// DraftSuggestion 是模型生成的草稿建议，落库前仍需管理员确认。
type DraftSuggestion struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
}

// DraftGenerator 定义草稿生成能力，便于在接口层注入不同实现。
type DraftGenerator interface {
	GenerateDraft(ctx context.Context, topic string) (DraftSuggestion, error)
	ExtractKeywords(ctx context.Context, content string) ([]string, error)
}

// AIDraftService 基于大模型接口生成博文草稿与关键词建议。
type AIDraftService struct {
	client *aiChatClient
}

// NewAIDraftService 构造默认的 AIDraftService。
func NewAIDraftService(settings *SystemSettingService) *AIDraftService {
	return &AIDraftService{
		client: newAIChatClient(settings, defaultOpenAIDraftModel, defaultDeepSeekDraftModel),
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *AIDraftService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetOpenAIBaseURL 覆盖默认的 OpenAI API 地址。
func (s *AIDraftService) SetOpenAIBaseURL(base string) {
	s.client.SetOpenAIBaseURL(base)
}

// SetDeepSeekBaseURL 覆盖默认的 DeepSeek API 地址。
func (s *AIDraftService) SetDeepSeekBaseURL(base string) {
	s.client.SetDeepSeekBaseURL(base)
}

// GenerateDraft 根据主题生成草稿建议，未配置 API Key 时返回 ErrAIAPIKeyMissing。
func (s *AIDraftService) GenerateDraft(ctx context.Context, topic string) (DraftSuggestion, error) {
	trimmed := strings.TrimSpace(topic)
	if trimmed == "" {
		return DraftSuggestion{}, ErrEmptyTopic
	}

	userPrompt := fmt.Sprintf("主题：%s", trimmed)
	logAIExchange("DRAFT", "prompt", userPrompt)

	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: draftSystemPrompt,
		UserPrompt:   userPrompt,
		MaxTokens:    defaultDraftMaxTokens,
		Temperature:  defaultDraftTemperature,
	})
	if err != nil {
		return DraftSuggestion{}, err
	}
	logAIExchange("DRAFT", "response", result.Content)

	var suggestion DraftSuggestion
	if err := json.Unmarshal([]byte(stripCodeFence(result.Content)), &suggestion); err != nil {
		return DraftSuggestion{}, fmt.Errorf("解析草稿结果失败: %w", err)
	}

	suggestion.Title = strings.TrimSpace(suggestion.Title)
	suggestion.Content = strings.TrimSpace(suggestion.Content)
	suggestion.Excerpt = strings.TrimSpace(suggestion.Excerpt)
	if suggestion.Title == "" || suggestion.Content == "" {
		return DraftSuggestion{}, errors.New("模型返回的草稿缺少标题或正文")
	}

	return suggestion, nil
}

// ExtractKeywords 从正文提取关键词建议，供分类与标签浏览使用。
func (s *AIDraftService) ExtractKeywords(ctx context.Context, content string) ([]string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrContentRequired
	}

	snippet := truncateRunes(trimmed, maxKeywordContentRunes)
	logAIExchange("KEYWORDS", "prompt", snippet)

	result, err := s.client.call(ctx, aiChatRequest{
		SystemPrompt: keywordSystemPrompt,
		UserPrompt:   snippet,
		MaxTokens:    defaultKeywordMaxTokens,
		Temperature:  defaultKeywordTemperature,
	})
	if err != nil {
		return nil, err
	}
	logAIExchange("KEYWORDS", "response", result.Content)

	var raw []string
	if err := json.Unmarshal([]byte(stripCodeFence(result.Content)), &raw); err != nil {
		return nil, fmt.Errorf("解析关键词结果失败: %w", err)
	}

	keywords := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, keyword := range raw {
		cleaned := strings.TrimSpace(keyword)
		if cleaned == "" {
			continue
		}
		lowered := strings.ToLower(cleaned)
		if _, dup := seen[lowered]; dup {
			continue
		}
		seen[lowered] = struct{}{}
		keywords = append(keywords, cleaned)
		if len(keywords) == maxKeywordCount {
			break
		}
	}

	return keywords, nil
}

// stripCodeFence 去掉模型偶尔包裹的 ```json 围栏。
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func truncateRunes(content string, limit int) string {
	if limit <= 0 {
		return content
	}
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit])
}
