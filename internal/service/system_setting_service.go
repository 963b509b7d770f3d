package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inklog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// AIProviderOpenAI 表示使用 OpenAI 能力。
	AIProviderOpenAI = "openai"
	// AIProviderDeepSeek 表示使用 DeepSeek 能力。
	AIProviderDeepSeek = "deepseek"
)

var supportedAIProviders = []string{AIProviderOpenAI, AIProviderDeepSeek}

// ErrAIAPIKeyMissing 表示未提供必需的 AI 平台 API Key。
var ErrAIAPIKeyMissing = errors.New("api key is required")

// SystemSettings 描述后台可配置的系统信息。
type SystemSettings struct {
	SiteName        string
	SiteDescription string
	AIProvider      string
	OpenAIAPIKey    string
	DeepSeekAPIKey  string
}

// SystemSettingsInput 用于更新系统设置。
type SystemSettingsInput struct {
	SiteName        string
	SiteDescription string
	AIProvider      string
	OpenAIAPIKey    string
	DeepSeekAPIKey  string
}

// SystemSettingService 提供系统设置的读取与更新能力。
type SystemSettingService struct {
	db *gorm.DB
}

// NewSystemSettingService 构造 SystemSettingService。
func NewSystemSettingService(gdb *gorm.DB) *SystemSettingService {
	return &SystemSettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeySiteDescription,
	db.SettingKeyAIProvider,
	db.SettingKeyOpenAIAPIKey,
	db.SettingKeyDeepSeekAPIKey,
}

func normalizeAIProvider(provider string) string {
	lowered := strings.ToLower(strings.TrimSpace(provider))
	for _, candidate := range supportedAIProviders {
		if candidate == lowered {
			return candidate
		}
	}
	return ""
}

// GetSettings 读取系统设置，如未设置将返回默认值。
func (s *SystemSettingService) GetSettings() (SystemSettings, error) {
	result := SystemSettings{SiteName: "Inklog", AIProvider: AIProviderOpenAI}

	var records []db.SystemSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load system settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeySiteName:
			if strings.TrimSpace(record.Value) != "" {
				result.SiteName = record.Value
			}
		case db.SettingKeySiteDescription:
			result.SiteDescription = record.Value
		case db.SettingKeyAIProvider:
			if provider := normalizeAIProvider(record.Value); provider != "" {
				result.AIProvider = provider
			}
		case db.SettingKeyOpenAIAPIKey:
			result.OpenAIAPIKey = record.Value
		case db.SettingKeyDeepSeekAPIKey:
			result.DeepSeekAPIKey = record.Value
		}
	}

	return result, nil
}

// UpdateSettings 保存系统设置，未填写站点名称时回退默认值。
func (s *SystemSettingService) UpdateSettings(input SystemSettingsInput) (SystemSettings, error) {
	provider := normalizeAIProvider(input.AIProvider)
	if provider == "" {
		provider = AIProviderOpenAI
	}

	sanitized := SystemSettings{
		SiteName:        strings.TrimSpace(input.SiteName),
		SiteDescription: strings.TrimSpace(input.SiteDescription),
		AIProvider:      provider,
		OpenAIAPIKey:    strings.TrimSpace(input.OpenAIAPIKey),
		DeepSeekAPIKey:  strings.TrimSpace(input.DeepSeekAPIKey),
	}

	if sanitized.SiteName == "" {
		sanitized.SiteName = "Inklog"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		pairs := map[string]string{
			db.SettingKeySiteName:        sanitized.SiteName,
			db.SettingKeySiteDescription: sanitized.SiteDescription,
			db.SettingKeyAIProvider:      sanitized.AIProvider,
			db.SettingKeyOpenAIAPIKey:    sanitized.OpenAIAPIKey,
			db.SettingKeyDeepSeekAPIKey:  sanitized.DeepSeekAPIKey,
		}
		for _, key := range settingKeys {
			if err := upsertSetting(tx, key, pairs[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SystemSettings{}, fmt.Errorf("update system settings: %w", err)
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SystemSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
