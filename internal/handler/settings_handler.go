package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

// GetSettings 返回后台系统设置。API Key 仅回传是否已配置，避免泄漏密钥本身。
func (a *API) GetSettings(c *gin.Context) {
	settings, err := a.system.GetSettings()
	if err != nil {
		log.Printf("load settings failed: %v", err)
		respondError(c, http.StatusInternalServerError, "获取系统设置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"siteName":              settings.SiteName,
		"siteDescription":       settings.SiteDescription,
		"aiProvider":            settings.AIProvider,
		"openaiKeyConfigured":   settings.OpenAIAPIKey != "",
		"deepseekKeyConfigured": settings.DeepSeekAPIKey != "",
	})
}

// UpdateSettings 保存后台系统设置。
func (a *API) UpdateSettings(c *gin.Context) {
	var payload struct {
		SiteName        string `json:"siteName"`
		SiteDescription string `json:"siteDescription"`
		AIProvider      string `json:"aiProvider"`
		OpenAIAPIKey    string `json:"openaiApiKey"`
		DeepSeekAPIKey  string `json:"deepseekApiKey"`
	}
	if !bindJSON(c, &payload, "无效的设置请求") {
		return
	}

	settings, err := a.system.UpdateSettings(service.SystemSettingsInput{
		SiteName:        payload.SiteName,
		SiteDescription: payload.SiteDescription,
		AIProvider:      payload.AIProvider,
		OpenAIAPIKey:    payload.OpenAIAPIKey,
		DeepSeekAPIKey:  payload.DeepSeekAPIKey,
	})
	if err != nil {
		log.Printf("update settings failed: %v", err)
		respondError(c, http.StatusInternalServerError, "保存系统设置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "系统设置已保存",
		"siteName":        settings.SiteName,
		"siteDescription": settings.SiteDescription,
		"aiProvider":      settings.AIProvider,
	})
}
