package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

// GenerateDraft 调用 AI 助手根据主题生成草稿建议，结果不直接落库。
func (a *API) GenerateDraft(c *gin.Context) {
	var payload struct {
		Topic string `json:"topic"`
	}
	if !bindJSON(c, &payload, "无效的生成请求") {
		return
	}

	suggestion, err := a.drafts.GenerateDraft(c.Request.Context(), payload.Topic)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTopic):
			respondError(c, http.StatusBadRequest, "主题不能为空")
		case errors.Is(err, service.ErrAIAPIKeyMissing):
			respondError(c, http.StatusBadRequest, "尚未配置 AI API Key")
		default:
			log.Printf("generate draft failed: %v", err)
			respondError(c, http.StatusInternalServerError, "生成草稿失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": suggestion})
}

// ExtractKeywords 调用 AI 助手从正文提取关键词建议。
func (a *API) ExtractKeywords(c *gin.Context) {
	var payload struct {
		Content string `json:"content"`
	}
	if !bindJSON(c, &payload, "无效的提取请求") {
		return
	}

	keywords, err := a.drafts.ExtractKeywords(c.Request.Context(), payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentRequired):
			respondError(c, http.StatusBadRequest, "内容不能为空")
		case errors.Is(err, service.ErrAIAPIKeyMissing):
			respondError(c, http.StatusBadRequest, "尚未配置 AI API Key")
		default:
			log.Printf("extract keywords failed: %v", err)
			respondError(c, http.StatusInternalServerError, "提取关键词失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}
