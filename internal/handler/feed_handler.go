package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RSSFeed 输出 RSS 2.0 订阅源，仅包含已发布文章。
func (a *API) RSSFeed(c *gin.Context) {
	payload, err := a.feed.Build(a.siteBaseURL)
	if err != nil {
		log.Printf("build rss feed failed: %v", err)
		respondError(c, http.StatusInternalServerError, "生成订阅源失败")
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", payload)
}
