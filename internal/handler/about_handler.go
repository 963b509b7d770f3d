package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

// UpdateAbout 管理员更新关于页内容。
func (a *API) UpdateAbout(c *gin.Context) {
	var payload struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if !bindJSON(c, &payload, "无效的关于页请求") {
		return
	}

	about, err := a.about.Update(payload.Title, payload.Content)
	if err != nil {
		if errors.Is(err, service.ErrAboutTitleRequired) {
			respondError(c, http.StatusBadRequest, "标题不能为空")
			return
		}
		log.Printf("update about content failed: %v", err)
		respondError(c, http.StatusInternalServerError, "更新关于页失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "关于页已更新", "about": about})
}
