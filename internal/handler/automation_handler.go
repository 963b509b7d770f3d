package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

// automationResponse 是外部自动化客户端约定的固定响应结构。
type automationResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Post    interface{} `json:"post,omitempty"`
	Slug    string      `json:"slug,omitempty"`
}

// AutomationDraft 供外部内容工具按 slug 创建或更新草稿。
func (a *API) AutomationDraft(c *gin.Context) {
	var payload struct {
		Slug     string `json:"slug"`
		Title    string `json:"title"`
		Content  string `json:"content"`
		Summary  string `json:"summary"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, automationResponse{Success: false, Message: "无效的草稿请求"})
		return
	}

	post, err := a.posts.DraftUpsert(service.DraftInput{
		Slug:     payload.Slug,
		Title:    payload.Title,
		Content:  payload.Content,
		Excerpt:  payload.Summary,
		Category: payload.Category,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugRequired),
			errors.Is(err, service.ErrTitleRequired),
			errors.Is(err, service.ErrContentRequired):
			c.JSON(http.StatusBadRequest, automationResponse{Success: false, Message: "slug、标题和内容不能为空"})
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, automationResponse{Success: false, Message: "分类不存在"})
		case errors.Is(err, service.ErrPreconditionFailed):
			c.JSON(http.StatusPreconditionFailed, automationResponse{Success: false, Message: "默认作者尚未初始化"})
		default:
			log.Printf("automation draft upsert %q failed: %v", payload.Slug, err)
			c.JSON(http.StatusInternalServerError, automationResponse{Success: false, Message: "保存草稿失败"})
		}
		return
	}

	c.JSON(http.StatusOK, automationResponse{
		Success: true,
		Message: "草稿已保存",
		Post:    post,
		Slug:    post.Slug,
	})
}

// AutomationPublish 将指定 slug 的文章切换为已发布。
// publishedAt 仅回显，权威时间戳是文章的 UpdatedAt。
func (a *API) AutomationPublish(c *gin.Context) {
	var payload struct {
		Slug        string     `json:"slug"`
		PublishedAt *time.Time `json:"publishedAt"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, automationResponse{Success: false, Message: "无效的发布请求"})
		return
	}

	post, err := a.posts.Publish(payload.Slug, payload.PublishedAt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugRequired):
			c.JSON(http.StatusBadRequest, automationResponse{Success: false, Message: "slug 不能为空"})
		case errors.Is(err, service.ErrPostNotFound):
			c.JSON(http.StatusNotFound, automationResponse{Success: false, Message: "文章不存在"})
		default:
			log.Printf("automation publish %q failed: %v", payload.Slug, err)
			c.JSON(http.StatusInternalServerError, automationResponse{Success: false, Message: "发布失败"})
		}
		return
	}

	c.JSON(http.StatusOK, automationResponse{
		Success: true,
		Message: "文章已发布",
		Post:    post,
	})
}
