package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

type postPayload struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	CategoryID *uint  `json:"categoryId"`
	Published  bool   `json:"published"`
}

// GetPosts 获取后台文章列表，含草稿与计数。
func (a *API) GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))

	filter := service.PostFilter{
		Search:  strings.TrimSpace(c.Query("search")),
		Status:  strings.TrimSpace(c.Query("status")),
		Page:    page,
		PerPage: perPage,
	}

	result, err := a.posts.List(filter)
	if err != nil {
		log.Printf("list posts failed: %v", err)
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":          result.Posts,
		"total":          result.Total,
		"publishedCount": result.PublishedCount,
		"draftCount":     result.DraftCount,
		"totalPages":     result.TotalPages,
		"page":           result.Page,
		"perPage":        result.PerPage,
	})
}

// GetPost 获取单篇文章（含草稿）。
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		log.Printf("get post %d failed: %v", id, err)
		respondError(c, http.StatusInternalServerError, "获取文章失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost 创建新文章。
func (a *API) CreatePost(c *gin.Context) {
	var payload postPayload
	if !bindJSON(c, &payload, "无效的文章请求") {
		return
	}

	user := currentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "未登录或会话已过期")
		return
	}

	post, err := a.posts.Create(service.PostInput{
		Title:      payload.Title,
		Content:    payload.Content,
		Excerpt:    payload.Excerpt,
		CategoryID: payload.CategoryID,
		Published:  payload.Published,
		UserID:     user.ID,
	})
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrContentRequired) {
			respondError(c, http.StatusBadRequest, "标题和内容不能为空")
			return
		}
		log.Printf("create post failed: %v", err)
		respondError(c, http.StatusInternalServerError, "创建文章失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章创建成功", "post": post})
}

// UpdatePost 更新文章，标题变化时 slug 按原规则重算。
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	var payload postPayload
	if !bindJSON(c, &payload, "无效的文章请求") {
		return
	}

	post, err := a.posts.Update(id, service.PostInput{
		Title:      payload.Title,
		Content:    payload.Content,
		Excerpt:    payload.Excerpt,
		CategoryID: payload.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "文章不存在")
		case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrContentRequired):
			respondError(c, http.StatusBadRequest, "标题和内容不能为空")
		default:
			log.Printf("update post %d failed: %v", id, err)
			respondError(c, http.StatusInternalServerError, "更新文章失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章更新成功", "post": post})
}

// DeletePost 硬删除文章。
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	if err := a.posts.Delete(id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		log.Printf("delete post %d failed: %v", id, err)
		respondError(c, http.StatusInternalServerError, "删除文章失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章删除成功"})
}

// SetPostPublished 切换文章发布状态。
func (a *API) SetPostPublished(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	var payload struct {
		Published bool `json:"published"`
	}
	if !bindJSON(c, &payload, "无效的发布请求") {
		return
	}

	post, err := a.posts.SetPublished(id, payload.Published)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		log.Printf("set post %d published failed: %v", id, err)
		respondError(c, http.StatusInternalServerError, "更新发布状态失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "发布状态已更新", "post": post})
}
