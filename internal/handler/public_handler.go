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

// ListPublishedPosts 公开的文章列表与搜索接口，只返回已发布文章。
// 搜索为大小写不敏感的子串匹配，无命中时返回空列表而不是错误。
func (a *API) ListPublishedPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))

	filter := service.PostFilter{
		Search:  strings.TrimSpace(c.Query("search")),
		Page:    page,
		PerPage: perPage,
	}

	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID := uint(id)
			filter.CategoryID = &categoryID
		}
	}

	result, err := a.posts.ListPublished(filter)
	if err != nil {
		log.Printf("list published posts failed: %v", err)
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      result.Posts,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"perPage":    result.PerPage,
	})
}

// GetPublishedPost 公开的文章详情接口，正文渲染为净化后的 HTML 并累加浏览数。
func (a *API) GetPublishedPost(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	post, err := a.posts.GetPublishedBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		log.Printf("get post by slug %q failed: %v", slug, err)
		respondError(c, http.StatusInternalServerError, "获取文章失败")
		return
	}

	if err := a.posts.IncrementViews(post.ID); err != nil {
		log.Printf("increment views for post %d failed: %v", post.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"post": post,
		"html": service.RenderMarkdown(post.Content),
	})
}

// ListCategories 公开的分类浏览接口，附带已发布文章计数。
func (a *API) ListCategories(c *gin.Context) {
	usages, err := a.categories.PublishedUsage()
	if err != nil {
		log.Printf("list categories failed: %v", err)
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": usages})
}

// ListCategoryPosts 公开的分类文章列表，仅含已发布文章。
func (a *API) ListCategoryPosts(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))

	result, err := a.posts.ListPublished(service.PostFilter{
		CategoryID: &id,
		Page:       page,
		PerPage:    perPage,
	})
	if err != nil {
		log.Printf("list posts for category %d failed: %v", id, err)
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      result.Posts,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"perPage":    result.PerPage,
	})
}

// ListEnabledAds 返回启用中的广告位，渲染层按位置注入。
func (a *API) ListEnabledAds(c *gin.Context) {
	ads, err := a.ads.ListEnabled(c.Query("position"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdPosition) {
			respondError(c, http.StatusBadRequest, "无效的广告位置")
			return
		}
		log.Printf("list enabled ads failed: %v", err)
		respondError(c, http.StatusInternalServerError, "获取广告配置失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads})
}

// GetAbout 公开的关于页接口。
func (a *API) GetAbout(c *gin.Context) {
	about, err := a.about.Get()
	if err != nil {
		log.Printf("get about content failed: %v", err)
		respondError(c, http.StatusInternalServerError, "获取关于页失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"about": about,
		"html":  service.RenderMarkdown(about.Content),
	})
}
