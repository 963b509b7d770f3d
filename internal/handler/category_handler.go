package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GetCategories 后台分类列表。
func (a *API) GetCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		log.Printf("list categories failed: %v", err)
		respondError(c, http.StatusInternalServerError, "获取分类列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory 创建分类。
func (a *API) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !bindJSON(c, &payload, "无效的分类请求") {
		return
	}

	category, err := a.categories.Create(payload.Name, payload.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNameRequired):
			respondError(c, http.StatusBadRequest, "分类名称不能为空")
		case errors.Is(err, service.ErrCategoryExists):
			respondError(c, http.StatusBadRequest, "分类已存在")
		default:
			log.Printf("create category failed: %v", err)
			respondError(c, http.StatusInternalServerError, "创建分类失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "分类创建成功", "category": category})
}

// UpdateCategory 更新分类。
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	var payload categoryPayload
	if !bindJSON(c, &payload, "无效的分类请求") {
		return
	}

	category, err := a.categories.Update(id, payload.Name, payload.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "分类不存在")
		case errors.Is(err, service.ErrCategoryNameRequired):
			respondError(c, http.StatusBadRequest, "分类名称不能为空")
		case errors.Is(err, service.ErrCategoryExists):
			respondError(c, http.StatusBadRequest, "分类已存在")
		default:
			log.Printf("update category %d failed: %v", id, err)
			respondError(c, http.StatusInternalServerError, "更新分类失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "分类更新成功", "category": category})
}

// DeleteCategory 删除分类，仍被文章引用时拒绝。
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	if err := a.categories.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "分类不存在")
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, http.StatusBadRequest, "分类下仍有文章，无法删除")
		default:
			log.Printf("delete category %d failed: %v", id, err)
			respondError(c, http.StatusInternalServerError, "删除分类失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "分类删除成功"})
}
