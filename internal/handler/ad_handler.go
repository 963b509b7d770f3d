package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

type adPayload struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Enabled  bool   `json:"enabled"`
	Content  string `json:"content"`
}

// GetAds 后台广告位列表。
func (a *API) GetAds(c *gin.Context) {
	ads, err := a.ads.List()
	if err != nil {
		log.Printf("list ads failed: %v", err)
		respondError(c, http.StatusInternalServerError, "获取广告列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ads": ads})
}

// CreateAd 创建广告位配置。
func (a *API) CreateAd(c *gin.Context) {
	var payload adPayload
	if !bindJSON(c, &payload, "无效的广告请求") {
		return
	}

	ad, err := a.ads.Create(service.AdInput(payload))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdNameRequired):
			respondError(c, http.StatusBadRequest, "广告名称不能为空")
		case errors.Is(err, service.ErrInvalidAdPosition):
			respondError(c, http.StatusBadRequest, "无效的广告位置")
		default:
			log.Printf("create ad failed: %v", err)
			respondError(c, http.StatusInternalServerError, "创建广告失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "广告创建成功", "ad": ad})
}

// UpdateAd 更新广告位配置。
func (a *API) UpdateAd(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的广告ID")
		return
	}

	var payload adPayload
	if !bindJSON(c, &payload, "无效的广告请求") {
		return
	}

	ad, err := a.ads.Update(id, service.AdInput(payload))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdNotFound):
			respondError(c, http.StatusNotFound, "广告不存在")
		case errors.Is(err, service.ErrAdNameRequired):
			respondError(c, http.StatusBadRequest, "广告名称不能为空")
		case errors.Is(err, service.ErrInvalidAdPosition):
			respondError(c, http.StatusBadRequest, "无效的广告位置")
		default:
			log.Printf("update ad %d failed: %v", id, err)
			respondError(c, http.StatusInternalServerError, "更新广告失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "广告更新成功", "ad": ad})
}

// DeleteAd 删除广告位配置。
func (a *API) DeleteAd(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的广告ID")
		return
	}

	if err := a.ads.Delete(id); err != nil {
		if errors.Is(err, service.ErrAdNotFound) {
			respondError(c, http.StatusNotFound, "广告不存在")
			return
		}
		log.Printf("delete ad %d failed: %v", id, err)
		respondError(c, http.StatusInternalServerError, "删除广告失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "广告删除成功"})
}
