package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

// ListGuestbook 公开的留言板列表。
func (a *API) ListGuestbook(c *gin.Context) {
	entries, err := a.guestbook.List()
	if err != nil {
		log.Printf("list guestbook failed: %v", err)
		respondError(c, http.StatusInternalServerError, "获取留言失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// CreateGuestbookEntry 公开的留言创建接口。
func (a *API) CreateGuestbookEntry(c *gin.Context) {
	var payload struct {
		Name     string `json:"name"`
		Content  string `json:"content"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &payload, "无效的留言请求") {
		return
	}

	entry, err := a.guestbook.Create(service.GuestbookInput(payload))
	if err != nil {
		if errors.Is(err, service.ErrEntryNameRequired) || errors.Is(err, service.ErrEntryContentRequired) {
			respondError(c, http.StatusBadRequest, "昵称和内容不能为空")
			return
		}
		log.Printf("create guestbook entry failed: %v", err)
		respondError(c, http.StatusInternalServerError, "发表留言失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "留言发表成功", "entry": entry})
}

// DeleteGuestbookEntry 匿名作者按口令删除自己的留言。
func (a *API) DeleteGuestbookEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	var payload struct {
		Password string `json:"password"`
	}
	if !bindJSON(c, &payload, "无效的删除请求") {
		return
	}

	if err := a.guestbook.Delete(id, payload.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			respondError(c, http.StatusNotFound, "留言不存在")
		case errors.Is(err, service.ErrPasswordMismatch):
			respondError(c, http.StatusUnauthorized, "口令错误")
		default:
			log.Printf("delete guestbook entry %d failed: %v", id, err)
			respondError(c, http.StatusInternalServerError, "删除留言失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "留言已删除"})
}

// AdminDeleteGuestbookEntry 管理员删除留言，不校验口令。
func (a *API) AdminDeleteGuestbookEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	if err := a.guestbook.DeleteAsAdmin(id); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "留言不存在")
			return
		}
		log.Printf("admin delete guestbook entry %d failed: %v", id, err)
		respondError(c, http.StatusInternalServerError, "删除留言失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "留言已删除"})
}
