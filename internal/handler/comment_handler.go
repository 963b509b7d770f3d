package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/db"
	"github.com/inklog/internal/service"
)

type commentView struct {
	db.Comment
	Replies []db.Comment `json:"replies"`
}

// ListComments 公开的评论列表接口，顶层评论带一层回复。
func (a *API) ListComments(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	comments, err := a.comments.ListByPost(postID)
	if err != nil {
		log.Printf("list comments for post %d failed: %v", postID, err)
		respondError(c, http.StatusInternalServerError, "获取评论失败")
		return
	}

	views := make([]commentView, 0)
	index := make(map[uint]int)
	for _, comment := range comments {
		if comment.ParentID == nil {
			views = append(views, commentView{Comment: comment, Replies: []db.Comment{}})
			index[comment.ID] = len(views) - 1
		}
	}
	for _, comment := range comments {
		if comment.ParentID == nil {
			continue
		}
		if pos, ok := index[*comment.ParentID]; ok {
			views[pos].Replies = append(views[pos].Replies, comment)
		}
	}

	c.JSON(http.StatusOK, gin.H{"comments": views})
}

// CreateComment 公开的评论创建接口，无需登录。
func (a *API) CreateComment(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	var payload struct {
		Content  string `json:"content"`
		Name     string `json:"name"`
		Password string `json:"password"`
		ParentID *uint  `json:"parentId"`
	}
	if !bindJSON(c, &payload, "无效的评论请求") {
		return
	}

	comment, err := a.comments.Create(service.CommentInput{
		PostID:   postID,
		Content:  payload.Content,
		Name:     payload.Name,
		Password: payload.Password,
		ParentID: payload.ParentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentContentRequired), errors.Is(err, service.ErrCommentNameRequired):
			respondError(c, http.StatusBadRequest, "昵称和内容不能为空")
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "文章不存在")
		default:
			log.Printf("create comment on post %d failed: %v", postID, err)
			respondError(c, http.StatusInternalServerError, "发表评论失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "评论发表成功", "comment": comment})
}

// DeleteComment 匿名作者按口令删除自己的评论，顶层评论连带其回复一并删除。
func (a *API) DeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	var payload struct {
		Password string `json:"password"`
	}
	if !bindJSON(c, &payload, "无效的删除请求") {
		return
	}

	if err := a.comments.Delete(id, payload.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			respondError(c, http.StatusNotFound, "评论不存在")
		case errors.Is(err, service.ErrPasswordMismatch):
			respondError(c, http.StatusUnauthorized, "口令错误")
		default:
			log.Printf("delete comment %d failed: %v", id, err)
			respondError(c, http.StatusInternalServerError, "删除评论失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "评论已删除"})
}

// AdminDeleteComment 管理员删除评论，不校验口令。
func (a *API) AdminDeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	if err := a.comments.DeleteAsAdmin(id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "评论不存在")
			return
		}
		log.Printf("admin delete comment %d failed: %v", id, err)
		respondError(c, http.StatusInternalServerError, "删除评论失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "评论已删除"})
}
