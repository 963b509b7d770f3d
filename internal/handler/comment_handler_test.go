package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/db"
	"github.com/inklog/internal/service"
)

func seedPublishedPost(t *testing.T, api *API) *db.Post {
	t.Helper()
	user := seedAdmin(t, api, "author", "secret")
	post, err := service.NewPostService(api.DB()).Create(service.PostInput{
		Title:     "评论流测试",
		Content:   "正文",
		UserID:    user.ID,
		Published: true,
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func TestCommentLifecycle(t *testing.T) {
	api, r := setupHandlerTest(t)
	post := seedPublishedPost(t, api)
	base := fmt.Sprintf("/api/posts/id/%d/comments", post.ID)

	// 发表顶层评论
	created := doJSON(t, r, http.MethodPost, base, gin.H{
		"content":  "写得不错",
		"name":     "방문자",
		"password": "pw",
	}, nil)
	if created.Code != http.StatusOK {
		t.Fatalf("create comment: %d %s", created.Code, created.Body.String())
	}
	var createdBody struct {
		Comment struct {
			ID uint `json:"ID"`
		} `json:"comment"`
	}
	decodeBody(t, created, &createdBody)

	// 回复
	reply := doJSON(t, r, http.MethodPost, base, gin.H{
		"content":  "同感",
		"name":     "路人",
		"password": "pw2",
		"parentId": createdBody.Comment.ID,
	}, nil)
	if reply.Code != http.StatusOK {
		t.Fatalf("create reply: %d %s", reply.Code, reply.Body.String())
	}

	// 列表按顶层评论分组
	list := doJSON(t, r, http.MethodGet, base, nil, nil)
	var listBody struct {
		Comments []struct {
			ID      uint `json:"ID"`
			Replies []struct {
				ID uint `json:"ID"`
			} `json:"replies"`
		} `json:"comments"`
	}
	decodeBody(t, list, &listBody)
	if len(listBody.Comments) != 1 {
		t.Fatalf("expected 1 top-level comment, got %d", len(listBody.Comments))
	}
	if len(listBody.Comments[0].Replies) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(listBody.Comments[0].Replies))
	}

	// 口令错误时拒绝删除
	deletePath := fmt.Sprintf("/api/comments/%d", createdBody.Comment.ID)
	wrong := doJSON(t, r, http.MethodDelete, deletePath, gin.H{"password": "nope"}, nil)
	if wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", wrong.Code)
	}

	// 正确口令删除顶层评论连带回复
	ok := doJSON(t, r, http.MethodDelete, deletePath, gin.H{"password": "pw"}, nil)
	if ok.Code != http.StatusOK {
		t.Fatalf("delete comment: %d %s", ok.Code, ok.Body.String())
	}

	empty := doJSON(t, r, http.MethodGet, base, nil, nil)
	var emptyBody struct {
		Comments []interface{} `json:"comments"`
	}
	decodeBody(t, empty, &emptyBody)
	if len(emptyBody.Comments) != 0 {
		t.Fatalf("expected empty thread, got %d comments", len(emptyBody.Comments))
	}
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	_, r := setupHandlerTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/posts/id/9999/comments", gin.H{
		"content":  "内容",
		"name":     "名字",
		"password": "pw",
	}, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
