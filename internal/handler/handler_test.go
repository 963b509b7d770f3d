package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAutomationToken = "test-automation-token"

func setupHandlerTest(t *testing.T) (*API, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared&_foreign_keys=on", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := gdb.AutoMigrate(
		&db.User{}, &db.Session{}, &db.Category{}, &db.Post{}, &db.Comment{},
		&db.AdSetting{}, &db.AboutContent{}, &db.GuestbookEntry{}, &db.SystemSetting{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	api := NewAPI(gdb, "https://blog.example.com", testAutomationToken)

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions(SessionCookieName, store))

	public := r.Group("/api")
	{
		public.GET("/posts", api.ListPublishedPosts)
		public.GET("/posts/:slug", api.GetPublishedPost)
		public.GET("/categories/:id/posts", api.ListCategoryPosts)
		public.GET("/posts/id/:id/comments", api.ListComments)
		public.POST("/posts/id/:id/comments", api.CreateComment)
		public.DELETE("/comments/:id", api.DeleteComment)
	}

	automation := r.Group("/api/automation")
	automation.Use(api.TokenRequired())
	{
		automation.POST("/draft", api.AutomationDraft)
		automation.POST("/publish", api.AutomationPublish)
	}

	admin := r.Group("/admin/api")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		auth := admin.Group("")
		auth.Use(api.AuthRequired())
		{
			auth.GET("/me", api.Me)
			auth.POST("/posts", api.CreatePost)
			auth.DELETE("/posts/:id", api.DeletePost)
			auth.POST("/ai/draft", api.GenerateDraft)
			auth.POST("/ai/keywords", api.ExtractKeywords)
		}
	}

	return api, r
}

func seedAdmin(t *testing.T, api *API, username, password string) *db.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := db.User{Username: username, Password: string(hashed)}
	if err := api.DB().Create(&user).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return &user
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(req)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login 执行登录并返回会话 Cookie。
func login(t *testing.T, r *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/admin/api/login", gin.H{
		"username": username,
		"password": password,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued on login")
	}
	return cookies
}

func withCookies(cookies []*http.Cookie) func(*http.Request) {
	return func(req *http.Request) {
		for _, c := range cookies {
			req.AddCookie(c)
		}
	}
}

func withBearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
