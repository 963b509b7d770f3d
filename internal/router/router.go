package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/handler"
	"github.com/inklog/internal/service"
)

// Setup 配置 Gin 引擎和路由。
func Setup(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 会话 Cookie：仅承载不透明 token，有效期与服务端会话一致
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(service.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(handler.SessionCookieName, store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/rss.xml", api.RSSFeed)

	// 公开接口
	public := r.Group("/api")
	{
		public.GET("/posts", api.ListPublishedPosts)
		public.GET("/posts/:slug", api.GetPublishedPost)
		public.GET("/categories", api.ListCategories)
		public.GET("/categories/:id/posts", api.ListCategoryPosts)
		public.GET("/ads", api.ListEnabledAds)
		public.GET("/about", api.GetAbout)

		public.GET("/posts/id/:id/comments", api.ListComments)
		public.POST("/posts/id/:id/comments", api.CreateComment)
		public.DELETE("/comments/:id", api.DeleteComment)

		public.GET("/guestbook", api.ListGuestbook)
		public.POST("/guestbook", api.CreateGuestbookEntry)
		public.DELETE("/guestbook/:id", api.DeleteGuestbookEntry)
	}

	// 外部自动化接口，共享 Bearer token 鉴权
	automation := r.Group("/api/automation")
	automation.Use(api.TokenRequired())
	{
		automation.POST("/draft", api.AutomationDraft)
		automation.POST("/publish", api.AutomationPublish)
	}

	// 后台管理接口
	admin := r.Group("/admin/api")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(api.AuthRequired())
		{
			auth.GET("/me", api.Me)

			auth.GET("/posts", api.GetPosts)
			auth.GET("/posts/:id", api.GetPost)
			auth.POST("/posts", api.CreatePost)
			auth.PUT("/posts/:id", api.UpdatePost)
			auth.DELETE("/posts/:id", api.DeletePost)
			auth.PUT("/posts/:id/published", api.SetPostPublished)

			auth.GET("/categories", api.GetCategories)
			auth.POST("/categories", api.CreateCategory)
			auth.PUT("/categories/:id", api.UpdateCategory)
			auth.DELETE("/categories/:id", api.DeleteCategory)

			auth.DELETE("/comments/:id", api.AdminDeleteComment)
			auth.DELETE("/guestbook/:id", api.AdminDeleteGuestbookEntry)

			auth.GET("/ads", api.GetAds)
			auth.POST("/ads", api.CreateAd)
			auth.PUT("/ads/:id", api.UpdateAd)
			auth.DELETE("/ads/:id", api.DeleteAd)

			auth.PUT("/about", api.UpdateAbout)

			auth.GET("/settings", api.GetSettings)
			auth.PUT("/settings", api.UpdateSettings)

			auth.POST("/ai/draft", api.GenerateDraft)
			auth.POST("/ai/keywords", api.ExtractKeywords)
		}
	}

	return r
}
