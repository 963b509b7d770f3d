package handler

import (
	"github.com/inklog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db              *gorm.DB
	auth            *service.AuthService
	posts           *service.PostService
	comments        *service.CommentService
	categories      *service.CategoryService
	ads             *service.AdService
	about           *service.AboutService
	guestbook       *service.GuestbookService
	system          *service.SystemSettingService
	feed            *service.FeedService
	drafts          service.DraftGenerator
	siteBaseURL     string
	automationToken string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, siteBaseURL, automationToken string) *API {
	systemService := service.NewSystemSettingService(gdb)

	return &API{
		db:              gdb,
		auth:            service.NewAuthService(gdb),
		posts:           service.NewPostService(gdb),
		comments:        service.NewCommentService(gdb),
		categories:      service.NewCategoryService(gdb),
		ads:             service.NewAdService(gdb),
		about:           service.NewAboutService(gdb),
		guestbook:       service.NewGuestbookService(gdb),
		system:          systemService,
		feed:            service.NewFeedService(gdb, systemService),
		drafts:          service.NewAIDraftService(systemService),
		siteBaseURL:     siteBaseURL,
		automationToken: automationToken,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// SetDraftGenerator 覆盖 AI 草稿实现，测试时注入桩对象。
func (a *API) SetDraftGenerator(generator service.DraftGenerator) {
	if generator != nil {
		a.drafts = generator
	}
}
