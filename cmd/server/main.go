package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/config"
	"github.com/inklog/internal/db"
	"github.com/inklog/internal/handler"
	"github.com/inklog/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 默认管理员与默认分类在启动期一次性种子化，请求路径内不再隐式建档
	if err := db.EnsureUser(cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		log.Fatalf("failed to ensure root user: %v", err)
	}
	if err := db.EnsureCategory(cfg.DefaultCategory, ""); err != nil {
		log.Fatalf("failed to ensure default category: %v", err)
	}

	api := handler.NewAPI(db.DB, cfg.SiteBaseURL, cfg.AutomationToken)

	// 设置并运行 Gin 服务器
	r := router.Setup(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
