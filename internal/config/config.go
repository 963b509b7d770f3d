package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	AutomationToken   string
	GinMode           string
	SuperRootUserName string
	SuperRootPassword string
	DefaultCategory   string
	SiteBaseURL       string
}

// Load 通过 viper 读取环境变量（可选地叠加 inklog.yaml），并为缺失项提供安全的默认值。
func Load() AppConfig {
	v := viper.New()
	v.SetConfigName("inklog")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("database_path", "inklog.db")
	v.SetDefault("session_secret", "inklog-dev-secret")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("default_category", "未分类")
	v.SetDefault("site_base_url", "https://blog.inklog.dev")

	// 配置文件缺失不算错误，环境变量足以运行
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("config file ignored: %v\n", err)
		}
	}

	port := strings.TrimSpace(v.GetString("port"))
	listenAddr := strings.TrimSpace(v.GetString("listen_addr"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      strings.TrimSpace(v.GetString("database_path")),
		SessionSecret:     strings.TrimSpace(v.GetString("session_secret")),
		AutomationToken:   strings.TrimSpace(v.GetString("automation_token")),
		GinMode:           strings.TrimSpace(v.GetString("gin_mode")),
		SuperRootUserName: strings.TrimSpace(v.GetString("super_root_user_name")),
		SuperRootPassword: strings.TrimSpace(v.GetString("super_root_password")),
		DefaultCategory:   strings.TrimSpace(v.GetString("default_category")),
		SiteBaseURL:       strings.TrimSpace(v.GetString("site_base_url")),
	}
}
