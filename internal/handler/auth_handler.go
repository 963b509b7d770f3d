package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/db"
	"github.com/inklog/internal/service"
)

// SessionCookieName 为承载会话 token 的 Cookie 名称。
const SessionCookieName = "adminSession"

const sessionTokenKey = "token"
const currentUserKey = "__current_user"

// Login 处理管理员登录，成功时把不透明 token 写入 httpOnly Cookie。
func (a *API) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &input, "无效的登录请求") {
		return
	}

	token, err := a.auth.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "用户名或密码错误")
			return
		}
		log.Printf("login failed: %v", err)
		respondError(c, http.StatusInternalServerError, "登录失败")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionTokenKey, token)
	if err := session.Save(); err != nil {
		log.Printf("save session cookie failed: %v", err)
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "登录成功"})
}

// Logout 注销会话。幂等：没有会话时同样返回成功。
// 客户端 Cookie 先于服务端撤销清除，即使存储层失败也不会留下会话 Cookie。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	token, _ := session.Get(sessionTokenKey).(string)

	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	if err := session.Save(); err != nil {
		log.Printf("clear session cookie failed: %v", err)
	}

	if token != "" {
		if err := a.auth.Logout(token); err != nil {
			log.Printf("revoke session failed: %v", err)
			respondError(c, http.StatusInternalServerError, "注销失败")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "已注销"})
}

// Me 返回当前会话对应的管理员信息。
func (a *API) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "未登录或会话已过期")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

// AuthRequired 校验会话 Cookie 的认证中间件，保护所有后台变更操作。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(sessionTokenKey).(string)

		user, err := a.auth.Validate(token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				respondError(c, http.StatusUnauthorized, "未登录或会话已过期")
				c.Abort()
				return
			}
			log.Printf("validate session failed: %v", err)
			respondError(c, http.StatusInternalServerError, "会话校验失败")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// TokenRequired 校验外部自动化客户端的共享 Bearer token。
func (a *API) TokenRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := strings.TrimSpace(a.automationToken)
		if expected == "" {
			respondError(c, http.StatusUnauthorized, "自动化接口未启用")
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token != expected {
			respondError(c, http.StatusUnauthorized, "无效的自动化凭证")
			c.Abort()
			return
		}

		c.Next()
	}
}

func currentUser(c *gin.Context) *db.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*db.User)
	if !ok {
		return nil
	}
	return user
}
