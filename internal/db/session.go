package db

import (
	"time"

	"gorm.io/gorm"
)

// Session 保存管理员登录会话，Token 为不透明标识，过期判断在校验时惰性进行。
type Session struct {
	gorm.Model
	Token     string `gorm:"uniqueIndex;not null"`
	UserID    uint   `gorm:"not null"`
	User      User
	ExpiresAt time.Time `gorm:"not null"`
}

// Expired 判断会话是否已过期。
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
