package db

import "gorm.io/gorm"

// Comment 定义了文章评论模型，支持一层回复。
// Password 仅保存 bcrypt 哈希，作为匿名作者删除自己评论的能力凭证。
type Comment struct {
	gorm.Model
	Content  string `gorm:"type:text;not null"`
	Name     string `gorm:"not null"`
	Password string `gorm:"not null"`
	PostID   uint   `gorm:"not null;index"`
	ParentID *uint  `gorm:"index"`
	// 回复通过 parent_id 自引用，不存在的父评论会被外键直接拒绝
	Replies []Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}
