package db

import "gorm.io/gorm"

// Post 定义了文章模型。Slug 全局唯一，草稿（Published=false）不会出现在任何公开列表中。
type Post struct {
	gorm.Model
	Title      string `gorm:"not null"`
	Slug       string `gorm:"uniqueIndex;not null"`
	Content    string `gorm:"type:text"`
	Excerpt    string
	Published  bool `gorm:"default:false;index"`
	CategoryID *uint
	Category   *Category
	UserID     uint
	User       User
	Views      int64 `gorm:"default:0"`
	// 文章硬删除时由数据库层级联清理评论
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE"`
}
