package db

import "gorm.io/gorm"

// GuestbookEntry 定义了留言板条目模型，口令同评论一样仅保存 bcrypt 哈希。
type GuestbookEntry struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Content  string `gorm:"type:text;not null"`
	Password string `gorm:"not null"`
}

// TableName 指定自定义表名。
func (GuestbookEntry) TableName() string {
	return "guestbook_entries"
}
