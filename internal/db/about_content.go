package db

import "gorm.io/gorm"

// AboutContent represents the single editable About page record.
type AboutContent struct {
	gorm.Model
	Title   string `gorm:"not null"`
	Content string `gorm:"type:text"`
}

// TableName 指定自定义表名。
func (AboutContent) TableName() string {
	return "about_contents"
}
