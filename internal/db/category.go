package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Category 定义了文章分类模型
type Category struct {
	gorm.Model
	Name        string `gorm:"unique;not null"`
	Description string
	Posts       []Post
}

// EnsureCategory 存在性检查：若给定名称非空且不存在同名分类，则创建之。
// 与 EnsureUser 一样只在启动种子阶段调用，请求路径内不做隐式建档。
func EnsureCategory(name, description string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing Category
	if err := DB.Where("name = ?", trimmed).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return DB.Create(&Category{Name: trimmed, Description: strings.TrimSpace(description)}).Error
	}

	return nil
}
