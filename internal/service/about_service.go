package service

import (
	"errors"
	"strings"

	"github.com/inklog/internal/db"
	"gorm.io/gorm"
)

// ErrAboutTitleRequired 表示关于页标题为空。
var ErrAboutTitleRequired = errors.New("about title is required")

// AboutService 管理单行的关于页内容。
type AboutService struct {
	db *gorm.DB
}

// NewAboutService creates an AboutService instance.
func NewAboutService(gdb *gorm.DB) *AboutService {
	return &AboutService{db: gdb}
}

// Get 返回关于页内容，尚未编辑过时返回空白默认值而非错误。
func (s *AboutService) Get() (*db.AboutContent, error) {
	var about db.AboutContent
	if err := s.db.Order("id asc").First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &db.AboutContent{}, nil
		}
		return nil, err
	}
	return &about, nil
}

// Update 覆盖关于页内容，首次调用时创建该行。
func (s *AboutService) Update(title, content string) (*db.AboutContent, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrAboutTitleRequired
	}

	var about db.AboutContent
	err := s.db.Order("id asc").First(&about).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		about = db.AboutContent{Title: trimmed, Content: content}
		if err := s.db.Create(&about).Error; err != nil {
			return nil, err
		}
		return &about, nil
	}

	about.Title = trimmed
	about.Content = content
	if err := s.db.Save(&about).Error; err != nil {
		return nil, err
	}
	return &about, nil
}
