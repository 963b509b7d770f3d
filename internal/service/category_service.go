package service

import (
	"errors"
	"strings"

	"github.com/inklog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryExists       = errors.New("category already exists")
	ErrCategoryInUse        = errors.New("category is associated with posts")
	ErrCategoryNameRequired = errors.New("category name is required")
)

// CategoryService wraps category related operations.
type CategoryService struct {
	db *gorm.DB
}

// CategoryUsage 描述分类下已发布文章的数量，公开浏览使用。
type CategoryUsage struct {
	ID          uint
	Name        string
	Description string
	Count       int64
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// List returns categories ordered by name.
func (s *CategoryService) List() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("name asc").Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// PublishedUsage 返回各分类下已发布文章的统计。
func (s *CategoryService) PublishedUsage() ([]CategoryUsage, error) {
	var rows []CategoryUsage
	if err := s.db.Table("categories").
		Select("categories.id, categories.name, categories.description, COUNT(posts.id) AS count").
		Joins("LEFT JOIN posts ON posts.category_id = categories.id AND posts.published = ? AND posts.deleted_at IS NULL", true).
		Where("categories.deleted_at IS NULL").
		Group("categories.id, categories.name, categories.description").
		Order("categories.name asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create 新建分类，名称唯一。
func (s *CategoryService) Create(name, description string) (*db.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrCategoryNameRequired
	}

	var existing db.Category
	err := s.db.Where("name = ?", trimmed).First(&existing).Error
	if err == nil {
		return nil, ErrCategoryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := db.Category{Name: trimmed, Description: strings.TrimSpace(description)}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 重命名分类或修改描述。
func (s *CategoryService) Update(id uint, name, description string) (*db.Category, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrCategoryNameRequired
	}

	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	var duplicate db.Category
	err := s.db.Where("name = ? AND id <> ?", trimmed, id).First(&duplicate).Error
	if err == nil {
		return nil, ErrCategoryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category.Name = trimmed
	category.Description = strings.TrimSpace(description)
	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete 删除分类，仍被文章引用时拒绝。
func (s *CategoryService) Delete(id uint) error {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	var count int64
	if err := s.db.Model(&db.Post{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.db.Unscoped().Delete(&category).Error
}
