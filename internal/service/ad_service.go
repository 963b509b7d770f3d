package service

import (
	"errors"
	"strings"

	"github.com/inklog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrAdNotFound        = errors.New("ad setting not found")
	ErrAdNameRequired    = errors.New("ad name is required")
	ErrInvalidAdPosition = errors.New("invalid ad position")
)

var adPositions = []string{
	db.AdPositionTop,
	db.AdPositionMiddle,
	db.AdPositionBottom,
	db.AdPositionSidebar,
	db.AdPositionInline,
}

// AdService wraps ad setting related operations.
type AdService struct {
	db *gorm.DB
}

// AdInput represents fields accepted when creating or updating an ad setting.
type AdInput struct {
	Name     string
	Position string
	Enabled  bool
	Content  string
}

// NewAdService creates an AdService instance.
func NewAdService(gdb *gorm.DB) *AdService {
	return &AdService{db: gdb}
}

func normalizeAdPosition(position string) string {
	lowered := strings.ToLower(strings.TrimSpace(position))
	for _, candidate := range adPositions {
		if candidate == lowered {
			return candidate
		}
	}
	return ""
}

// List returns all ad settings ordered by position then name.
func (s *AdService) List() ([]db.AdSetting, error) {
	var ads []db.AdSetting
	if err := s.db.Order("position asc").Order("name asc").Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

// ListEnabled 返回启用中的广告位，position 为空时不限定位置。渲染层公开读取。
func (s *AdService) ListEnabled(position string) ([]db.AdSetting, error) {
	query := s.db.Where("enabled = ?", true)
	if trimmed := strings.TrimSpace(position); trimmed != "" {
		normalized := normalizeAdPosition(trimmed)
		if normalized == "" {
			return nil, ErrInvalidAdPosition
		}
		query = query.Where("position = ?", normalized)
	}

	var ads []db.AdSetting
	if err := query.Order("position asc").Order("name asc").Find(&ads).Error; err != nil {
		return nil, err
	}
	return ads, nil
}

// Create 新建广告位配置。
func (s *AdService) Create(input AdInput) (*db.AdSetting, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrAdNameRequired
	}
	position := normalizeAdPosition(input.Position)
	if position == "" {
		return nil, ErrInvalidAdPosition
	}

	ad := db.AdSetting{
		Name:     name,
		Position: position,
		Enabled:  input.Enabled,
		Content:  input.Content,
	}
	if err := s.db.Create(&ad).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

// Update 更新广告位配置。
func (s *AdService) Update(id uint, input AdInput) (*db.AdSetting, error) {
	var ad db.AdSetting
	if err := s.db.First(&ad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrAdNameRequired
	}
	position := normalizeAdPosition(input.Position)
	if position == "" {
		return nil, ErrInvalidAdPosition
	}

	ad.Name = name
	ad.Position = position
	ad.Enabled = input.Enabled
	ad.Content = input.Content
	if err := s.db.Save(&ad).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

// Delete 删除广告位配置。
func (s *AdService) Delete(id uint) error {
	result := s.db.Unscoped().Delete(&db.AdSetting{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdNotFound
	}
	return nil
}
