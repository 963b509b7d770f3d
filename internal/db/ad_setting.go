package db

import "gorm.io/gorm"

// 广告位枚举，渲染层按位置取用
const (
	AdPositionTop     = "top"
	AdPositionMiddle  = "middle"
	AdPositionBottom  = "bottom"
	AdPositionSidebar = "sidebar"
	AdPositionInline  = "inline"
)

// AdSetting 定义了广告位配置。Content 为自由格式的展示规则文本，本层不解释。
type AdSetting struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Position string `gorm:"size:20;not null;index"`
	Enabled  bool   `gorm:"default:true"`
	Content  string `gorm:"type:text"`
}

// TableName 指定自定义表名。
func (AdSetting) TableName() string {
	return "ad_settings"
}
