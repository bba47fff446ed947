package model

import "course_admin_backend/internal/authoring"

// Category 课程分类，Value 写入课程的 categories 字段
// swagger:model
type Category struct {
	BaseModel
	Label   string `gorm:"size:64;not null" json:"label"`
	Value   string `gorm:"size:64;uniqueIndex;not null" json:"value"`
	Sort    int    `gorm:"default:0" json:"sort"` // 排序
	Enabled bool   `gorm:"default:true" json:"enabled"`
}

func (c Category) Option() authoring.Category {
	return authoring.Category{Label: c.Label, Value: c.Value}
}
