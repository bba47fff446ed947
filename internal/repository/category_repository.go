package repository

import (
	"context"
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) FindEnabled(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.WithContext(ctx).
		Where("enabled = ?", true).
		Order("sort asc, id asc").
		Find(&categories).Error
	return categories, err
}

// List 返回可选分类，供校验与下拉框使用
func (r *CategoryRepository) List(ctx context.Context) ([]authoring.Category, error) {
	rows, err := r.FindEnabled(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]authoring.Category, 0, len(rows))
	for _, c := range rows {
		out = append(out, c.Option())
	}
	return out, nil
}
