package repository

import (
	"context"
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/model"
	"course_admin_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Load(ctx context.Context, id string) (authoring.CourseRecord, error) {
	course, err := r.FindByID(ctx, id)
	if err != nil {
		return authoring.CourseRecord{}, err
	}
	return course.Record(), nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Create(ctx context.Context, rec authoring.CourseRecord) (string, error) {
	course := model.NewCourse(rec)
	if err := r.DB.WithContext(ctx).Create(course).Error; err != nil {
		return "", err
	}
	return course.ID, nil
}

// Update 整体覆盖文档字段（后写覆盖先写）
func (r *CourseRepository) Update(ctx context.Context, id string, rec authoring.CourseRecord) error {
	course, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	course.Apply(rec)
	return r.DB.WithContext(ctx).Save(course).Error
}

func (r *CourseRepository) List(ctx context.Context, page, limit int, category, keyword string) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	db := r.DB.WithContext(ctx).Model(&model.Course{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if keyword != "" {
		searchTerm := "%" + keyword + "%"
		db = db.Where("title LIKE ? OR instructor LIKE ?", searchTerm, searchTerm)
	}

	// 获取总数
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("updated_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&courses).Error

	return courses, total, err
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	result := r.DB.WithContext(ctx).Delete(&model.Course{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrCourseNotFound
	}
	return nil
}
