package service

import (
	"context"
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/model"
	"course_admin_backend/internal/repository"
	"course_admin_backend/internal/util"
	"course_admin_backend/pkg/logger"

	"go.uber.org/zap"
)

// CourseService 管理后台的课程列表、详情与删除
type CourseService struct {
	Repo       *repository.CourseRepository
	Categories *repository.CategoryRepository
}

func NewCourseService(repo *repository.CourseRepository, categories *repository.CategoryRepository) *CourseService {
	return &CourseService{Repo: repo, Categories: categories}
}

func (s *CourseService) List(ctx context.Context, page, limit int, category, keyword string) (*util.PageResponse, error) {
	courses, total, err := s.Repo.List(ctx, page, limit, category, keyword)
	if err != nil {
		return nil, err
	}
	list := make([]model.CourseSummary, 0, len(courses))
	for i := range courses {
		list = append(list, courses[i].Summary())
	}
	return &util.PageResponse{List: list, Total: total, Page: page, Limit: limit}, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (authoring.CourseRecord, error) {
	return s.Repo.Load(ctx, id)
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("course deleted", zap.String("course", id))
	return nil
}

func (s *CourseService) ListCategories(ctx context.Context) ([]authoring.Category, error) {
	return s.Categories.List(ctx)
}
