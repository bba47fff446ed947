package model

import (
	"course_admin_backend/internal/authoring"

	"gorm.io/datatypes"
)

// Course 已发布的课程文档，嵌套结构以 JSON 列存储
// swagger:model
type Course struct {
	UUIDBase
	Title          string                                                 `gorm:"size:255;not null;index" json:"courseTitle"`
	Instructor     string                                                 `gorm:"size:255" json:"instructor"`
	Level          string                                                 `gorm:"size:32" json:"level"`
	Language       string                                                 `gorm:"size:64" json:"language"`
	Duration       string                                                 `gorm:"size:64" json:"duration"`
	Category       string                                                 `gorm:"size:100;index" json:"categories"`
	Price          string                                                 `gorm:"size:32" json:"price"`
	IsActive       bool                                                   `gorm:"default:false;index" json:"isActive"`
	ProfileImg     string                                                 `gorm:"size:512" json:"profileImg"`
	Thumbnail      string                                                 `gorm:"size:512" json:"thumbnail"`
	KeyTopics      datatypes.JSONType[[]string]                           `json:"keyTopics"`
	LearningPoints datatypes.JSONType[[]authoring.LearningPoint]          `json:"learningPoints"`
	Description    datatypes.JSONType[[]authoring.DescriptionBlockRecord] `json:"description"`
	Modules        datatypes.JSONType[map[string]authoring.ModuleRecord]  `json:"modules"`
	FinalExam      datatypes.JSONType[authoring.QuizRecord]               `json:"finalExam"`
	ModuleSeq      int                                                    `gorm:"not null;default:0" json:"moduleSeq"`
}

// CourseSummary 课程列表项
type CourseSummary struct {
	ID         string `json:"id"`
	Title      string `json:"courseTitle"`
	Instructor string `json:"instructor"`
	Category   string `json:"categories"`
	Price      string `json:"price"`
	IsActive   bool   `json:"isActive"`
	Thumbnail  string `json:"thumbnail"`
	UpdatedAt  string `json:"updatedAt"`
}

// NewCourse 由课程文档创建数据行
func NewCourse(rec authoring.CourseRecord) *Course {
	c := &Course{}
	c.Apply(rec)
	return c
}

// Apply 用课程文档覆盖全部字段
func (c *Course) Apply(rec authoring.CourseRecord) {
	c.Title = rec.CourseTitle
	c.Instructor = rec.Instructor
	c.Level = rec.Level
	c.Language = rec.Language
	c.Duration = rec.Duration
	c.Category = rec.Categories
	c.Price = rec.Price
	c.IsActive = rec.IsActive
	c.ProfileImg = rec.ProfileImg
	c.Thumbnail = rec.Thumbnail
	c.KeyTopics = datatypes.NewJSONType(rec.KeyTopics)
	c.LearningPoints = datatypes.NewJSONType(rec.LearningPoints)
	c.Description = datatypes.NewJSONType(rec.Description)
	c.Modules = datatypes.NewJSONType(rec.Modules)
	c.FinalExam = datatypes.NewJSONType(rec.FinalExam)
	c.ModuleSeq = rec.ModuleSeq
}

func (c *Course) Record() authoring.CourseRecord {
	return authoring.CourseRecord{
		CourseTitle:    c.Title,
		Instructor:     c.Instructor,
		Level:          c.Level,
		Language:       c.Language,
		Duration:       c.Duration,
		Categories:     c.Category,
		Price:          c.Price,
		IsActive:       c.IsActive,
		ProfileImg:     c.ProfileImg,
		Thumbnail:      c.Thumbnail,
		KeyTopics:      c.KeyTopics.Data(),
		LearningPoints: c.LearningPoints.Data(),
		Description:    c.Description.Data(),
		Modules:        c.Modules.Data(),
		FinalExam:      c.FinalExam.Data(),
		ModuleSeq:      c.ModuleSeq,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (c *Course) Summary() CourseSummary {
	return CourseSummary{
		ID:         c.ID,
		Title:      c.Title,
		Instructor: c.Instructor,
		Category:   c.Category,
		Price:      c.Price,
		IsActive:   c.IsActive,
		Thumbnail:  c.Thumbnail,
		UpdatedAt:  c.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
