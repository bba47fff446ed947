package authoring

import (
	"fmt"
		"strings"
	"time"
)

// CourseRecord 入库的课程文档
type CourseRecord struct {
	CourseTitle    string                   `json:"courseTitle"`
	Instructor     string                   `json:"instructor"`
	Level          string                   `json:"level"`
	Language       string                   `json:"language"`
	Duration       string                   `json:"duration"`
	Categories     string                   `json:"categories"`
	Price          string                   `json:"price"`
	IsActive       bool                     `json:"isActive"`
	ProfileImg     string                   `json:"profileImg"`
	Thumbnail      string                   `json:"thumbnail"`
	KeyTopics      []string                 `json:"keyTopics"`
	LearningPoints []LearningPoint          `json:"learningPoints"`
	Description    []DescriptionBlockRecord `json:"description"`
	Modules        map[string]ModuleRecord  `json:"modules"`
	FinalExam      QuizRecord               `json:"finalExam"`
	ModuleSeq      int                      `json:"moduleSeq"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

type DescriptionBlockRecord struct {
	Headline string    `json:"headline"`
	Text     *string   `json:"text,omitempty"`
	Point    *[]string `json:"point,omitempty"`
}

type ModuleRecord struct {
	Title   string     `json:"title"`
	Lessons []Lesson   `json:"lessons"`
	Quiz    QuizRecord `json:"quiz"`
}

type QuizRecord struct {
	Questions []Question `json:"questions"`
}

func quizRecord(q QuizQuestionSet) QuizRecord {
	return QuizRecord{Questions: q.Questions()}
}

// FormatPrice 持久化的价格：免费课程为 "Free"，付费课程保留录入的数值文本
func FormatPrice(mode PriceMode, price string) string {
	if mode == PriceFree {
		return FreePrice
	}
	return strings.TrimSpace(price)
}

// Record 转换为入库结构；只包含已上传的图片 URL，不含暂存文件
func (d CourseDraft) Record() CourseRecord {
	m := d.meta
	rec := CourseRecord{
		CourseTitle:    m.Title,
		Instructor:     m.Instructor,
		Level:          string(m.Level),
		Language:       m.Language,
		Duration:       m.Duration,
		Categories:     m.Category,
		Price:          FormatPrice(m.PriceMode, m.Price),
		IsActive:       m.Active,
		ProfileImg:     d.profileImage.URL(),
		Thumbnail:      d.thumbnail.URL(),
		KeyTopics:      d.KeyTopics(),
		LearningPoints: d.learningPoints.Points(),
		Description:    make([]DescriptionBlockRecord, 0, d.description.Len()),
		Modules:        make(map[string]ModuleRecord, d.modules.Len()),
		FinalExam:      quizRecord(d.finalExam),
		ModuleSeq:      d.modules.seq,
	}
	for _, b := range d.description.Blocks() {
		br := DescriptionBlockRecord{Headline: b.Headline, Text: b.Text}
		if b.Points != nil {
			points := b.Points
			br.Point = &points
		}
		rec.Description = append(rec.Description, br)
	}
	for _, e := range d.modules.entries {
		rec.Modules[e.Key] = ModuleRecord{
			Title:   e.Module.Title,
			Lessons: e.Module.Lessons.Lessons(),
			Quiz:    quizRecord(e.Module.Quiz),
		}
	}
	return rec
}

// FromRecord 编辑已有课程时加载草稿，规范化方式与 NewDraft 一致
func FromRecord(id string, rec CourseRecord) (CourseDraft, error) {
	d := NewDraft().WithID(id)

	level, err := ParseLevel(rec.Level)
	if err != nil {
		return CourseDraft{}, fmt.Errorf("hydrate course %s: %w", id, err)
	}
	d.meta = Metadata{
		Title:      rec.CourseTitle,
		Instructor: rec.Instructor,
		Level:      level,
		Language:   rec.Language,
		Duration:   rec.Duration,
		Category:   rec.Categories,
		Active:     rec.IsActive,
	}
	if rec.Price == FreePrice {
		d.meta.PriceMode = PriceFree
		d.meta.Price = FreePrice
	} else {
		d.meta.PriceMode = PricePaid
		d.meta.Price = strings.TrimSpace(rec.Price)
	}

	d = d.SetKeyTopics(rec.KeyTopics)
	d.profileImage = NewImageRef(rec.ProfileImg)
	d.thumbnail = NewImageRef(rec.Thumbnail)
	d.learningPoints = NewLearningPointList(rec.LearningPoints...)

	blocks := make([]DescriptionBlock, 0, len(rec.Description))
	for _, br := range rec.Description {
		b := DescriptionBlock{Headline: br.Headline, Text: br.Text}
		if br.Point != nil {
			b.Points = append([]string{}, (*br.Point)...)
		}
		blocks = append(blocks, b)
	}
	d.description = descriptionFromBlocks(blocks)

	modules := NewModuleMap()
	for key, mr := range rec.Modules {
		n, err := ModuleKeySuffix(key)
		if err != nil {
			return CourseDraft{}, fmt.Errorf("hydrate course %s: module %q: %w", id, key, err)
		}
		mod := NewModule()
		mod.Title = mr.Title
		mod.Lessons = NewLessonList(mr.Lessons...)
		mod.Quiz = quizFromQuestions(normalizeAnswers(mr.Quiz.Questions), ModuleQuizLength)
		modules.put(key, n, mod)
	}
	modules.sortEntries()
	if rec.ModuleSeq > modules.seq {
		modules.seq = rec.ModuleSeq
	}
	d.modules = modules
	d.finalExam = quizFromQuestions(normalizeAnswers(rec.FinalExam.Questions), FinalExamLength)

	return d, nil
}

// normalizeAnswers A-D 以外的答案置空
func normalizeAnswers(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		if k, err := ParseAnswerKey(string(q.CorrectAnswer)); err == nil {
			q.CorrectAnswer = k
		} else {
			q.CorrectAnswer = AnswerNone
		}
		out[i] = q
	}
	return out
}
