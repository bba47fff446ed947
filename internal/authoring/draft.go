package authoring

import (
	"encoding/json"
	"strings"
)

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// ParseLevel 只接受三种难度或空字符串
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.TrimSpace(s)); l {
	case "", LevelBeginner, LevelIntermediate, LevelAdvanced:
		return l, nil
	}
	return "", ErrInvalidLevel
}

type PriceMode string

const (
	PriceFree PriceMode = "Free"
	PricePaid PriceMode = "Paid"

	// FreePrice 免费课程保存的价格值
	FreePrice = "Free"
)

func ParsePriceMode(s string) (PriceMode, error) {
	switch m := PriceMode(s); m {
	case PriceFree, PricePaid:
		return m, nil
	}
	return "", ErrInvalidPriceMode
}

// PendingAsset 已暂存到本地、尚未上传的图片
type PendingAsset struct {
	Path        string `json:"path"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// ImageRef 图片引用：已保存的 URL，加上可能存在的待上传暂存文件
type ImageRef struct {
	url     string
	pending *PendingAsset
}

func NewImageRef(url string) ImageRef { return ImageRef{url: url} }

// URL 最近一次保存的地址，用于预览
func (r ImageRef) URL() string { return r.url }

func (r ImageRef) Pending() (PendingAsset, bool) {
	if r.pending == nil {
		return PendingAsset{}, false
	}
	return *r.pending, true
}

// WithPending 暂存新文件，上传前仍保留当前 URL
func (r ImageRef) WithPending(p PendingAsset) ImageRef {
	return ImageRef{url: r.url, pending: &p}
}

// Committed 上传完成后替换为新 URL
func (r ImageRef) Committed(url string) ImageRef { return ImageRef{url: url} }

type imageRefJSON struct {
	URL     string        `json:"url"`
	Pending *PendingAsset `json:"pending,omitempty"`
}

func (r ImageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(imageRefJSON{URL: r.url, Pending: r.pending})
}

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	var raw imageRefJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ImageRef{url: raw.URL, pending: raw.Pending}
	return nil
}

// Metadata 课程的基本信息字段
type Metadata struct {
	Title      string    `json:"title"`
	Instructor string    `json:"instructor"`
	Level      Level     `json:"level"`
	Language   string    `json:"language"`
	Duration   string    `json:"duration"`
	Category   string    `json:"category"`
	PriceMode  PriceMode `json:"priceMode"`
	Price      string    `json:"price"`
	Active     bool      `json:"active"`
}

// CourseDraft 编辑会话中的课程草稿。所有操作返回新草稿，未修改的部分与原草稿共享
type CourseDraft struct {
	id             string
	meta           Metadata
	keyTopics      []string
	profileImage   ImageRef
	thumbnail      ImageRef
	description    DescriptionBlockList
	learningPoints LearningPointList
	modules        ModuleMap
	finalExam      QuizQuestionSet
}

// NewDraft 新建课程时的空草稿
func NewDraft() CourseDraft {
	return CourseDraft{
		meta:           Metadata{PriceMode: PriceFree, Price: FreePrice},
		keyTopics:      []string{},
		description:    NewDescriptionBlockList(),
		learningPoints: NewLearningPointList(),
		modules:        NewModuleMap(),
		finalExam:      NewQuizQuestionSet(FinalExamLength),
	}
}

func (d CourseDraft) ID() string                           { return d.id }
func (d CourseDraft) Metadata() Metadata                   { return d.meta }
func (d CourseDraft) ProfileImage() ImageRef               { return d.profileImage }
func (d CourseDraft) Thumbnail() ImageRef                  { return d.thumbnail }
func (d CourseDraft) Description() DescriptionBlockList    { return d.description }
func (d CourseDraft) LearningPoints() LearningPointList     { return d.learningPoints }
func (d CourseDraft) Modules() ModuleMap                   { return d.modules }
func (d CourseDraft) FinalExam() QuizQuestionSet           { return d.finalExam }
func (d CourseDraft) HasFinalExamContent() bool            { return d.finalExam.HasContent() }
func (d CourseDraft) HasModuleQuizContent(key string) bool { return d.modules.HasQuizContent(key) }

func (d CourseDraft) KeyTopics() []string {
	out := make([]string, len(d.keyTopics))
	copy(out, d.keyTopics)
	return out
}

func (d CourseDraft) WithID(id string) CourseDraft {
	d.id = id
	return d
}

func (d CourseDraft) SetTitle(v string) CourseDraft      { d.meta.Title = v; return d }
func (d CourseDraft) SetInstructor(v string) CourseDraft { d.meta.Instructor = v; return d }
func (d CourseDraft) SetLanguage(v string) CourseDraft   { d.meta.Language = v; return d }
func (d CourseDraft) SetDuration(v string) CourseDraft   { d.meta.Duration = v; return d }
func (d CourseDraft) SetCategory(v string) CourseDraft   { d.meta.Category = v; return d }
func (d CourseDraft) SetActive(v bool) CourseDraft       { d.meta.Active = v; return d }

func (d CourseDraft) SetLevel(v string) (CourseDraft, error) {
	l, err := ParseLevel(v)
	if err != nil {
		return d, err
	}
	d.meta.Level = l
	return d, nil
}

// SetPriceMode 切换免费/付费；免费时价格固定为 "Free"，付费时清空等待录入
func (d CourseDraft) SetPriceMode(v string) (CourseDraft, error) {
	m, err := ParsePriceMode(v)
	if err != nil {
		return d, err
	}
	d.meta.PriceMode = m
	if m == PriceFree {
		d.meta.Price = FreePrice
	} else {
		d.meta.Price = ""
	}
	return d, nil
}

func (d CourseDraft) SetPrice(v string) (CourseDraft, error) {
	if d.meta.PriceMode != PricePaid {
		return d, ErrPriceNotEditable
	}
	d.meta.Price = strings.TrimSpace(v)
	return d, nil
}

func (d CourseDraft) SetKeyTopics(topics []string) CourseDraft {
	next := make([]string, 0, len(topics))
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			next = append(next, t)
		}
	}
	d.keyTopics = next
	return d
}

func (d CourseDraft) AddKeyTopic(topic string) CourseDraft {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return d
	}
	next := make([]string, len(d.keyTopics), len(d.keyTopics)+1)
	copy(next, d.keyTopics)
	d.keyTopics = append(next, topic)
	return d
}

func (d CourseDraft) RemoveKeyTopic(i int) (CourseDraft, error) {
	if i < 0 || i >= len(d.keyTopics) {
		return d, ErrIndexOutOfRange
	}
	next := make([]string, 0, len(d.keyTopics)-1)
	next = append(next, d.keyTopics[:i]...)
	d.keyTopics = append(next, d.keyTopics[i+1:]...)
	return d, nil
}

func (d CourseDraft) SetProfileImage(r ImageRef) CourseDraft { d.profileImage = r; return d }
func (d CourseDraft) SetThumbnail(r ImageRef) CourseDraft    { d.thumbnail = r; return d }

// 描述

func (d CourseDraft) withDescription(l DescriptionBlockList, err error) (CourseDraft, error) {
	if err != nil {
		return d, err
	}
	d.description = l
	return d, nil
}

func (d CourseDraft) AddDescriptionBlock() (CourseDraft, error) {
	return d.withDescription(d.description.AddBlock())
}

func (d CourseDraft) RemoveDescriptionBlock(i int) (CourseDraft, error) {
	return d.withDescription(d.description.RemoveBlock(i))
}

func (d CourseDraft) SetBlockHeadline(i int, v string) (CourseDraft, error) {
	return d.withDescription(d.description.SetHeadline(i, v))
}

func (d CourseDraft) SetBlockText(i int, v string) (CourseDraft, error) {
	return d.withDescription(d.description.SetText(i, v))
}

func (d CourseDraft) SetBlockPoints(i int, input string) (CourseDraft, error) {
	return d.withDescription(d.description.SetPoints(i, input))
}

func (d CourseDraft) AddBlockText(i int) (CourseDraft, error) {
	return d.withDescription(d.description.AddText(i))
}

func (d CourseDraft) AddBlockPoints(i int) (CourseDraft, error) {
	return d.withDescription(d.description.AddPoints(i))
}

// 学习要点

func (d CourseDraft) AddLearningPoint(p LearningPoint) CourseDraft {
	d.learningPoints = d.learningPoints.Add(p)
	return d
}

func (d CourseDraft) SetLearningPoint(i int, p LearningPoint) (CourseDraft, error) {
	l, err := d.learningPoints.Set(i, p)
	if err != nil {
		return d, err
	}
	d.learningPoints = l
	return d, nil
}

func (d CourseDraft) RemoveLearningPoint(i int) (CourseDraft, error) {
	l, err := d.learningPoints.Remove(i)
	if err != nil {
		return d, err
	}
	d.learningPoints = l
	return d, nil
}

// 模块

func (d CourseDraft) withModules(m ModuleMap, err error) (CourseDraft, error) {
	if err != nil {
		return d, err
	}
	d.modules = m
	return d, nil
}

func (d CourseDraft) AddModule() (CourseDraft, string) {
	m, key := d.modules.AddModule()
	d.modules = m
	return d, key
}

func (d CourseDraft) RemoveModule(key string) (CourseDraft, error) {
	return d.withModules(d.modules.RemoveModule(key))
}

func (d CourseDraft) SetModuleTitle(key, v string) (CourseDraft, error) {
	return d.withModules(d.modules.SetTitle(key, v))
}

func (d CourseDraft) ToggleModuleExpanded(key string) (CourseDraft, error) {
	return d.withModules(d.modules.ToggleExpanded(key))
}

func (d CourseDraft) updateLessons(key string, fn func(LessonList) (LessonList, error)) (CourseDraft, error) {
	return d.withModules(d.modules.Update(key, func(mod Module) (Module, error) {
		lessons, err := fn(mod.Lessons)
		if err != nil {
			return mod, err
		}
		mod.Lessons = lessons
		return mod, nil
	}))
}

func (d CourseDraft) AddLesson(key string) (CourseDraft, error) {
	return d.updateLessons(key, func(l LessonList) (LessonList, error) {
		return l.AddLesson(), nil
	})
}

func (d CourseDraft) RemoveLesson(key string, i int) (CourseDraft, error) {
	return d.updateLessons(key, func(l LessonList) (LessonList, error) {
		return l.RemoveLesson(i)
	})
}

func (d CourseDraft) SetLessonField(key string, i int, field LessonField, v string) (CourseDraft, error) {
	return d.updateLessons(key, func(l LessonList) (LessonList, error) {
		return l.SetField(i, field, v)
	})
}

// 测验

func (d CourseDraft) setModuleQuiz(key string, q QuizQuestionSet) (CourseDraft, error) {
	return d.withModules(d.modules.Update(key, func(mod Module) (Module, error) {
		mod.Quiz = quizFromQuestions(q.questions, ModuleQuizLength)
		return mod, nil
	}))
}

func (d CourseDraft) setFinalExam(q QuizQuestionSet) CourseDraft {
	d.finalExam = quizFromQuestions(q.questions, FinalExamLength)
	return d
}

type draftJSON struct {
	ID             string               `json:"id,omitempty"`
	Metadata       Metadata             `json:"metadata"`
	KeyTopics      []string             `json:"keyTopics"`
	ProfileImage   ImageRef             `json:"profileImage"`
	Thumbnail      ImageRef             `json:"thumbnail"`
	Description    DescriptionBlockList `json:"description"`
	LearningPoints LearningPointList    `json:"learningPoints"`
	Modules        ModuleMap            `json:"modules"`
	FinalExam      QuizQuestionSet      `json:"finalExam"`
}

// MarshalJSON 会话存储用的完整草稿状态，包含暂存图片和展开状态；入库结构见 Record
func (d CourseDraft) MarshalJSON() ([]byte, error) {
	return json.Marshal(draftJSON{
		ID:             d.id,
		Metadata:       d.meta,
		KeyTopics:      d.KeyTopics(),
		ProfileImage:   d.profileImage,
		Thumbnail:      d.thumbnail,
		Description:    d.description,
		LearningPoints: d.learningPoints,
		Modules:        d.modules,
		FinalExam:      d.finalExam,
	})
}

func (d *CourseDraft) UnmarshalJSON(data []byte) error {
	raw := draftJSON{
		Description: NewDescriptionBlockList(),
		Modules:     NewModuleMap(),
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := NewDraft()
	out.id = raw.ID
	out.meta = raw.Metadata
	out = out.SetKeyTopics(raw.KeyTopics)
	out.profileImage = raw.ProfileImage
	out.thumbnail = raw.Thumbnail
	out.description = descriptionFromBlocks(raw.Description.blocks)
	out.learningPoints = NewLearningPointList(raw.LearningPoints.points...)
	out.modules = raw.Modules
	if out.modules.entries == nil {
		out.modules = NewModuleMap()
	}
	out.finalExam = quizFromQuestions(raw.FinalExam.questions, FinalExamLength)
	*d = out
	return nil
}
