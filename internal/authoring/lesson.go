package authoring

import "encoding/json"

type Lesson struct {
	Title       string `json:"title"`
	VideoURL    string `json:"videoUrl"`
	Description string `json:"description"`
}

func (l Lesson) isEmpty() bool {
	return l == Lesson{}
}

// LessonField 课时可编辑的字段
type LessonField string

const (
	LessonTitle       LessonField = "title"
	LessonVideoURL    LessonField = "videoUrl"
	LessonDescription LessonField = "description"
)

func ParseLessonField(s string) (LessonField, error) {
	switch f := LessonField(s); f {
	case LessonTitle, LessonVideoURL, LessonDescription:
		return f, nil
	}
	return "", ErrInvalidLessonKey
}

type LessonList struct {
	lessons []Lesson
}

func NewLessonList(lessons ...Lesson) LessonList {
	out := make([]Lesson, len(lessons))
	copy(out, lessons)
	return LessonList{lessons: out}
}

func (l LessonList) Len() int { return len(l.lessons) }

func (l LessonList) Lessons() []Lesson {
	out := make([]Lesson, len(l.lessons))
	copy(out, l.lessons)
	return out
}

func (l LessonList) At(i int) (Lesson, error) {
	if i < 0 || i >= len(l.lessons) {
		return Lesson{}, ErrIndexOutOfRange
	}
	return l.lessons[i], nil
}

// AddLesson 追加空课时；最后一个课时已为空时不重复追加
func (l LessonList) AddLesson() LessonList {
	if n := len(l.lessons); n > 0 && l.lessons[n-1].isEmpty() {
		return l
	}
	next := make([]Lesson, len(l.lessons), len(l.lessons)+1)
	copy(next, l.lessons)
	return LessonList{lessons: append(next, Lesson{})}
}

func (l LessonList) RemoveLesson(i int) (LessonList, error) {
	if i < 0 || i >= len(l.lessons) {
		return l, ErrIndexOutOfRange
	}
	next := make([]Lesson, 0, len(l.lessons)-1)
	next = append(next, l.lessons[:i]...)
	next = append(next, l.lessons[i+1:]...)
	return LessonList{lessons: next}, nil
}

// SetField 设置第 i 个课时的字段，不足 i 个时先补齐空课时
func (l LessonList) SetField(i int, field LessonField, value string) (LessonList, error) {
	if i < 0 {
		return l, ErrIndexOutOfRange
	}
	if _, err := ParseLessonField(string(field)); err != nil {
		return l, err
	}
	size := len(l.lessons)
	if i >= size {
		size = i + 1
	}
	next := make([]Lesson, size)
	copy(next, l.lessons)
	switch field {
	case LessonTitle:
		next[i].Title = value
	case LessonVideoURL:
		next[i].VideoURL = value
	case LessonDescription:
		next[i].Description = value
	}
	return LessonList{lessons: next}, nil
}

func (l LessonList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Lessons())
}

func (l *LessonList) UnmarshalJSON(data []byte) error {
	var lessons []Lesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return err
	}
	*l = NewLessonList(lessons...)
	return nil
}
