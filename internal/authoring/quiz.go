package authoring

import (
	"encoding/json"
	"strings"
)

const (
	OptionCount      = 4
	ModuleQuizLength = 5
	FinalExamLength  = 10
)

// AnswerKey 正确答案对应的选项位置（A-D）
type AnswerKey string

const (
	AnswerNone AnswerKey = ""
	AnswerA    AnswerKey = "A"
	AnswerB    AnswerKey = "B"
	AnswerC    AnswerKey = "C"
	AnswerD    AnswerKey = "D"
)

// ParseAnswerKey 接受 A-D（不区分大小写）或空字符串
func ParseAnswerKey(s string) (AnswerKey, error) {
	switch k := AnswerKey(strings.ToUpper(strings.TrimSpace(s))); k {
	case AnswerNone, AnswerA, AnswerB, AnswerC, AnswerD:
		return k, nil
	}
	return AnswerNone, ErrInvalidAnswerKey
}

// OptionIndex 答案对应的选项下标，空答案返回 -1
func (k AnswerKey) OptionIndex() int {
	switch k {
	case AnswerA:
		return 0
	case AnswerB:
		return 1
	case AnswerC:
		return 2
	case AnswerD:
		return 3
	}
	return -1
}

type Question struct {
	Prompt        string              `json:"question"`
	Options       [OptionCount]string `json:"options"`
	CorrectAnswer AnswerKey           `json:"correctAnswer"`
}

func (q Question) hasContent() bool {
	if strings.TrimSpace(q.Prompt) != "" || strings.TrimSpace(string(q.CorrectAnswer)) != "" {
		return true
	}
	for _, o := range q.Options {
		if strings.TrimSpace(o) != "" {
			return true
		}
	}
	return false
}

// QuizQuestionSet 定长题目序列，长度在创建时确定
type QuizQuestionSet struct {
	questions []Question
}

func NewQuizQuestionSet(length int) QuizQuestionSet {
	return QuizQuestionSet{questions: make([]Question, length)}
}

// quizFromQuestions 按 length 截断或补齐空题
func quizFromQuestions(qs []Question, length int) QuizQuestionSet {
	set := NewQuizQuestionSet(length)
	copy(set.questions, qs)
	return set
}

func (q QuizQuestionSet) Len() int { return len(q.questions) }

func (q QuizQuestionSet) Question(step int) (Question, error) {
	if step < 0 || step >= len(q.questions) {
		return Question{}, ErrStepOutOfRange
	}
	return q.questions[step], nil
}

// Questions 返回全部题目的副本
func (q QuizQuestionSet) Questions() []Question {
	out := make([]Question, len(q.questions))
	copy(out, q.questions)
	return out
}

// HasContent 是否有任一题目填写了题干、选项或答案
func (q QuizQuestionSet) HasContent() bool {
	for _, qq := range q.questions {
		if qq.hasContent() {
			return true
		}
	}
	return false
}

func (q QuizQuestionSet) replace(step int, fn func(*Question)) (QuizQuestionSet, error) {
	if step < 0 || step >= len(q.questions) {
		return q, ErrStepOutOfRange
	}
	next := q.Questions()
	fn(&next[step])
	return QuizQuestionSet{questions: next}, nil
}

func (q QuizQuestionSet) SetPrompt(step int, value string) (QuizQuestionSet, error) {
	return q.replace(step, func(qq *Question) { qq.Prompt = value })
}

func (q QuizQuestionSet) SetOption(step, option int, value string) (QuizQuestionSet, error) {
	if option < 0 || option >= OptionCount {
		return q, ErrOptionOutOfRange
	}
	return q.replace(step, func(qq *Question) { qq.Options[option] = value })
}

func (q QuizQuestionSet) SetCorrectAnswer(step int, key AnswerKey) (QuizQuestionSet, error) {
	switch key {
	case AnswerNone, AnswerA, AnswerB, AnswerC, AnswerD:
	default:
		return q, ErrInvalidAnswerKey
	}
	return q.replace(step, func(qq *Question) { qq.CorrectAnswer = key })
}

func (q QuizQuestionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Questions())
}

func (q *QuizQuestionSet) UnmarshalJSON(data []byte) error {
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return err
	}
	q.questions = qs
	return nil
}
