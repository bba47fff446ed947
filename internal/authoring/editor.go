package authoring

import (
	"encoding/json"
	"math"
)

// QuizTarget 编辑器的目标测验：按 key 指定的模块测验，或期末考试
type QuizTarget struct {
	ModuleKey string `json:"moduleKey,omitempty"`
	FinalExam bool   `json:"finalExam,omitempty"`
}

func FinalExamTarget() QuizTarget            { return QuizTarget{FinalExam: true} }
func ModuleQuizTarget(key string) QuizTarget { return QuizTarget{ModuleKey: key} }

func (t QuizTarget) valid() bool {
	return t.FinalExam != (t.ModuleKey != "")
}

// QuizEditor 逐题编辑测验，修改只写入缓冲区，Save 时才提交到草稿
type QuizEditor struct {
	target QuizTarget
	buffer QuizQuestionSet
	step   int
}

// OpenQuizEditor 复制已提交的测验作为缓冲区，从第 0 题开始
func OpenQuizEditor(d CourseDraft, target QuizTarget) (QuizEditor, error) {
	if !target.valid() {
		return QuizEditor{}, ErrInvalidQuizTarget
	}
	var src QuizQuestionSet
	if target.FinalExam {
		src = d.finalExam
	} else {
		mod, ok := d.modules.Get(target.ModuleKey)
		if !ok {
			return QuizEditor{}, ErrModuleNotFound
		}
		src = mod.Quiz
	}
	return QuizEditor{target: target, buffer: quizFromQuestions(src.questions, src.Len())}, nil
}

func (e QuizEditor) Target() QuizTarget      { return e.target }
func (e QuizEditor) Buffer() QuizQuestionSet { return e.buffer }
func (e QuizEditor) Step() int               { return e.step }
func (e QuizEditor) Len() int                { return e.buffer.Len() }

func (e QuizEditor) Current() Question {
	q, _ := e.buffer.Question(e.step)
	return q
}

func (e QuizEditor) Next() QuizEditor {
	if e.step < e.buffer.Len()-1 {
		e.step++
	}
	return e
}

func (e QuizEditor) Previous() QuizEditor {
	if e.step > 0 {
		e.step--
	}
	return e
}

// ProgressPercent 当前进度百分比（取整）
func (e QuizEditor) ProgressPercent() int {
	if e.buffer.Len() == 0 {
		return 0
	}
	return int(math.Round(float64(e.step+1) / float64(e.buffer.Len()) * 100))
}

func (e QuizEditor) withBuffer(q QuizQuestionSet, err error) (QuizEditor, error) {
	if err != nil {
		return e, err
	}
	e.buffer = q
	return e, nil
}

func (e QuizEditor) SetPrompt(step int, v string) (QuizEditor, error) {
	return e.withBuffer(e.buffer.SetPrompt(step, v))
}

func (e QuizEditor) SetOption(step, option int, v string) (QuizEditor, error) {
	return e.withBuffer(e.buffer.SetOption(step, option, v))
}

func (e QuizEditor) SetCorrectAnswer(step int, key AnswerKey) (QuizEditor, error) {
	return e.withBuffer(e.buffer.SetCorrectAnswer(step, key))
}

// Save 将缓冲区写回草稿，之后编辑器关闭
func (e QuizEditor) Save(d CourseDraft) (CourseDraft, error) {
	if !e.target.valid() {
		return d, ErrInvalidQuizTarget
	}
	if e.target.FinalExam {
		return d.setFinalExam(e.buffer), nil
	}
	return d.setModuleQuiz(e.target.ModuleKey, e.buffer)
}

type quizEditorJSON struct {
	Target QuizTarget      `json:"target"`
	Buffer QuizQuestionSet `json:"buffer"`
	Step   int             `json:"step"`
}

func (e QuizEditor) MarshalJSON() ([]byte, error) {
	return json.Marshal(quizEditorJSON{Target: e.target, Buffer: e.buffer, Step: e.step})
}

func (e *QuizEditor) UnmarshalJSON(data []byte) error {
	var raw quizEditorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.target = raw.Target
	e.buffer = raw.Buffer
	e.step = raw.Step
	if e.step < 0 || e.step >= e.buffer.Len() {
		e.step = 0
	}
	return nil
}
