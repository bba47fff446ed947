package authoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Category 可选的课程分类
type Category struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldError 单个字段的校验错误
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// ValidationErrors 草稿的全部校验错误
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

const (
	FieldTitle      = "title"
	FieldInstructor = "instructor"
	FieldLevel      = "level"
	FieldLanguage   = "language"
	FieldCategory   = "category"
	FieldCategories = "categories"
	FieldPrice      = "price"
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Validate 提交前校验草稿，执行全部规则并一次返回所有错误
func Validate(d CourseDraft, categories []Category) ValidationErrors {
	var errs ValidationErrors
	add := func(field, reason string) {
		errs = append(errs, FieldError{Field: field, Reason: reason})
	}

	m := d.meta
	if blank(m.Title) {
		add(FieldTitle, "course title is required")
	}
	if blank(m.Instructor) {
		add(FieldInstructor, "instructor is required")
	}
	if blank(string(m.Level)) {
		add(FieldLevel, "level is required")
	}
	if blank(m.Language) {
		add(FieldLanguage, "language is required")
	}
	if blank(m.Category) {
		add(FieldCategory, "category is required")
	}
	if len(categories) == 0 {
		add(FieldCategories, "no categories configured")
	}

	for i, b := range d.description.blocks {
		prefix := fmt.Sprintf("description[%d]", i)
		if blank(b.Headline) {
			add(prefix+".headline", "headline is required")
		}
		if b.Text != nil && blank(*b.Text) {
			add(prefix+".text", "text must not be blank")
		}
		if b.Points != nil && !anyNonBlank(b.Points) {
			add(prefix+".point", "at least one bullet point is required")
		}
	}

	if m.PriceMode == PricePaid && !positivePrice(m.Price) {
		add(FieldPrice, "price must be a number greater than 0")
	}

	for _, e := range d.modules.entries {
		validateAnswers(&errs, "modules."+e.Key+".quiz", e.Module.Quiz)
	}
	validateAnswers(&errs, "finalExam", d.finalExam)

	return errs
}

func anyNonBlank(values []string) bool {
	for _, v := range values {
		if !blank(v) {
			return true
		}
	}
	return false
}

func positivePrice(s string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v > 0
}

// validateAnswers 已选答案必须对应已填写的选项
func validateAnswers(errs *ValidationErrors, prefix string, q QuizQuestionSet) {
	for i, qq := range q.questions {
		idx := qq.CorrectAnswer.OptionIndex()
		if idx >= 0 && blank(qq.Options[idx]) {
			*errs = append(*errs, FieldError{
				Field:  fmt.Sprintf("%s[%d].correctAnswer", prefix, i),
				Reason: fmt.Sprintf("answer %s refers to an empty option", qq.CorrectAnswer),
			})
		}
	}
}
