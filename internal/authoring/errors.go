package authoring

import "errors"

var (
	ErrBudgetExceeded    = errors.New("description character budget exceeded")
	ErrHeadlineTooLong   = errors.New("headline exceeds 120 characters")
	ErrFirstBlockRemoval = errors.New("the first description block cannot be removed")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrStepOutOfRange    = errors.New("quiz step out of range")
	ErrOptionOutOfRange  = errors.New("option index out of range")
	ErrInvalidAnswerKey  = errors.New("correct answer must be one of A, B, C, D or empty")
	ErrModuleNotFound    = errors.New("module not found")
	ErrInvalidModuleKey  = errors.New("invalid module key")
	ErrInvalidLevel      = errors.New("invalid course level")
	ErrInvalidPriceMode  = errors.New("invalid price mode")
	ErrPriceNotEditable  = errors.New("price cannot be edited for a free course")
	ErrInvalidLessonKey  = errors.New("unknown lesson field")
	ErrInvalidQuizTarget = errors.New("invalid quiz target")
)
