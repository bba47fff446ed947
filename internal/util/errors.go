package util

import "errors"

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrSessionNotFound  = errors.New("editing session not found")
	ErrSubmitInProgress = errors.New("a submit is already in progress for this session")
	ErrEditorClosed     = errors.New("no quiz editor is open")
	ErrPermissionDenied = errors.New("permission denied")
)
