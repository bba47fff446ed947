package controller

import (
	"course_admin_backend/internal/authoring"
	"course_admin_backend/internal/service"
	"course_admin_backend/internal/util"
	"course_admin_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 寻址类错误：下标越界、未知模块、非法枚举值等，均为请求错误
var badRequestErrors = []error{
	authoring.ErrModuleNotFound,
	authoring.ErrInvalidModuleKey,
	authoring.ErrIndexOutOfRange,
	authoring.ErrStepOutOfRange,
	authoring.ErrOptionOutOfRange,
	authoring.ErrInvalidAnswerKey,
	authoring.ErrInvalidLevel,
	authoring.ErrInvalidPriceMode,
	authoring.ErrFirstBlockRemoval,
	authoring.ErrHeadlineTooLong,
	authoring.ErrPriceNotEditable,
	authoring.ErrInvalidLessonKey,
	authoring.ErrInvalidQuizTarget,
	service.ErrUnsupportedImage,
	service.ErrImageTooLarge,
}

func respondError(ctx *gin.Context, err error) {
	var verrs authoring.ValidationErrors
	var persistErr *service.PersistenceError

	switch {
	case errors.As(err, &verrs):
		util.ErrorWithData(ctx, http.StatusUnprocessableEntity, "validation failed", verrs)
	case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrSubmitInProgress), errors.Is(err, util.ErrEditorClosed):
		util.Conflict(ctx, err.Error())
	case errors.As(err, &persistErr):
		logger.Log.Error("persistence failed", zap.String("op", persistErr.Op), zap.Error(persistErr.Err))
		util.Error(ctx, http.StatusInternalServerError, err.Error())
	case isBadRequest(err):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func isBadRequest(err error) bool {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
