package controller

import (
	"course_admin_backend/pkg/logger"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"
)

const notBlankTag = "notblank"

var registerOnce sync.Once

// RegisterValidators 注册自定义 binding 规则，路由初始化前调用；注册失败直接退出
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := registerRules(v); err != nil {
			logger.Log.Fatal("Failed to register binding validators", zap.Error(err))
		}
	})
}

func registerRules(v *validator.Validate) error {
	// 错误信息中使用 json 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation(notBlankTag, validators.NotBlank); err != nil {
		return fmt.Errorf("register %s: %w", notBlankTag, err)
	}
	return nil
}
