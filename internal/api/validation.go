package api

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// RegisterValidations 给 gin 的 binding 校验器挂自定义规则。
// 路由组装前调用一次。
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pincodeRe.MatchString(fl.Field().String())
	})
}
