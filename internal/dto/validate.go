package dto

import (
	"github.com/go-playground/validator/v10"
)

// validate 全局校验器实例
var validate = validator.New()

// Validate 校验请求结构体
func Validate(req interface{}) error {
	return validate.Struct(req)
}
