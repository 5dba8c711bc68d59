package handler

import "github.com/go-playground/validator/v10"

// CustomValidator 將 go-playground/validator 包成 Echo 的 Validator
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate 呼叫底層的 validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
