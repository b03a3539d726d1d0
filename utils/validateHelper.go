package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the shared validator instance over any tagged struct.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
