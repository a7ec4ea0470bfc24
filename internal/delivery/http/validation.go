package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom validation tags to gin's binding engine.
// It is safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		// Report fields by their JSON names
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err = v.RegisterValidation("notblank", notBlank)
	})
	return err
}

// notBlank rejects strings that are empty after trimming whitespace
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validationMessage turns a binding error into a client-facing message
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// Report the first failing field only
		ve := validationErrors[0]
		field := ve.Field()
		switch ve.Tag() {
		case "required", "notblank":
			return fmt.Sprintf("%s is required", field)
		case "oneof":
			return fmt.Sprintf("%s must be one of: %s", field, ve.Param())
		}
		return fmt.Sprintf("validation error: %s - %s", field, ve.Tag())
	}
	return "Invalid request body"
}
