package utils

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/resource-dashboard/internal/models"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the custom binding rules used by request payloads.
// Only the first call registers; later calls return its result.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected binding validator engine")
			return
		}
		registerErr = v.RegisterValidation("projecttype", func(fl validator.FieldLevel) bool {
			return models.ProjectType(fl.Field().String()).Valid()
		})
	})
	return registerErr
}

// ValidationDetails flattens binding errors into a field -> failed rule map.
// It returns nil when err is not a validation error.
func ValidationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		details[ve.Field()] = ve.Tag()
	}
	return details
}
