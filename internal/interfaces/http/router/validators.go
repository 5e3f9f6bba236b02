package router

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/lojamae/backend/internal/domain/identity"
)

// registerValidators adds custom binding validators to gin's validator engine.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// role accepts any of the known roles, case-insensitively.
	v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return identity.Role(strings.ToUpper(fl.Field().String())).IsValid()
	})
}
