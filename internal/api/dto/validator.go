package dto

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"store_rating_v1/internal/model"
)

// PasswordSymbols at least one of these is required in a password
const PasswordSymbols = "!@#$%^&*"

// Password length bounds
const (
	PasswordMinLen = 8
	PasswordMaxLen = 16
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator. Safe to call repeatedly.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("password", validatePassword)
		_ = v.RegisterValidation("role", validateRole)
	})
}

// ValidPassword enforces 8-16 chars, one uppercase letter and one symbol from PasswordSymbols.
func ValidPassword(p string) bool {
	n := len([]rune(p))
	if n < PasswordMinLen || n > PasswordMaxLen {
		return false
	}
	var upper, symbol bool
	for _, r := range p {
		if unicode.IsUpper(r) {
			upper = true
		}
		if strings.ContainsRune(PasswordSymbols, r) {
			symbol = true
		}
	}
	return upper && symbol
}

func validatePassword(fl validator.FieldLevel) bool {
	return ValidPassword(fl.Field().String())
}

func validateRole(fl validator.FieldLevel) bool {
	_, ok := model.ParseRole(fl.Field().String())
	return ok
}

// jsonFieldName reports fields by their json (or form) name.
func jsonFieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
