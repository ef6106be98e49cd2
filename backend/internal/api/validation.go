package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxUserIDLength = 256

var registerOnce sync.Once

// registerValidators installs the custom binding tags on gin's validator
// engine. Safe to call more than once.
func registerValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		// Use JSON tag names in error messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		err = v.RegisterValidation("userid", func(fl validator.FieldLevel) bool {
			return validUserID(fl.Field().String())
		})
	})
	return err
}

// validUserID accepts any opaque identifier that is not blank, not
// oversized and free of control characters.
func validUserID(id string) bool {
	if strings.TrimSpace(id) == "" || len(id) > maxUserIDLength {
		return false
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// bindingMessage turns a ShouldBindJSON error into caller-facing text.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "userid":
		return fe.Field() + " is not a valid user id"
	}
	return fe.Field() + " is invalid"
}
