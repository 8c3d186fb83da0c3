package controllers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"shortly/internal/shortcode"
)

// maxPathCodeLength bounds codes accepted in paths. Longer codes cannot
// exist, so they are rejected before touching the store.
const maxPathCodeLength = 64

// RegisterValidators installs the custom binding tags and makes
// validation errors report json, form and uri names. It must run before
// the router serves requests.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	return v.RegisterValidation("shortcode", func(fl validator.FieldLevel) bool {
		return shortcode.ValidateCustom(fl.Field().String(), maxPathCodeLength) == nil
	})
}

// codeURI binds the short code path parameter.
type codeURI struct {
	ShortCode string `uri:"short_code" binding:"required,shortcode"`
}
