package validators

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,19}$`)
	indexSuffix  = regexp.MustCompile(`\[[^\]]*\]$`)

	setupOnce sync.Once
)

// Setup registers the custom tags on gin's binding engine and makes
// validation errors report JSON field names. Safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("phone", phone)
		_ = v.RegisterValidation("notblank", notBlank)
	})
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func phone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Code turns the first failed binding rule into an error code:
// "<field>_required" for a missing value and "invalid_<field>" for the
// rest. ok is false when err is not a validation failure, e.g. bad JSON.
func Code(err error) (code string, ok bool) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "", false
	}

	fe := errs[0]
	field := snake(indexSuffix.ReplaceAllString(fe.Field(), ""))

	switch {
	case fe.Tag() == "required", fe.Tag() == "notblank":
		return field + "_required", true
	case fe.Tag() == "min" && fe.Kind() == reflect.Slice:
		// an empty list is missing rather than malformed
		return field + "_required", true
	}
	return "invalid_" + field, true
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
