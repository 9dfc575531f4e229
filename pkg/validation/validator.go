package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phone10Re = regexp.MustCompile(`^[0-9]{10}$`)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the custom validations this service relies on.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// New returns a standalone validator carrying the same configuration as the
// binding one, for use outside request binding (post-merge re-validation).
func New() *validator.Validate {
	v := validator.New()
	configure(v)
	return v
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// phoneNumber must be exactly ten digits
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phone10Re.MatchString(fl.Field().String())
	})
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for the API error details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fieldPath(fe)] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

// fieldPath yields a dotted path for nested fields ("address.geo.lat")
// by stripping the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "phone10":
		return "must be exactly 10 digits"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "numeric":
		return "must be numeric"
	case "lowercase":
		return "must be in lowercase"
	case "latitude":
		return "must be a valid latitude"
	case "longitude":
		return "must be a valid longitude"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), param)
		}
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}
