package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Report validation failures under the json field names the client
// submitted, not the Go struct field names.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// fieldErrors flattens binding failures into per-field messages so the
// client can surface them next to the form inputs.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["detail"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Enter a valid email address."
		case "max":
			out[field] = fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		case "min":
			out[field] = fmt.Sprintf("Ensure this value is at least %s.", fe.Param())
		case "gte":
			out[field] = fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
		default:
			out[field] = "This value is invalid."
		}
	}
	return out
}
