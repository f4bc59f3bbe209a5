package apis

import (
	"encoding/json"
	goerrors "errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/supakorn-kn/book-catalog/errors"
)

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

const errBodyNotObject = "request body must be a JSON object"

var registerTagNameOnce sync.Once

// useJSONFieldNames makes validator report fields by their json name, e.g. publication_year.
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// BindJSON decodes an object body into obj. Keys must match a json tag exactly; other keys are
// dropped before decoding so that e.g. "TITLE" does not fill title.
func BindJSON(ctx *gin.Context, obj any) error {

	var body []byte
	if ctx.Request.Body != nil {

		read, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			return toValidationError(err)
		}
		body = read
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return errors.ValidationError.New(errBodyNotObject)
	}

	known := jsonFieldNames(reflect.TypeOf(obj))
	for key := range fields {
		if !known[key] {
			delete(fields, key)
		}
	}

	filtered, err := json.Marshal(fields)
	if err != nil {
		return toValidationError(err)
	}

	if err := binding.JSON.BindBody(filtered, obj); err != nil {
		return toValidationError(err)
	}

	return nil
}

func jsonFieldNames(t reflect.Type) map[string]bool {

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names[name] = true
		}
	}

	return names
}

func BindQuery(ctx *gin.Context, obj any) error {

	if err := ctx.ShouldBindQuery(obj); err != nil {
		return toValidationError(err)
	}

	return nil
}

func BindURI(ctx *gin.Context, obj any) error {

	if err := ctx.ShouldBindUri(obj); err != nil {
		return toValidationError(err)
	}

	return nil
}

func toValidationError(err error) errors.BaseError {

	var fieldErrors validator.ValidationErrors
	if goerrors.As(err, &fieldErrors) {

		details := make([]FieldError, 0, len(fieldErrors))
		fields := make([]string, 0, len(fieldErrors))
		for _, fieldError := range fieldErrors {
			details = append(details, FieldError{Field: fieldError.Field(), Rule: fieldError.Tag()})
			fields = append(fields, fieldError.Field())
		}

		return errors.ValidationError.New("missing or invalid fields " + strings.Join(fields, ", ")).WithDetails(details)
	}

	var typeError *json.UnmarshalTypeError
	if goerrors.As(err, &typeError) {

		details := []FieldError{{Field: typeError.Field, Rule: "type"}}
		return errors.ValidationError.New(typeError.Field + " must be " + typeError.Type.String()).WithDetails(details)
	}

	return errors.ValidationError.New(err)
}
