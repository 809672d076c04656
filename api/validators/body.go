package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/shopadmin-backend/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	// decimals validate as their float value so min/max apply to money fields
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		switch d := field.Interface().(type) {
		case decimal.Decimal:
			f, _ := d.Float64()
			return f
		case decimal.NullDecimal:
			if !d.Valid {
				return nil
			}
			f, _ := d.Decimal.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{}, decimal.NullDecimal{})
	return v
}

// FieldChecker is implemented by request types with violations struct tags
// cannot express, such as unparsable dates.
type FieldChecker interface {
	CheckFields(fields pkgerrors.FieldErrors)
}

// DecodeJSONBody decodes a single JSON object into dest and validates its struct tags.
// Malformed JSON is BAD_REQUEST; tag violations are VALIDATION_ERROR with field details.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return decodeError(err)
	}
	return Struct(dest)
}

// Struct validates dest against its struct tags and, when dest is a
// FieldChecker, its own checks. Violations from both are reported together.
func Struct(dest any) error {
	fields := pkgerrors.FieldErrors{}
	if err := validate.Struct(dest); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
		}
		for _, fieldErr := range errs {
			fields.Add(fieldErr.Field(), validationMessage(fieldErr))
		}
	}
	if checker, ok := dest.(FieldChecker); ok {
		checker.CheckFields(fields)
	}
	return fields.Err()
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fields := pkgerrors.FieldErrors{}
		fields.Add(typeErr.Field, fmt.Sprintf("The %s field must be of type %s.", humanize(typeErr.Field), typeErr.Type.String()))
		return fields.Err()
	}
	if errors.Is(err, io.EOF) {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "request body is required")
	}
	return pkgerrors.Wrap(pkgerrors.CodeBadRequest, err, "invalid request body")
}

func validationMessage(fe validator.FieldError) string {
	name := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "url", "http_url":
		return fmt.Sprintf("The %s field must be a valid URL.", name)
	case "hexcolor":
		return fmt.Sprintf("The %s field must be a valid hex color.", name)
	case "dive":
		return fmt.Sprintf("The %s field is invalid.", name)
	}
	return fmt.Sprintf("The %s field is invalid.", name)
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
