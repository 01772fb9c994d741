package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field errors are keyed by the JSON name of the field. Decimal amounts are
// checked by min/max as numbers.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return &echoValidator{v: v}
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// Validate satisfies the echo.Validator interface. Rule failures come back as
// a *ValidationError.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range ve {
		field := fieldPath(fe)
		out.Add(field, fieldError(field, fe))
	}
	return out
}

// fieldPath drops the request type from the namespace: productos_con_cantidades[0].codigo.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio.", field)
	case "email":
		return fmt.Sprintf("El campo %s debe ser un correo electrónico válido.", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("El campo %s no debe tener más de %s caracteres.", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s no debe ser mayor que %s.", field, fe.Param())
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("El campo %s debe tener al menos %s caracteres.", field, fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("El campo %s debe tener al menos %s elementos.", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s debe ser al menos %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("El campo %s debe ser uno de: %s.", field, fe.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido (%s).", field, fe.Tag())
	}
}
