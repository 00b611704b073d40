// Package validation проверяет входные структуры по struct-тегам.
//
// Один и тот же DTO описывает правила создания (тег validate) и частичного
// обновления (тег patch); результат - сообщения, сгруппированные по json-именам полей.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Mode int

const (
	Create Mode = iota
	Patch
)

var (
	once     sync.Once
	validate map[Mode]*validator.Validate
)

func instances() map[Mode]*validator.Validate {
	once.Do(func() {
		validate = map[Mode]*validator.Validate{
			Create: newValidator("validate"),
			Patch:  newValidator("patch"),
		}
	})
	return validate
}

func newValidator(tag string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName(tag)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// decimal сравнивается как число
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Struct проверяет s и возвращает сообщения по полям; nil - если ошибок нет.
func Struct(mode Mode, s any) map[string][]string {
	err := instances()[mode].Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"non_field_errors": {err.Error()}}
	}

	out := make(map[string][]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = append(out[fe.Field()], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if isString {
			return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}
