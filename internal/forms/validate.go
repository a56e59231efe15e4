// Package forms holds the declarative schemas for the console's create and edit
// forms. One struct per entity serves both variants.
package forms

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

type enumValue interface {
	IsValid() bool
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	// enum accepts any closed enumeration from pkg/enums. Empty values are left to required.
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() == reflect.String && fl.Field().String() == "" {
			return true
		}
		e, ok := fl.Field().Interface().(enumValue)
		return ok && e.IsValid()
	})
	return v
}

// FieldErrors maps a form field name to the message shown beside it.
type FieldErrors map[string]string

func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+" "+f[field])
	}
	return strings.Join(parts, "; ")
}

// Err is nil when there are no field errors.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, f.Error()).WithDetails(f)
}

// Validate runs the struct's validate tags and returns nil when it passes.
func Validate(v any) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	out := FieldErrors{}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range errs {
			out.Add(fieldErr.Field(), validationMessage(fieldErr))
		}
		return out
	}
	out.Add("_form", err.Error())
	return out
}

// FieldErrorsOf pulls the field map back out of an error built by Err.
func FieldErrorsOf(err error) FieldErrors {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		return nil
	}
	fe, _ := typed.Details().(FieldErrors)
	return fe
}

func merge(a, b FieldErrors) FieldErrors {
	if len(a) == 0 {
		return b
	}
	for k, v := range b {
		a.Add(k, v)
	}
	return a
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "enum":
		return "is not a known option"
	case "datetime":
		return fmt.Sprintf("must match %s", fe.Param())
	case "url":
		return "must be a valid url"
	case "eqfield":
		return "does not match"
	}
	return "is invalid"
}
