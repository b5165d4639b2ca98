package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rpupo63/blog-api/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(s any) error {
	return translate("", validate.Struct(s))
}

func validateVar(field string, value any, rule string) error {
	return translate(field, validate.Var(value, rule))
}

// translate turns the first validator failure into an *errs.ApiErr naming
// the offending JSON field.
func translate(field string, err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errs.NewBadRequestError(err.Error())
	}

	fe := verrs[0]
	name := field
	if name == "" {
		name = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return errs.NewMissingRequiredFieldError(name)
	case "min":
		return errs.NewInvalidFieldError(name, fmt.Sprintf("must be at least %s characters", fe.Param()))
	case "url", "http_url":
		return errs.NewInvalidFieldError(name, "must be a valid http(s) URL")
	default:
		return errs.NewInvalidFieldError(name, fmt.Sprintf("failed %q check", fe.Tag()))
	}
}
