package handlers

import (
	"errors"
	"io"
	"reflect"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators reports json field names in binding errors and adds
// the plate and isodate tags. Call once before serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("plate", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s != "" && !strings.Contains(s, "#")
	}); err != nil {
		return err
	}
	return v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return utils.IsISODate(fl.Field().String())
	})
}

// bindError turns a ShouldBindJSON failure into a ValidationError.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		field := e.Field()
		switch e.Tag() {
		case "required":
			return domain.ValidationError{Field: field, Msg: "is required", Err: err}
		case "isodate":
			return domain.ValidationError{Field: field, Msg: "must be YYYY-MM-DD", Err: err}
		case "plate":
			return domain.ValidationError{Field: field, Msg: "must be a plate without '#'", Err: err}
		case "oneof":
			return domain.ValidationError{Field: field, Msg: "must be one of " + e.Param(), Err: err}
		default:
			return domain.ValidationError{Field: field, Msg: "is invalid", Err: err}
		}
	}
	if errors.Is(err, io.EOF) {
		return domain.ValidationError{Msg: "request body is empty", Err: err}
	}
	return domain.ValidationError{Msg: "invalid JSON payload", Err: err}
}

func asValidation(err error) (domain.ValidationError, bool) {
	var ve domain.ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
