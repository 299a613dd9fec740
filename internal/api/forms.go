package api

import (
	stderrors "errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/vytor/flashdeck/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

type classForm struct {
	ClassID string `form:"class_id" validate:"required"`
}

type markForm struct {
	Outcome string `form:"outcome" validate:"required,oneof=pass fail"`
}

// cardForm carries front and back verbatim; blank text is accepted.
type cardForm struct {
	Front string `form:"front"`
	Back  string `form:"back"`
}

func parseClassForm(r *http.Request) (classForm, error) {
	f := classForm{ClassID: r.FormValue("class_id")}
	return f, validateForm(f)
}

func parseMarkForm(r *http.Request) (markForm, error) {
	f := markForm{Outcome: r.FormValue("outcome")}
	return f, validateForm(f)
}

func parseCardForm(r *http.Request) cardForm {
	return cardForm{Front: r.FormValue("front"), Back: r.FormValue("back")}
}

func cardIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid card id: " + raw)
	}
	return id, nil
}

func validateForm(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return errors.NewValidationError(fe.Field(), "is required")
		case "oneof":
			return errors.NewValidationError(fe.Field(), "must be one of: "+fe.Param())
		default:
			return errors.NewValidationError(fe.Field(), fe.Tag())
		}
	}
	return errors.NewBadRequestError(err.Error())
}
