package services

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"pizza-store-cli/models"
)

// Field rules shared by registration and the mutators.
const (
	ruleLogin    = "notblank,max=50"
	rulePassword = "notblank,max=30"
	rulePhone    = "notblank,max=20"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// unlike "required", rejects whitespace-only strings
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func validateStruct(s any) error {
	return toValidationError("", validate.Struct(s))
}

func validateVar(field, value, rule string) error {
	return toValidationError(field, validate.Var(value, rule))
}

func toValidationError(field string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if field == "" {
		field = fe.Field()
	}
	return models.NewValidationError(field, describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "must not be blank"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "failed the " + fe.Tag() + " check"
	}
}

func parsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(s), "$"), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, models.NewValidationError("price", "must be a non-negative number")
	}
	return price, nil
}

func parseOrderID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, models.NewValidationError("orderID", "must be a whole number")
	}
	return id, nil
}

// blank reports whether typed input means "keep the current value".
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// changeSet collects the columns a partial update will write.
type changeSet map[string]any

// text records column when input is non-blank and differs from current.
func (c changeSet) text(column, input, current string) {
	v := strings.TrimSpace(input)
	if v == "" || v == current {
		return
	}
	c[column] = v
}
