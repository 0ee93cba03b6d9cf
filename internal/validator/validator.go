package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinex-web/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var (
	cardNumberRgx = regexp.MustCompile(`^[0-9]{16,19}$`)
	cvvRgx        = regexp.MustCompile(`^[0-9]{3,4}$`)
	expiryRgx     = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)

	// now is replaced in tests
	now = time.Now
)

// Issues reported for fields the JSON decoder rejects before validation runs.
const (
	IssueEmail    = "must be a valid email address"
	IssueShowDate = "must be a calendar date in the form YYYY-MM-DD"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	validator.RegisterValidation("seat_id", validateSeatID)
	validator.RegisterValidation("show_date", validateShowDate)
	validator.RegisterValidation("card_number", validateCardNumber)
	validator.RegisterValidation("card_expiry", validateCardExpiry)
	validator.RegisterValidation("cvv", validateCVV)

	return validator
}

func validateSeatID(fl validator.FieldLevel) bool {
	_, err := domain.ParseSeatID(fl.Field().String())
	return err == nil
}

// validateShowDate accepts whole UTC days.
func validateShowDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(openapi_types.Date)
	if !ok {
		return false
	}

	return date.Equal(domain.Day(date.Time)) && date.Location() == time.UTC
}

// NormalizeCardNumber strips the spaces and dashes users type between digit
// groups.
func NormalizeCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

func validateCardNumber(fl validator.FieldLevel) bool {
	return cardNumberRgx.MatchString(NormalizeCardNumber(fl.Field().String()))
}

func validateCVV(fl validator.FieldLevel) bool {
	return cvvRgx.MatchString(fl.Field().String())
}

// validateCardExpiry accepts MM/YY dates whose month has not ended yet.
func validateCardExpiry(fl validator.FieldLevel) bool {
	m := expiryRgx.FindStringSubmatch(fl.Field().String())
	if m == nil {
		return false
	}

	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])

	current := now()
	endOfMonth := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, current.Location())

	return current.Before(endOfMonth)
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return IssueEmail
	case "min":
		if err.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at least %s items", err.Param())
		}
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		if err.Kind().String() == "slice" {
			return fmt.Sprintf("must contain at most %s items", err.Param())
		}
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", err.Param())
	case "seat_id":
		return "must be a seat in the form row-column, e.g. 0-3"
	case "show_date":
		return IssueShowDate
	case "card_number":
		return "must contain 16 to 19 digits"
	case "card_expiry":
		return "must be a month in the form MM/YY that has not passed"
	case "cvv":
		return "must contain 3 or 4 digits"
	default:
		return "is invalid"
	}
}
