package validator

import (
	"errors"
	"fmt"
	"strings"

	"roomly/pkg/logger"
	"roomly/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// MissingFields returns the fields that failed the required tag.
func (v ValidationErrors) MissingFields() []string {
	var fields []string
	for _, err := range v {
		if err.Tag == "required" {
			fields = append(fields, err.Field)
		}
	}
	return fields
}

// OnlyMissing reports whether every failure is an absent required field.
func (v ValidationErrors) OnlyMissing() bool {
	return len(v) > 0 && len(v.MissingFields()) == len(v)
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", jsonFieldName(err.Field()))
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", jsonFieldName(err.Field()), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", jsonFieldName(err.Field()), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", jsonFieldName(err.Field()))
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   jsonFieldName(err.Field()),
			Tag:     err.Tag(),
			Message: message,
		})
	}

	return validationErrors
}

// jsonFieldName maps struct field names to the wire names clients send.
func jsonFieldName(field string) string {
	switch field {
	case "Resource":
		return "resource"
	case "StartTime":
		return "startTime"
	case "EndTime":
		return "endTime"
	case "RequestedBy":
		return "requestedBy"
	case "ID":
		return "id"
	default:
		return field
	}
}
