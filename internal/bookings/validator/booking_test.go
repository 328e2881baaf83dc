package validator

import (
	"errors"
	"testing"
	"time"

	"roomly/pkg/logger"
	"roomly/pkg/model"
)

func newTestValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func validBooking() *model.Booking {
	return &model.Booking{
		Resource:    "room-a",
		StartTime:   time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
		RequestedBy: "alice",
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	v := newTestValidator()

	if err := v.Validate(validBooking()); err != nil {
		t.Errorf("expected valid booking to pass, got %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantField string
	}{
		{
			name:      "missing resource",
			mutate:    func(b *model.Booking) { b.Resource = "" },
			wantField: "resource",
		},
		{
			name:      "missing start time",
			mutate:    func(b *model.Booking) { b.StartTime = time.Time{} },
			wantField: "startTime",
		},
		{
			name:      "missing end time",
			mutate:    func(b *model.Booking) { b.EndTime = time.Time{} },
			wantField: "endTime",
		},
		{
			name:      "missing requester",
			mutate:    func(b *model.Booking) { b.RequestedBy = "" },
			wantField: "requestedBy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator()
			booking := validBooking()
			tt.mutate(booking)

			err := v.Validate(booking)
			if err == nil {
				t.Fatal("expected a validation error, got nil")
			}

			var validationErrs ValidationErrors
			if !errors.As(err, &validationErrs) {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}
			if !validationErrs.OnlyMissing() {
				t.Errorf("expected only missing field failures, got %v", validationErrs)
			}

			missing := validationErrs.MissingFields()
			if len(missing) != 1 || missing[0] != tt.wantField {
				t.Errorf("expected missing field %q, got %v", tt.wantField, missing)
			}
		})
	}
}

func TestValidate_AllFieldsMissing(t *testing.T) {
	v := newTestValidator()

	err := v.Validate(&model.Booking{})
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}

	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if got := len(validationErrs.MissingFields()); got != 4 {
		t.Errorf("expected 4 missing fields, got %d: %v", got, validationErrs)
	}
}

func TestValidate_InvalidObjectID(t *testing.T) {
	v := newTestValidator()
	booking := validBooking()
	booking.ID = "not-an-object-id"

	err := v.Validate(booking)
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}

	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if validationErrs.OnlyMissing() {
		t.Error("an invalid id is not a missing field failure")
	}
	if validationErrs[0].Field != "id" || validationErrs[0].Tag != "mongodb" {
		t.Errorf("expected id/mongodb failure, got %+v", validationErrs[0])
	}
}

func TestValidate_ResourceTooLong(t *testing.T) {
	v := newTestValidator()
	booking := validBooking()
	for len(booking.Resource) <= 100 {
		booking.Resource += booking.Resource
	}

	err := v.Validate(booking)
	if err == nil {
		t.Fatal("expected a validation error, got nil")
	}

	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if validationErrs[0].Tag != "max" {
		t.Errorf("expected max length failure, got %+v", validationErrs[0])
	}
}
