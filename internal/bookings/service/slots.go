package service

import (
	"context"
	"time"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"
)

// Working-day window within which free slots are computed. 08:00-18:00 UTC,
// independent of resource.
const (
	WorkdayStart = 8 * time.Hour
	WorkdayEnd   = 18 * time.Hour
)

// AvailableSlots enumerates the free gaps between bookings of the resource
// inside the working-day window of the given UTC calendar date.
func (s *bookingService) AvailableSlots(ctx context.Context, resource, date string) ([]model.Slot, error) {
	resource = sanitizer.NormalizeResource(resource)
	if resource == "" || date == "" {
		return nil, apperrors.MissingParameter("resource", "date")
	}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid date format, must be YYYY-MM-DD: " + date)
	}

	windowStart := day.UTC().Add(WorkdayStart)
	windowEnd := day.UTC().Add(WorkdayEnd)

	bookings, err := s.repo.FindWithinWindow(ctx, resource, windowStart, windowEnd)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch bookings for slot computation",
			"resource", resource,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	slots := computeFreeSlots(windowStart, windowEnd, bookings)

	s.cfg.Log.Debug("Available slots computed",
		"resource", resource,
		"date", date,
		"bookings", len(bookings),
		"slots", len(slots),
	)
	return slots, nil
}

// computeFreeSlots sweeps left to right over bookings ordered by start time,
// emitting the maximal disjoint free intervals within [windowStart, windowEnd).
// The cursor only advances, so overlapping bookings and bookings contained in
// an already-consumed region contribute nothing. Half-open comparison means
// bookings touching exactly at a boundary produce no gap.
func computeFreeSlots(windowStart, windowEnd time.Time, bookings []*model.Booking) []model.Slot {
	slots := []model.Slot{}
	slotStart := windowStart

	for _, booking := range bookings {
		if slotStart.Before(booking.StartTime) {
			slots = append(slots, model.Slot{
				StartTime: slotStart,
				EndTime:   booking.StartTime,
			})
		}
		if booking.EndTime.After(slotStart) {
			slotStart = booking.EndTime
		}
	}

	if slotStart.Before(windowEnd) {
		slots = append(slots, model.Slot{
			StartTime: slotStart,
			EndTime:   windowEnd,
		})
	}

	return slots
}
