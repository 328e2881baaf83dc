package model

import (
	"time"
)

type BookingStatus string

const (
	StatusPast     BookingStatus = "Past"
	StatusOngoing  BookingStatus = "Ongoing"
	StatusUpcoming BookingStatus = "Upcoming"
)

type Booking struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Resource    string    `json:"resource" bson:"resource" validate:"required,min=1,max=100"`
	StartTime   time.Time `json:"startTime" bson:"start_time" validate:"required"`
	EndTime     time.Time `json:"endTime" bson:"end_time" validate:"required"`
	RequestedBy string    `json:"requestedBy" bson:"requested_by" validate:"required,min=1,max=100"`
	CreatedAt   time.Time `json:"createdAt,omitempty" bson:"created_at" validate:"omitempty"`

	// Status is derived against "now" at read time and never persisted.
	Status BookingStatus `json:"status,omitempty" bson:"-" validate:"omitempty"`
}

// StatusAt derives the booking status relative to the given instant.
func (b *Booking) StatusAt(now time.Time) BookingStatus {
	switch {
	case b.EndTime.Before(now):
		return StatusPast
	case !b.StartTime.After(now) && !b.EndTime.Before(now):
		return StatusOngoing
	default:
		return StatusUpcoming
	}
}

// Slot is a free interval within the working-day window. Slots are
// computed on demand and never stored.
type Slot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ResourceLock is an advisory lock document serializing booking creation
// per resource. The _id is derived from the resource name, so a concurrent
// insert for the same resource fails with a duplicate key error.
type ResourceLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
