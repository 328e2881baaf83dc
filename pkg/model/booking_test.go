package model

import (
	"testing"
	"time"
)

func TestStatusAt(t *testing.T) {
	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC)
	booking := &Booking{StartTime: start, EndTime: end}

	tests := []struct {
		name string
		now  time.Time
		want BookingStatus
	}{
		{name: "before start", now: start.Add(-time.Minute), want: StatusUpcoming},
		{name: "exactly at start", now: start, want: StatusOngoing},
		{name: "mid interval", now: start.Add(30 * time.Minute), want: StatusOngoing},
		{name: "exactly at end", now: end, want: StatusOngoing},
		{name: "after end", now: end.Add(time.Millisecond), want: StatusPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := booking.StatusAt(tt.now); got != tt.want {
				t.Errorf("StatusAt(%v) = %s, want %s", tt.now, got, tt.want)
			}
		})
	}
}
