package service

import (
	"context"
	"testing"
	"time"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
)

func slot(startHour, startMin, endHour, endMin int) model.Slot {
	return model.Slot{
		StartTime: at(startHour, startMin),
		EndTime:   at(endHour, endMin),
	}
}

func booked(startHour, startMin, endHour, endMin int) *model.Booking {
	return &model.Booking{
		Resource:  "room-a",
		StartTime: at(startHour, startMin),
		EndTime:   at(endHour, endMin),
	}
}

func TestComputeFreeSlots(t *testing.T) {
	windowStart := at(8, 0)
	windowEnd := at(18, 0)

	tests := []struct {
		name     string
		bookings []*model.Booking
		want     []model.Slot
	}{
		{
			name:     "no bookings yields the full window",
			bookings: nil,
			want:     []model.Slot{slot(8, 0, 18, 0)},
		},
		{
			name: "two bookings split the window in three",
			bookings: []*model.Booking{
				booked(9, 0, 10, 0),
				booked(14, 0, 15, 0),
			},
			want: []model.Slot{
				slot(8, 0, 9, 0),
				slot(10, 0, 14, 0),
				slot(15, 0, 18, 0),
			},
		},
		{
			name: "booking flush with the window start",
			bookings: []*model.Booking{
				booked(8, 0, 9, 30),
			},
			want: []model.Slot{slot(9, 30, 18, 0)},
		},
		{
			name: "booking flush with the window end",
			bookings: []*model.Booking{
				booked(16, 30, 18, 0),
			},
			want: []model.Slot{slot(8, 0, 16, 30)},
		},
		{
			name: "back to back bookings leave no gap between them",
			bookings: []*model.Booking{
				booked(9, 0, 10, 0),
				booked(10, 0, 11, 0),
			},
			want: []model.Slot{
				slot(8, 0, 9, 0),
				slot(11, 0, 18, 0),
			},
		},
		{
			name: "booking spanning the whole window yields nothing",
			bookings: []*model.Booking{
				booked(7, 0, 19, 0),
			},
			want: []model.Slot{},
		},
		{
			name: "overlapping bookings do not move the cursor backwards",
			bookings: []*model.Booking{
				booked(9, 0, 11, 0),
				booked(10, 0, 10, 30),
				booked(10, 30, 12, 0),
			},
			want: []model.Slot{
				slot(8, 0, 9, 0),
				slot(12, 0, 18, 0),
			},
		},
		{
			name: "booking contained in an already consumed region",
			bookings: []*model.Booking{
				booked(9, 0, 12, 0),
				booked(10, 0, 11, 0),
			},
			want: []model.Slot{
				slot(8, 0, 9, 0),
				slot(12, 0, 18, 0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeFreeSlots(windowStart, windowEnd, tt.bookings)

			if len(got) != len(tt.want) {
				t.Fatalf("expected %d slots, got %d: %+v", len(tt.want), len(got), got)
			}
			for i := range got {
				if !got[i].StartTime.Equal(tt.want[i].StartTime) || !got[i].EndTime.Equal(tt.want[i].EndTime) {
					t.Errorf("slot %d: expected %v-%v, got %v-%v",
						i, tt.want[i].StartTime, tt.want[i].EndTime,
						got[i].StartTime, got[i].EndTime)
				}
			}
		})
	}
}

func TestAvailableSlots_MissingParameters(t *testing.T) {
	tests := []struct {
		name           string
		resource, date string
	}{
		{name: "missing resource", resource: "", date: "2025-06-15"},
		{name: "missing date", resource: "room-a", date: ""},
		{name: "missing both", resource: "", date: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockBookingRepository{}, &mockLockRepository{}, &mockPublisher{}, at(12, 0))

			_, err := svc.AvailableSlots(context.Background(), tt.resource, tt.date)
			if got := errCode(t, err); got != apperrors.CodeMissingParameter {
				t.Errorf("expected missing parameter, got %s (%v)", got, err)
			}
		})
	}
}

func TestAvailableSlots_InvalidDate(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockLockRepository{}, &mockPublisher{}, at(12, 0))

	_, err := svc.AvailableSlots(context.Background(), "room-a", "June 15th")
	if got := errCode(t, err); got != apperrors.CodeInvalidInput {
		t.Errorf("expected invalid input, got %s (%v)", got, err)
	}
}

func TestAvailableSlots_QueriesWorkdayWindow(t *testing.T) {
	var gotStart, gotEnd time.Time
	repo := &mockBookingRepository{
		findWithinWindowFunc: func(ctx context.Context, resource string, windowStart, windowEnd time.Time) ([]*model.Booking, error) {
			gotStart, gotEnd = windowStart, windowEnd
			return []*model.Booking{booked(9, 0, 10, 0)}, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, &mockPublisher{}, at(12, 0))

	slots, err := svc.AvailableSlots(context.Background(), "room-a", "2025-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !gotStart.Equal(at(8, 0)) || !gotEnd.Equal(at(18, 0)) {
		t.Errorf("expected window 08:00-18:00, got %v-%v", gotStart, gotEnd)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d: %+v", len(slots), slots)
	}
}
