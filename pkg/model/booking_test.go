package model

import (
	"testing"
	"time"
)

func TestNewCoffeeQuantity(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"minimum", 1, false},
		{"maximum", 50, false},
		{"typical", 12, false},
		{"zero", 0, true},
		{"negative", -3, true},
		{"over limit", 51, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewCoffeeQuantity(tt.n)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewCoffeeQuantity(%d) expected error, got %d", tt.n, q)
				}
				return
			}
			if err != nil {
				t.Errorf("NewCoffeeQuantity(%d) unexpected error: %v", tt.n, err)
			}
			if int(q) != tt.n {
				t.Errorf("NewCoffeeQuantity(%d) = %d", tt.n, q)
			}
		})
	}
}

func TestBookingStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cancelledAt := now.Add(-time.Hour)

	tests := []struct {
		name    string
		booking Booking
		want    BookingStatus
	}{
		{
			name: "future booking is scheduled",
			booking: Booking{
				StartTime: now.Add(time.Hour),
				EndTime:   now.Add(2 * time.Hour),
			},
			want: StatusScheduled,
		},
		{
			name: "running booking is in progress",
			booking: Booking{
				StartTime: now.Add(-30 * time.Minute),
				EndTime:   now.Add(30 * time.Minute),
			},
			want: StatusInProgress,
		},
		{
			name: "booking starting exactly now is in progress",
			booking: Booking{
				StartTime: now,
				EndTime:   now.Add(time.Hour),
			},
			want: StatusInProgress,
		},
		{
			name: "ended booking is completed",
			booking: Booking{
				StartTime: now.Add(-2 * time.Hour),
				EndTime:   now.Add(-time.Hour),
			},
			want: StatusCompleted,
		},
		{
			name: "booking ending exactly now is completed",
			booking: Booking{
				StartTime: now.Add(-time.Hour),
				EndTime:   now,
			},
			want: StatusCompleted,
		},
		{
			name: "soft-deleted booking is cancelled regardless of time",
			booking: Booking{
				StartTime: now.Add(time.Hour),
				EndTime:   now.Add(2 * time.Hour),
				DeletedAt: &cancelledAt,
			},
			want: StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.booking.Status(now); got != tt.want {
				t.Errorf("Status() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBookingIsActive(t *testing.T) {
	b := Booking{}
	if !b.IsActive() {
		t.Error("booking without deleted_at should be active")
	}

	deleted := time.Now()
	b.DeletedAt = &deleted
	if b.IsActive() {
		t.Error("booking with deleted_at should be inactive")
	}
}
