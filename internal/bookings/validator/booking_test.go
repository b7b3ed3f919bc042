package validator

import (
	"strings"
	"testing"
	"time"

	"roomly/pkg/logger"
	"roomly/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validBooking() *model.Booking {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	return &model.Booking{
		RoomID:    "6e8bc430-9c3a-4d2a-b7a5-8a2c3e4f5a6b",
		ManagerID: "7f9cd541-ad4b-4e3b-98b6-9b3d4f5a6b7c",
		Name:      "Quarterly planning",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	}
}

func TestValidate(t *testing.T) {
	v := NewBookingValidator(testLogger())

	tests := []struct {
		name      string
		mutate    func(*model.Booking)
		wantError string
	}{
		{
			name:      "valid booking",
			mutate:    func(b *model.Booking) {},
			wantError: "",
		},
		{
			name:      "missing room id",
			mutate:    func(b *model.Booking) { b.RoomID = "" },
			wantError: "RoomID",
		},
		{
			name:      "room id not a uuid",
			mutate:    func(b *model.Booking) { b.RoomID = "not-a-uuid" },
			wantError: "RoomID",
		},
		{
			name:      "missing manager id",
			mutate:    func(b *model.Booking) { b.ManagerID = "" },
			wantError: "ManagerID",
		},
		{
			name:      "name too short",
			mutate:    func(b *model.Booking) { b.Name = "x" },
			wantError: "Name",
		},
		{
			name:      "name too long",
			mutate:    func(b *model.Booking) { b.Name = strings.Repeat("a", 101) },
			wantError: "Name",
		},
		{
			name:      "description too long",
			mutate:    func(b *model.Booking) { b.Description = strings.Repeat("a", 501) },
			wantError: "Description",
		},
		{
			name:      "end before start",
			mutate:    func(b *model.Booking) { b.EndTime = b.StartTime.Add(-time.Hour) },
			wantError: "EndTime",
		},
		{
			name:      "end equals start",
			mutate:    func(b *model.Booking) { b.EndTime = b.StartTime },
			wantError: "EndTime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if tt.wantError == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q, got nil", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("expected error mentioning %q, got %q", tt.wantError, err.Error())
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := NewBookingValidator(testLogger())
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	badEnd := start.Add(-time.Hour)
	longName := strings.Repeat("a", 101)

	tests := []struct {
		name      string
		update    *model.BookingUpdate
		wantError bool
	}{
		{
			name:      "empty update is valid",
			update:    &model.BookingUpdate{},
			wantError: false,
		},
		{
			name:      "name only",
			update:    &model.BookingUpdate{Name: "New title"},
			wantError: false,
		},
		{
			name:      "name too long",
			update:    &model.BookingUpdate{Name: longName},
			wantError: true,
		},
		{
			name:      "both times valid",
			update:    &model.BookingUpdate{StartTime: &start, EndTime: &end},
			wantError: false,
		},
		{
			name:      "end before start",
			update:    &model.BookingUpdate{StartTime: &start, EndTime: &badEnd},
			wantError: true,
		},
		{
			name:      "start only is allowed shape",
			update:    &model.BookingUpdate{StartTime: &start},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpdate(tt.update)
			if tt.wantError && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}
