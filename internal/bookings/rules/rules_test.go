package rules

import (
	"testing"
	"time"

	"roomly/pkg/model"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func interval(start, end time.Time) model.Interval {
	return model.Interval{Start: start, End: end}
}

func TestValidateTimeWindow(t *testing.T) {
	tests := []struct {
		name     string
		interval model.Interval
		wantKind string
	}{
		{
			name:     "valid one hour booking",
			interval: interval(testNow.Add(time.Hour), testNow.Add(2*time.Hour)),
			wantKind: "",
		},
		{
			name:     "start equals end",
			interval: interval(testNow.Add(time.Hour), testNow.Add(time.Hour)),
			wantKind: KindInvalidInterval,
		},
		{
			name:     "end before start",
			interval: interval(testNow.Add(2*time.Hour), testNow.Add(time.Hour)),
			wantKind: KindInvalidInterval,
		},
		{
			name:     "start in the past beyond grace",
			interval: interval(testNow.Add(-10*time.Minute), testNow.Add(time.Hour)),
			wantKind: KindPastBooking,
		},
		{
			name:     "start within grace window",
			interval: interval(testNow.Add(-4*time.Minute), testNow.Add(time.Hour)),
			wantKind: "",
		},
		{
			name:     "start exactly at grace boundary",
			interval: interval(testNow.Add(-GraceWindow), testNow.Add(time.Hour)),
			wantKind: "",
		},
		{
			name:     "longer than eight hours",
			interval: interval(testNow.Add(time.Hour), testNow.Add(9*time.Hour+time.Minute)),
			wantKind: KindTooLong,
		},
		{
			name:     "exactly eight hours",
			interval: interval(testNow.Add(time.Hour), testNow.Add(9*time.Hour)),
			wantKind: "",
		},
		{
			name:     "shorter than thirty minutes",
			interval: interval(testNow.Add(time.Hour), testNow.Add(time.Hour+29*time.Minute)),
			wantKind: KindTooShort,
		},
		{
			name:     "exactly thirty minutes",
			interval: interval(testNow.Add(time.Hour), testNow.Add(time.Hour+30*time.Minute)),
			wantKind: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeWindow(tt.interval, testNow)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("expected no error, got %q (%s)", err.Kind, err.Message)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected rule error %q, got nil", tt.wantKind)
			}
			if err.Kind != tt.wantKind {
				t.Errorf("expected kind %q, got %q", tt.wantKind, err.Kind)
			}
		})
	}
}

func TestValidateCoffee(t *testing.T) {
	qty := func(n int) *int { return &n }

	tests := []struct {
		name     string
		option   bool
		quantity *int
		wantKind string
	}{
		{name: "option off no quantity", option: false, quantity: nil, wantKind: ""},
		{name: "option on with valid quantity", option: true, quantity: qty(10), wantKind: ""},
		{name: "option on at minimum", option: true, quantity: qty(1), wantKind: ""},
		{name: "option on at maximum", option: true, quantity: qty(50), wantKind: ""},
		{name: "option on missing quantity", option: true, quantity: nil, wantKind: KindCoffeeQuantityRequired},
		{name: "option on quantity zero", option: true, quantity: qty(0), wantKind: KindCoffeeQuantityRequired},
		{name: "option on negative quantity", option: true, quantity: qty(-3), wantKind: KindCoffeeQuantityRequired},
		{name: "option on quantity over maximum", option: true, quantity: qty(51), wantKind: KindCoffeeQuantityExceeded},
		{name: "option off with quantity", option: false, quantity: qty(5), wantKind: KindCoffeeQuantityUnexpected},
		{name: "option off quantity zero", option: false, quantity: qty(0), wantKind: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoffee(tt.option, tt.quantity)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("expected no error, got %q", err.Kind)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected rule error %q, got nil", tt.wantKind)
			}
			if err.Kind != tt.wantKind {
				t.Errorf("expected kind %q, got %q", tt.wantKind, err.Kind)
			}
		})
	}
}

func TestCanModify(t *testing.T) {
	deleted := testNow.Add(-time.Hour)

	tests := []struct {
		name    string
		booking model.Booking
		want    bool
	}{
		{
			name:    "future booking",
			booking: model.Booking{StartTime: testNow.Add(time.Hour), EndTime: testNow.Add(2 * time.Hour)},
			want:    true,
		},
		{
			name:    "booking in progress",
			booking: model.Booking{StartTime: testNow.Add(-time.Hour), EndTime: testNow.Add(time.Hour)},
			want:    false,
		},
		{
			name:    "booking starting exactly now",
			booking: model.Booking{StartTime: testNow, EndTime: testNow.Add(time.Hour)},
			want:    false,
		},
		{
			name:    "cancelled booking",
			booking: model.Booking{StartTime: testNow.Add(time.Hour), EndTime: testNow.Add(2 * time.Hour), DeletedAt: &deleted},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModify(&tt.booking, testNow); got != tt.want {
				t.Errorf("CanModify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanCancel(t *testing.T) {
	deleted := testNow.Add(-time.Hour)

	tests := []struct {
		name    string
		booking model.Booking
		want    bool
	}{
		{
			name:    "future booking",
			booking: model.Booking{StartTime: testNow.Add(time.Hour), EndTime: testNow.Add(2 * time.Hour)},
			want:    true,
		},
		{
			name:    "booking in progress can still be cancelled",
			booking: model.Booking{StartTime: testNow.Add(-time.Hour), EndTime: testNow.Add(time.Hour)},
			want:    true,
		},
		{
			name:    "finished booking",
			booking: model.Booking{StartTime: testNow.Add(-2 * time.Hour), EndTime: testNow.Add(-time.Hour)},
			want:    false,
		},
		{
			name:    "booking ending exactly now",
			booking: model.Booking{StartTime: testNow.Add(-time.Hour), EndTime: testNow},
			want:    false,
		},
		{
			name:    "already cancelled",
			booking: model.Booking{StartTime: testNow.Add(time.Hour), EndTime: testNow.Add(2 * time.Hour), DeletedAt: &deleted},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCancel(&tt.booking, testNow); got != tt.want {
				t.Errorf("CanCancel() = %v, want %v", got, tt.want)
			}
		})
	}
}
