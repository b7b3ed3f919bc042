package rules

import (
	"fmt"
	"time"

	"roomly/pkg/model"
)

// Rule kinds carried in validation error details so clients can branch on
// the specific rule that failed without parsing messages.
const (
	KindInvalidInterval          = "invalid_interval"
	KindPastBooking              = "past_booking"
	KindTooLong                  = "too_long"
	KindTooShort                 = "too_short"
	KindCoffeeQuantityRequired   = "coffee_quantity_required"
	KindCoffeeQuantityExceeded   = "coffee_quantity_exceeded"
	KindCoffeeQuantityUnexpected = "coffee_quantity_unexpected"
)

const (
	// GraceWindow tolerates clock skew between clients and the server.
	// A booking whose start is within this window of the past is still valid.
	GraceWindow = 5 * time.Minute

	MaxDuration = 8 * time.Hour
	MinDuration = 30 * time.Minute
)

// RuleError reports which booking rule was violated. Kind is one of the
// Kind* constants above.
type RuleError struct {
	Kind    string
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

func newRuleError(kind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ValidateTimeWindow checks a booking interval against the time rules.
// The caller supplies now so the rules stay deterministic under test.
func ValidateTimeWindow(interval model.Interval, now time.Time) *RuleError {
	if !interval.Start.Before(interval.End) {
		return newRuleError(KindInvalidInterval, "end time must be after start time")
	}

	if interval.Start.Before(now.Add(-GraceWindow)) {
		return newRuleError(KindPastBooking, "booking cannot start in the past")
	}

	duration := interval.Duration()
	if duration > MaxDuration {
		return newRuleError(KindTooLong, "booking cannot exceed %s, got %s", MaxDuration, duration)
	}
	if duration < MinDuration {
		return newRuleError(KindTooShort, "booking must be at least %s, got %s", MinDuration, duration)
	}

	return nil
}

// ValidateCoffee enforces that a positive quantity is present exactly when the
// coffee option is on, and that a present quantity is within the allowed range.
// A missing or non-positive quantity counts as absent.
func ValidateCoffee(coffeeOption bool, quantity *int) *RuleError {
	if coffeeOption {
		if quantity == nil || *quantity < model.MinCoffeeServings {
			return newRuleError(KindCoffeeQuantityRequired, "coffee quantity is required when coffee option is enabled")
		}
		if _, err := model.NewCoffeeQuantity(*quantity); err != nil {
			return newRuleError(KindCoffeeQuantityExceeded, "%s", err.Error())
		}
		return nil
	}

	if quantity != nil && *quantity > 0 {
		return newRuleError(KindCoffeeQuantityUnexpected, "coffee quantity must not be set when coffee option is disabled")
	}
	return nil
}

// CanModify reports whether a booking may still be updated. Only bookings
// that have not started yet are modifiable.
func CanModify(b *model.Booking, now time.Time) bool {
	return b.IsActive() && now.Before(b.StartTime)
}

// CanCancel reports whether a booking may still be cancelled. A booking in
// progress can be cancelled, a finished one cannot.
func CanCancel(b *model.Booking, now time.Time) bool {
	return b.IsActive() && now.Before(b.EndTime)
}
