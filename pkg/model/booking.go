package model

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

const (
	MinCoffeeServings = 1
	MaxCoffeeServings = 50
)

// CoffeeQuantity is a validated servings count. It can only be obtained
// through NewCoffeeQuantity, so a value outside [1, 50] cannot exist.
type CoffeeQuantity int

func NewCoffeeQuantity(n int) (CoffeeQuantity, error) {
	if n < MinCoffeeServings {
		return 0, fmt.Errorf("coffee quantity must be at least %d, got %d", MinCoffeeServings, n)
	}
	if n > MaxCoffeeServings {
		return 0, fmt.Errorf("coffee quantity cannot exceed %d servings, got %d", MaxCoffeeServings, n)
	}
	return CoffeeQuantity(n), nil
}

// ActiveFilter makes the "active" scoping of store queries explicit at every
// call site instead of a repeated inline deleted_at convention.
type ActiveFilter int

const (
	ActiveOnly ActiveFilter = iota
	IncludeDeleted
)

type Booking struct {
	ID                string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	RoomID            string     `json:"room_id" bson:"room_id" validate:"required,uuid4"`
	ManagerID         string     `json:"manager_id" bson:"manager_id" validate:"required,uuid4"`
	Name              string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description       string     `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	StartTime         time.Time  `json:"start_time" bson:"start_time" validate:"required"`
	EndTime           time.Time  `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	CoffeeOption      bool       `json:"coffee_option" bson:"coffee_option"`
	CoffeeQuantity    *int       `json:"coffee_quantity,omitempty" bson:"coffee_quantity,omitempty"`
	CoffeeDescription string     `json:"coffee_description,omitempty" bson:"coffee_description,omitempty" validate:"omitempty,max=500"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}

type BookingUpdate struct {
	Name              string     `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description       *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	StartTime         *time.Time `json:"start_time,omitempty"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	CoffeeOption      *bool      `json:"coffee_option,omitempty"`
	CoffeeQuantity    *int       `json:"coffee_quantity,omitempty"`
	CoffeeDescription *string    `json:"coffee_description,omitempty" validate:"omitempty,max=500"`
}

// IsActive is the single "not soft-deleted" predicate. Every query and rule
// that cares about liveness goes through here.
func (b *Booking) IsActive() bool {
	return b.DeletedAt == nil
}

func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// Status derives the lifecycle label at a point in time. "completed" is a
// view, not a stored state, so it is computed here and nowhere else.
func (b *Booking) Status(now time.Time) BookingStatus {
	if !b.IsActive() {
		return StatusCancelled
	}
	switch {
	case now.Before(b.StartTime):
		return StatusScheduled
	case now.Before(b.EndTime):
		return StatusInProgress
	default:
		return StatusCompleted
	}
}

// BookingSummary is the compact shape returned with availability conflicts.
type BookingSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ManagerID string    `json:"manager_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (b *Booking) Summary() BookingSummary {
	return BookingSummary{
		ID:        b.ID,
		Name:      b.Name,
		ManagerID: b.ManagerID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}
