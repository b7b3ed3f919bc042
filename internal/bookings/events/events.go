package events

import (
	"context"
	"time"

	"roomly/pkg/kafka"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

const (
	TopicBookingCreated   = "booking.created"
	TopicBookingUpdated   = "booking.updated"
	TopicBookingCancelled = "booking.cancelled"

	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"

	source = "bookings-service"
)

// BookingEvent is the payload published on every lifecycle transition.
type BookingEvent struct {
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	ManagerID  string    `json:"manager_id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits booking lifecycle events. Messages are keyed by room so
// consumers see events for one room in order. Publishing is best effort:
// failures are logged, never surfaced to the API caller.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingUpdated(ctx context.Context, booking *model.Booking)
	BookingCancelled(ctx context.Context, booking *model.Booking)
	Close() error
}

type sender interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	created   sender
	updated   sender
	cancelled sender
	log       *logger.Logger
	now       func() time.Time
}

func NewKafkaPublisher(created, updated, cancelled *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		created:   created,
		updated:   updated,
		cancelled: cancelled,
		log:       log,
		now:       time.Now,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, p.created, EventBookingCreated, booking)
}

func (p *kafkaPublisher) BookingUpdated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, p.updated, EventBookingUpdated, booking)
}

func (p *kafkaPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, p.cancelled, EventBookingCancelled, booking)
}

func (p *kafkaPublisher) publish(ctx context.Context, s sender, eventType string, booking *model.Booking) {
	now := p.now()
	event := BookingEvent{
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		ManagerID:  booking.ManagerID,
		Name:       booking.Name,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		Status:     string(booking.Status(now)),
		OccurredAt: now,
	}

	msg := kafka.NewMessage().
		WithKey(booking.RoomID).
		WithValue(event).
		WithEventType(eventType).
		WithSource(source).
		Build()

	if err := s.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"room_id", booking.RoomID,
			"error", err,
		)
		return
	}

	p.log.Info("Booking event published",
		"event_type", eventType,
		"booking_id", booking.ID,
		"room_id", booking.RoomID,
	)
}

func (p *kafkaPublisher) Close() error {
	var firstErr error
	for _, s := range []sender{p.created, p.updated, p.cancelled} {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NoopPublisher is used when events are disabled by configuration.
type NoopPublisher struct{}

func (NoopPublisher) BookingCreated(context.Context, *model.Booking)   {}
func (NoopPublisher) BookingUpdated(context.Context, *model.Booking)   {}
func (NoopPublisher) BookingCancelled(context.Context, *model.Booking) {}
func (NoopPublisher) Close() error                                     { return nil }
