package notifier

import (
	"context"
	"fmt"
	"sync"

	"roomly/internal/bookings/events"
	"roomly/internal/directory"
	"roomly/pkg/kafka"
	"roomly/pkg/logger"
)

// Worker consumes booking lifecycle events and notifies the booking's
// manager. Delivery is a structured log line standing in for a real mail
// or chat integration.
type Worker struct {
	consumers []*kafka.Consumer
	lookup    directory.EntityLookup
	log       *logger.Logger
}

func NewWorker(consumers []*kafka.Consumer, lookup directory.EntityLookup, log *logger.Logger) *Worker {
	return &Worker{
		consumers: consumers,
		lookup:    lookup,
		log:       log,
	}
}

// Run blocks until the context is cancelled. Each consumer gets its own
// goroutine; the first hard error is returned after all of them stop.
func (w *Worker) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	errCh := make(chan error, len(w.consumers))

	for _, c := range w.consumers {
		wg.Add(1)
		go func(c *kafka.Consumer) {
			defer wg.Done()
			if err := c.Run(ctx, w.handle); err != nil && ctx.Err() == nil {
				errCh <- err
			}
		}(c)
	}

	wg.Wait()
	close(errCh)
	return <-errCh
}

func (w *Worker) handle(ctx context.Context, msg kafka.Message) error {
	var event events.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode booking event: %w", err)
	}

	recipient := "unknown"
	manager, err := w.lookup.FindManager(ctx, event.ManagerID)
	if err != nil {
		w.log.Warn("Failed to resolve manager for notification",
			"manager_id", event.ManagerID,
			"error", err,
		)
	} else if manager != nil {
		recipient = manager.Email
	}

	w.log.Info("Booking notification",
		"event_type", msg.GetEventType(),
		"event_id", msg.GetEventID(),
		"booking_id", event.BookingID,
		"room_id", event.RoomID,
		"recipient", recipient,
		"name", event.Name,
		"start_time", event.StartTime,
		"end_time", event.EndTime,
		"status", event.Status,
	)
	return nil
}

func (w *Worker) Close() error {
	var firstErr error
	for _, c := range w.consumers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
