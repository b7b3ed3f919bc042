package conflict

import (
	"context"

	"roomly/pkg/model"
)

// OverlapStore is the slice of the booking store the detector needs. The
// store is expected to return only active bookings for the room whose
// stored interval overlaps the candidate one.
type OverlapStore interface {
	FindOverlapping(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]*model.Booking, error)
}

// Detector answers "does this interval collide with an existing booking in
// this room". It re-checks every candidate in memory so a store that
// over-fetches (or a mock that ignores the interval) still yields correct
// results.
type Detector struct {
	store OverlapStore
}

func NewDetector(store OverlapStore) *Detector {
	return &Detector{store: store}
}

// FindConflicts returns the active bookings in roomID whose interval
// overlaps the candidate. excludeID skips a booking being updated so it
// does not conflict with itself; pass "" on create.
func (d *Detector) FindConflicts(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]*model.Booking, error) {
	candidates, err := d.store.FindOverlapping(ctx, roomID, interval, excludeID)
	if err != nil {
		return nil, err
	}

	var conflicts []*model.Booking
	for _, b := range candidates {
		if b.ID == excludeID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if interval.Overlaps(b.Interval()) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts, nil
}

// IsAvailable reports whether the room has no conflicting booking in the
// interval.
func (d *Detector) IsAvailable(ctx context.Context, roomID string, interval model.Interval, excludeID string) (bool, []*model.Booking, error) {
	conflicts, err := d.FindConflicts(ctx, roomID, interval, excludeID)
	if err != nil {
		return false, nil, err
	}
	return len(conflicts) == 0, conflicts, nil
}
