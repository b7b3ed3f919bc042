package conflict

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomly/pkg/model"
)

type mockOverlapStore struct {
	findOverlappingFunc func(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]*model.Booking, error)
}

func (m *mockOverlapStore) FindOverlapping(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]*model.Booking, error) {
	return m.findOverlappingFunc(ctx, roomID, interval, excludeID)
}

var base = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func booking(id string, startOffset, endOffset time.Duration) *model.Booking {
	return &model.Booking{
		ID:        id,
		RoomID:    "room-1",
		StartTime: base.Add(startOffset),
		EndTime:   base.Add(endOffset),
	}
}

func TestFindConflicts(t *testing.T) {
	deleted := base

	tests := []struct {
		name      string
		stored    []*model.Booking
		interval  model.Interval
		excludeID string
		wantIDs   []string
	}{
		{
			name:     "no bookings means no conflicts",
			stored:   nil,
			interval: model.Interval{Start: base, End: base.Add(time.Hour)},
			wantIDs:  nil,
		},
		{
			name: "overlapping booking conflicts",
			stored: []*model.Booking{
				booking("b1", 0, 2*time.Hour),
			},
			interval: model.Interval{Start: base.Add(time.Hour), End: base.Add(3 * time.Hour)},
			wantIDs:  []string{"b1"},
		},
		{
			name: "back to back is not a conflict",
			stored: []*model.Booking{
				booking("b1", 0, time.Hour),
			},
			interval: model.Interval{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)},
			wantIDs:  nil,
		},
		{
			name: "excluded booking is skipped",
			stored: []*model.Booking{
				booking("b1", 0, 2*time.Hour),
				booking("b2", time.Hour, 3*time.Hour),
			},
			interval:  model.Interval{Start: base, End: base.Add(2 * time.Hour)},
			excludeID: "b1",
			wantIDs:   []string{"b2"},
		},
		{
			name: "soft deleted booking does not conflict",
			stored: []*model.Booking{
				func() *model.Booking {
					b := booking("b1", 0, 2*time.Hour)
					b.DeletedAt = &deleted
					return b
				}(),
			},
			interval: model.Interval{Start: base, End: base.Add(time.Hour)},
			wantIDs:  nil,
		},
		{
			name: "contained interval conflicts",
			stored: []*model.Booking{
				booking("b1", 0, 4*time.Hour),
			},
			interval: model.Interval{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)},
			wantIDs:  []string{"b1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockOverlapStore{
				findOverlappingFunc: func(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]*model.Booking, error) {
					return tt.stored, nil
				},
			}
			detector := NewDetector(store)

			conflicts, err := detector.FindConflicts(context.Background(), "room-1", tt.interval, tt.excludeID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var gotIDs []string
			for _, c := range conflicts {
				gotIDs = append(gotIDs, c.ID)
			}

			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("expected conflicts %v, got %v", tt.wantIDs, gotIDs)
			}
			for i := range gotIDs {
				if gotIDs[i] != tt.wantIDs[i] {
					t.Errorf("expected conflict %q at %d, got %q", tt.wantIDs[i], i, gotIDs[i])
				}
			}
		})
	}
}

func TestFindConflictsStoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := &mockOverlapStore{
		findOverlappingFunc: func(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]*model.Booking, error) {
			return nil, storeErr
		},
	}
	detector := NewDetector(store)

	_, err := detector.FindConflicts(context.Background(), "room-1", model.Interval{Start: base, End: base.Add(time.Hour)}, "")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestIsAvailable(t *testing.T) {
	store := &mockOverlapStore{
		findOverlappingFunc: func(ctx context.Context, roomID string, interval model.Interval, excludeID string) ([]*model.Booking, error) {
			return []*model.Booking{booking("b1", 0, 2*time.Hour)}, nil
		},
	}
	detector := NewDetector(store)

	available, conflicts, err := detector.IsAvailable(context.Background(), "room-1", model.Interval{Start: base.Add(time.Hour), End: base.Add(3 * time.Hour)}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if available {
		t.Error("expected room to be unavailable")
	}
	if len(conflicts) != 1 || conflicts[0].ID != "b1" {
		t.Errorf("expected conflict b1, got %v", conflicts)
	}
}
