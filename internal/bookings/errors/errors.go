package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrRoomNotFound = errors.New("room not found")

	ErrManagerNotFound = errors.New("manager not found")

	ErrTimeConflict = errors.New("booking time conflicts with existing booking")

	ErrRoomLocked = errors.New("room is locked by another booking attempt")

	ErrInvalidTimeRange = errors.New("end time must be after start time")
)
