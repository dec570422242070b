package attendance

import "errors"

// Attendance domain errors
var (
	// ErrOutsideCheckInWindow is returned when a check-in is attempted outside
	// the administratively configured window; no record is created.
	ErrOutsideCheckInWindow = errors.New("check-in is outside the allowed window")

	// ErrInvalidTransition is returned for any check-in/check-out/undo attempt
	// the daily state machine does not permit.
	ErrInvalidTransition = errors.New("operation is not allowed in the current attendance state")

	// ErrRecordNotFound is returned when no attendance record exists for the
	// employee and day.
	ErrRecordNotFound = errors.New("attendance record not found")
)
