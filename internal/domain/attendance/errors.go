package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn      = errors.New("you have already checked in today, please check out first")
	ErrNotCheckedIn          = errors.New("no check-in found for today, please check in first")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time cannot be earlier than check-in time")
	ErrDuplicateWorkDate     = errors.New("an attendance record already exists for this work date")

	// General errors
	ErrAttendanceNotFound         = errors.New("attendance record not found")
	ErrAttendanceAlreadyProcessed = errors.New("only pending attendance records can be approved or rejected")
	ErrNotRecordOwner             = errors.New("you can only update your own attendance records")
)
