package attendance

import "errors"

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNotCheckedIn     = errors.New("no check-in recorded today")
	ErrRecordNotFound   = errors.New("attendance record not found")
)
