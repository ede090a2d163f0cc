package performance

import "errors"

var (
	ErrSnapshotNotFound  = errors.New("performance record not found")
	ErrDuplicateSnapshot = errors.New("performance record already exists for employee and period")
	ErrValidation        = errors.New("invalid performance input")
)
