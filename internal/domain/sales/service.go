package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("invalid sales call input")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) LogCall(ctx context.Context, employeeID, clientName, outcome, notes string, dealValue float64, callTime time.Time) (*Call, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee id required", ErrValidation)
	}
	if !ValidOutcome(outcome) {
		return nil, fmt.Errorf("%w: unknown outcome %q", ErrValidation, outcome)
	}
	if dealValue < 0 {
		return nil, fmt.Errorf("%w: deal value must not be negative", ErrValidation)
	}
	if callTime.IsZero() {
		callTime = time.Now().UTC()
	}

	call := &Call{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		ClientName: clientName,
		Outcome:    outcome,
		DealValue:  dealValue,
		Notes:      notes,
		CallTime:   callTime,
	}
	if err := s.store.Insert(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}

func (s *Service) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]*Call, error) {
	return s.store.FindRange(ctx, employeeID, start, end)
}

// WindowTotals folds the employee's calls in the window into the
// counters a performance snapshot needs.
func (s *Service) WindowTotals(ctx context.Context, employeeID string, start, end time.Time) (Totals, error) {
	calls, err := s.store.FindRange(ctx, employeeID, start, end)
	if err != nil {
		return Totals{}, err
	}
	return Summarize(calls), nil
}
