package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	store *Store
	rules Rules
}

func NewService(store *Store, rules Rules) *Service {
	return &Service{store: store, rules: rules}
}

// CheckIn records the employee's arrival for today.
func (s *Service) CheckIn(ctx context.Context, employeeID string) (*Record, error) {
	now := time.Now().UTC()
	date := now.Format(DateLayout)

	existing, err := s.store.GetDay(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.CheckIn != nil {
		return nil, ErrAlreadyCheckedIn
	}

	status := StatusPresent
	if s.rules.IsLate(now) {
		status = StatusLate
	}

	if existing == nil {
		record := &Record{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Date:       date,
			CheckIn:    &now,
			Status:     status,
		}
		if err := s.store.Create(ctx, record); err != nil {
			return nil, err
		}
		return record, nil
	}

	existing.CheckIn = &now
	existing.Status = status
	if err := s.store.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// CheckOut records the employee's departure for today.
func (s *Service) CheckOut(ctx context.Context, employeeID string) (*Record, error) {
	now := time.Now().UTC()
	date := now.Format(DateLayout)

	record, err := s.store.GetDay(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if record == nil || record.CheckIn == nil {
		return nil, ErrNotCheckedIn
	}

	record.CheckOut = &now
	if err := s.store.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]*Record, error) {
	return s.store.FindRange(ctx, employeeID, start.Format(DateLayout), end.Format(DateLayout))
}

// WindowStats summarizes the employee's attendance over the window.
func (s *Service) WindowStats(ctx context.Context, employeeID string, start, end time.Time) (Stats, error) {
	records, err := s.store.FindRange(ctx, employeeID, start.Format(DateLayout), end.Format(DateLayout))
	if err != nil {
		return Stats{}, err
	}
	return SummarizeWindow(records, s.rules, start, end), nil
}
