package performance

import (
	"context"
	"time"
)

type StoreAPI interface {
	Get(ctx context.Context, id string) (*Performance, error)
	Find(ctx context.Context, employeeID, period string, start, end time.Time) (*Performance, error)
	Insert(ctx context.Context, record *Performance) error
	Replace(ctx context.Context, record *Performance) error
	ListByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]*Performance, error)
}
