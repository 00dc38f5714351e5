package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)

	// GetByDate returns nil when the date is not a holiday
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)

	// ListBetween returns holidays in [start, end] ordered by date
	ListBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
