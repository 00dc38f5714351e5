package holiday

import (
	"context"
	"time"
)

// Calendar is the read-only lookup consumed by attendance and the absence sweep.
type Calendar interface {
	// HolidayName returns the holiday name and true when date is a declared holiday.
	HolidayName(ctx context.Context, date time.Time) (string, bool, error)
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

type HolidayService interface {
	Calendar

	ListByYear(ctx context.Context, year int) ([]HolidayResponse, error)
	ListByRange(ctx context.Context, req RangeRequest) ([]HolidayResponse, error)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}
