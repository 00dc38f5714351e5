package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
)

type holidayRepository struct {
	*Store
}

func NewHolidayRepository(s *Store) holiday.HolidayRepository {
	return &holidayRepository{Store: s}
}

func (h *holidayRepository) Create(ctx context.Context, hol holiday.Holiday) (holiday.Holiday, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	hol.Date = utils.DateOf(hol.Date)
	for _, existing := range h.holidays {
		if existing.Date.Equal(hol.Date) {
			return holiday.Holiday{}, holiday.ErrHolidayAlreadyExists
		}
	}
	hol.ID = newID()
	hol.CreatedAt = h.Now()
	h.holidays[hol.ID] = hol
	return hol, nil
}

func (h *holidayRepository) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	hol, ok := h.holidays[id]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return hol, nil
}

func (h *holidayRepository) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, hol := range h.holidays {
		if hol.Date.Equal(utils.DateOf(date)) {
			return &hol, nil
		}
	}
	return nil, nil
}

func (h *holidayRepository) ListBetween(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := []holiday.Holiday{}
	for _, hol := range h.holidays {
		if !hol.Date.Before(start) && !hol.Date.After(end) {
			out = append(out, hol)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (h *holidayRepository) Delete(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(h.holidays, id)
	return nil
}
