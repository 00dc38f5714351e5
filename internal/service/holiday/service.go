package holiday

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(repo holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{HolidayRepository: repo}
}

// HolidayName implements holiday.Calendar.
func (s *HolidayServiceImpl) HolidayName(ctx context.Context, date time.Time) (string, bool, error) {
	h, err := s.HolidayRepository.GetByDate(ctx, utils.DateOf(date))
	if err != nil {
		return "", false, fmt.Errorf("failed to get holiday: %w", err)
	}
	if h == nil {
		return "", false, nil
	}
	return h.Name, true, nil
}

// IsHoliday implements holiday.Calendar.
func (s *HolidayServiceImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	_, ok, err := s.HolidayName(ctx, date)
	return ok, err
}

func toResponses(holidays []holiday.Holiday) []holiday.HolidayResponse {
	out := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		out = append(out, holiday.ToResponse(h))
	}
	return out
}

// ListByYear implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListByYear(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	if err := utils.ValidateMonthYear(1, year); err != nil {
		return nil, err
	}

	start, end := utils.YearRange(year)
	holidays, err := s.HolidayRepository.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return toResponses(holidays), nil
}

// ListByRange implements holiday.HolidayService.
func (s *HolidayServiceImpl) ListByRange(ctx context.Context, req holiday.RangeRequest) ([]holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := utils.ParseDate(req.StartDate)
	end, _ := utils.ParseDate(req.EndDate)
	holidays, err := s.HolidayRepository.ListBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return toResponses(holidays), nil
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := utils.ParseDate(req.Date)
	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		Date: date,
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayAlreadyExists) {
			return holiday.HolidayResponse{}, holiday.ErrHolidayAlreadyExists
		}
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return holiday.ToResponse(created), nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return holiday.ErrHolidayNotFound
		}
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}
