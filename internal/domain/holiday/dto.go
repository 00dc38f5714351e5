package holiday

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Name string `json:"name" validate:"notblank,max=200"`
}

func (r *CreateHolidayRequest) Validate() error {
	return validator.Struct(r)
}

type RangeRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (r *RangeRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	start, _ := utils.ParseDate(r.StartDate)
	end, _ := utils.ParseDate(r.EndDate)
	if start.After(end) {
		return validator.Single("start_date", utils.ErrInvalidDateRange.Error())
	}
	return nil
}

type HolidayResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID,
		Date:      utils.FormatDate(h.Date),
		Name:      h.Name,
		CreatedAt: h.CreatedAt.Format(time.RFC3339),
	}
}
