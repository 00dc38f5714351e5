package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	ListByYear(w http.ResponseWriter, r *http.Request)
	ListByRange(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	holidayService holiday.HolidayService
	clock          clock.Clock
}

func NewHolidayHandler(holidayService holiday.HolidayService, clk clock.Clock) HolidayHandler {
	return &holidayHandlerImpl{
		holidayService: holidayService,
		clock:          clk,
	}
}

// ListByYear implements HolidayHandler.
func (h *holidayHandlerImpl) ListByYear(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	y := h.clock.Now().Year()
	if year != nil {
		y = *year
	}

	results, err := h.holidayService.ListByYear(r.Context(), y)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListByRange implements HolidayHandler.
func (h *holidayHandlerImpl) ListByRange(w http.ResponseWriter, r *http.Request) {
	req := holiday.RangeRequest{
		StartDate: r.URL.Query().Get("start"),
		EndDate:   r.URL.Query().Get("end"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.holidayService.ListByRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Create implements HolidayHandler.
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", result)
}

// Delete implements HolidayHandler.
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.holidayService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}
