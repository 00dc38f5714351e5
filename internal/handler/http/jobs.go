package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/cron"
)

type JobHandler interface {
	RunAbsenceSweep(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	absence *cron.AbsenceJobs
}

func NewJobHandler(absence *cron.AbsenceJobs) JobHandler {
	return &jobHandlerImpl{
		absence: absence,
	}
}

type absenceSweepResponse struct {
	Created int `json:"created"`
}

// RunAbsenceSweep runs the daily absence sweep now, ignoring the scheduled hour.
func (h *jobHandlerImpl) RunAbsenceSweep(w http.ResponseWriter, r *http.Request) {
	created, err := h.absence.RunDailyAbsenceSweep(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence sweep completed", absenceSweepResponse{Created: created})
}
