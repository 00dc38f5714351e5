package employee

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
)

type EmployeeResponse struct {
	ID               string  `json:"id"`
	UserID           *string `json:"user_id,omitempty"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	DepartmentID     *string `json:"department_id,omitempty"`
	HireDate         *string `json:"hire_date,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
	CreatedAt        string  `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		FullName:         e.FullName,
		Email:            e.Email,
		DepartmentID:     e.DepartmentID,
		EmploymentStatus: string(e.EmploymentStatus),
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
	}
	if e.HireDate != nil {
		hd := utils.FormatDate(*e.HireDate)
		resp.HireDate = &hd
	}
	return resp
}
