package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

// callerEmployeeID returns the caller's employee id. The route must sit behind
// middleware.EmployeeRequired.
func callerEmployeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return "", false
	}
	if identity.EmployeeID == nil {
		response.HandleError(w, auth.ErrEmployeeIdentityRequired)
		return "", false
	}
	return *identity.EmployeeID, true
}

// callerAdminID returns the acting administrator's user id.
func callerAdminID(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return "", false
	}
	if !identity.IsAdmin() {
		response.HandleError(w, auth.ErrAdminPrivilegeRequired)
		return "", false
	}
	return identity.UserID, true
}

// decodeJSON decodes the body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Debug("Failed to decode request body", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string) (*int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, validator.Single(key, key+" must be a number")
	}
	return &n, nil
}

// queryPage reads page and limit. Zero values are defaulted by the filter's Validate.
func queryPage(r *http.Request) (int, int, error) {
	page, err := queryInt(r, "page")
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return 0, 0, err
	}
	var p, l int
	if page != nil {
		p = *page
	}
	if limit != nil {
		l = *limit
	}
	return p, l, nil
}
