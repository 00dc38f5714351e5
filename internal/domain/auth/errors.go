package auth

import "errors"

var (
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrAdminPrivilegeRequired   = errors.New("admin privilege required")
	ErrEmployeeIdentityRequired = errors.New("token is not linked to an employee")
	ErrInvalidRole              = errors.New("role must be one of: admin, employee")
)
