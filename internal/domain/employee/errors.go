package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeCodeExists      = errors.New("employee code already exists")
	ErrInvalidEmployeeCode     = errors.New("invalid employee code format")
	ErrInvalidDutyType         = errors.New("invalid duty type")
	ErrFutureDateNotAllowed    = errors.New("date cannot be in the future")
	ErrUnauthorized            = errors.New("unauthorized to access this employee")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
	ErrCannotDeleteSelf        = errors.New("cannot delete your own employee record")
)
