package compliance

import "errors"

var (
	ErrEmployeeIDRequired = errors.New("employee ID is required")
	ErrProjectIDRequired  = errors.New("project ID is required")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
)
