package project

import "errors"

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectCodeExists    = errors.New("project code already exists")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrProjectHasRoster     = errors.New("project still has assignments and cannot be deleted")
)
