package org

import "errors"

var (
	ErrOrgNotFound    = errors.New("organisation not found")
	ErrOrgSlugExists  = errors.New("organisation slug already exists")
	ErrInvalidSlug    = errors.New("organisation slug may only contain letters, numbers, dots, underscores, and hyphens")
	ErrInvalidOrgName = errors.New("organisation name cannot be empty")
)
