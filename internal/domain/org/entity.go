package org

import "time"

// Organisation is the tenant: an infrastructure contractor or operator.
// Every other row in the system is scoped to exactly one organisation.
type Organisation struct {
	ID        string
	Name      string
	Slug      string // URL-safe unique handle, chosen at registration
	CreatedAt time.Time
	UpdatedAt time.Time
}
