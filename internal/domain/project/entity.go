package project

import "time"

type ProjectStatus string

const (
	StatusActive    ProjectStatus = "active"
	StatusCompleted ProjectStatus = "completed"
	StatusArchived  ProjectStatus = "archived"
)

// Project is one piece of rostered work: a possession, a maintenance
// contract, a depot's running roster. Every pattern, team, and assignment
// hangs off exactly one project.
type Project struct {
	ID        string
	OrgID     string
	Name      string
	Code      string // short planner-facing reference, unique per org
	LineRef   *string
	Status    ProjectStatus
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
