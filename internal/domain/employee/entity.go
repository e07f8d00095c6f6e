package employee

import (
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/roster"
)

type Employee struct {
	ID               string
	UserID           *string
	OrgID            string
	EmployeeCode     string // depot prefix + personnel number, NNNN-NNNN
	FullName         string
	Depot            string
	PrimaryDuty      roster.DutyType
	SafetyCardNumber *string
	SafetyCardExpiry *time.Time
	PhoneNumber      *string
	HireDate         time.Time
	ResignationDate  *time.Time
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
