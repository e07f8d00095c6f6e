package employee

import (
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID               string     `json:"id"`
	UserID           *string    `json:"user_id,omitempty"`
	EmployeeCode     string     `json:"employee_code"`
	FullName         string     `json:"full_name"`
	Depot            string     `json:"depot"`
	PrimaryDuty      string     `json:"primary_duty"`
	SafetyCardNumber *string    `json:"safety_card_number,omitempty"`
	SafetyCardExpiry *string    `json:"safety_card_expiry,omitempty"`
	PhoneNumber      *string    `json:"phone_number,omitempty"`
	HireDate         string     `json:"hire_date"`
	ResignationDate  *string    `json:"resignation_date,omitempty"`
	EmploymentStatus string     `json:"employment_status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		UserID:           e.UserID,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		Depot:            e.Depot,
		PrimaryDuty:      string(e.PrimaryDuty),
		SafetyCardNumber: e.SafetyCardNumber,
		PhoneNumber:      e.PhoneNumber,
		HireDate:         e.HireDate.Format("2006-01-02"),
		EmploymentStatus: string(e.EmploymentStatus),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		DeletedAt:        e.DeletedAt,
	}
	if e.SafetyCardExpiry != nil {
		expiry := e.SafetyCardExpiry.Format("2006-01-02")
		resp.SafetyCardExpiry = &expiry
	}
	if e.ResignationDate != nil {
		resigned := e.ResignationDate.Format("2006-01-02")
		resp.ResignationDate = &resigned
	}
	return resp
}

type CreateEmployeeRequest struct {
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Depot            string  `json:"depot"`
	PrimaryDuty      string  `json:"primary_duty"`
	SafetyCardNumber *string `json:"safety_card_number,omitempty"`
	SafetyCardExpiry *string `json:"safety_card_expiry,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	HireDate         string  `json:"hire_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must match NNNN-NNNN",
		})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if validator.IsEmpty(r.Depot) {
		errs = append(errs, validator.ValidationError{
			Field:   "depot",
			Message: "depot is required",
		})
	}
	if !validator.IsInSlice(r.PrimaryDuty, roster.DutyTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "primary_duty",
			Message: "primary_duty must be a known duty type",
		})
	}
	if _, valid := validator.IsValidDate(r.HireDate); validator.IsEmpty(r.HireDate) || !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	}
	if r.SafetyCardExpiry != nil {
		if _, valid := validator.IsValidDate(*r.SafetyCardExpiry); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "safety_card_expiry",
				Message: "safety_card_expiry must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	FullName         *string `json:"full_name,omitempty"`
	Depot            *string `json:"depot,omitempty"`
	PrimaryDuty      *string `json:"primary_duty,omitempty"`
	SafetyCardNumber *string `json:"safety_card_number,omitempty"`
	SafetyCardExpiry *string `json:"safety_card_expiry,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
	ResignationDate  *string `json:"resignation_date,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name cannot be empty",
		})
	}
	if r.PrimaryDuty != nil && !validator.IsInSlice(*r.PrimaryDuty, roster.DutyTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "primary_duty",
			Message: "primary_duty must be a known duty type",
		})
	}
	if r.EmploymentStatus != nil {
		valid := []string{
			string(EmploymentStatusActive),
			string(EmploymentStatusResigned),
			string(EmploymentStatusTerminated),
		}
		if !validator.IsInSlice(*r.EmploymentStatus, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_status",
				Message: "employment_status must be one of active, resigned, terminated",
			})
		}
	}
	if r.SafetyCardExpiry != nil {
		if _, valid := validator.IsValidDate(*r.SafetyCardExpiry); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "safety_card_expiry",
				Message: "safety_card_expiry must be in YYYY-MM-DD format",
			})
		}
	}
	if r.ResignationDate != nil {
		if _, valid := validator.IsValidDate(*r.ResignationDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "resignation_date",
				Message: "resignation_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
