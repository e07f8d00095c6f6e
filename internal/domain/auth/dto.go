package auth

import "github.com/railsafe/roster-backend-go/internal/pkg/validator"

type RegisterRequest struct {
	OrgName         string `json:"org_name"`
	OrgSlug         string `json:"org_slug"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	// Organisation
	if validator.IsEmpty(r.OrgName) {
		errs = append(errs, validator.ValidationError{
			Field:   "org_name",
			Message: "org_name is required",
		})
	}
	if len(r.OrgName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "org_name",
			Message: "org_name must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.OrgSlug) {
		errs = append(errs, validator.ValidationError{
			Field:   "org_slug",
			Message: "org_slug is required",
		})
	}
	if len(r.OrgSlug) < 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "org_slug",
			Message: "org_slug must be at least 3 characters long",
		})
	}
	if len(r.OrgSlug) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "org_slug",
			Message: "org_slug must not exceed 50 characters",
		})
	}
	if !validator.IsValidSlug(r.OrgSlug) {
		errs = append(errs, validator.ValidationError{
			Field:   "org_slug",
			Message: "org_slug may only contain letters, numbers, dots, underscores, and hyphens",
		})
	}

	// Email
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if len(r.Email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	} else if len(r.Password) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.ConfirmPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "confirm_password is required",
		})
	} else if r.ConfirmPassword != r.Password {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "password and confirm_password do not match",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LoginEmployeeCodeRequest signs a worker in with their organisation slug
// and personnel code instead of an email address.
type LoginEmployeeCodeRequest struct {
	OrgSlug      string `json:"org_slug"`
	EmployeeCode string `json:"employee_code"`
	Password     string `json:"password"`
}

func (r *LoginEmployeeCodeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OrgSlug) {
		errs = append(errs, validator.ValidationError{
			Field:   "org_slug",
			Message: "org_slug is required",
		})
	} else if !validator.IsValidSlug(r.OrgSlug) {
		errs = append(errs, validator.ValidationError{
			Field:   "org_slug",
			Message: "org_slug may only contain letters, numbers, dots, underscores, and hyphens",
		})
	}

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

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		})
	}
	if len(r.RefreshToken) > 1024 {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token must not exceed 1024 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
