package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate checks the structural tags on request schemas before anything
// reaches the service layer. Domain rules (password policy, role literals,
// uniqueness) stay in the services.
var validate = validator.New()

// decodeJSON parses and tag-validates a JSON request body into dst. It
// returns a user-facing description on failure, empty on success.
func decodeJSON(r *http.Request, dst any) string {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return "Invalid JSON body"
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return "Invalid field: " + verrs[0].Field()
		}
		return "Invalid request body"
	}
	return ""
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token      string    `json:"token"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
}

type RegisterRequest struct {
	Username     string `json:"username" validate:"required"`
	Password     string `json:"password" validate:"required"`
	Confirmation string `json:"confirmation" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Privacy      string `json:"privacy" validate:"required,oneof=public private"`

	CitizenID           string `json:"citizen_id,omitempty"`
	FinancialID         string `json:"financial_id,omitempty"`
	Employer            string `json:"employer,omitempty"`
	Function            string `json:"function,omitempty"`
	Address             string `json:"address,omitempty"`
	EmployerFinancialID string `json:"employer_financial_id,omitempty"`
}

// AttributesRequest is a partial update; absent fields are left untouched.
type AttributesRequest struct {
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Name         string `json:"name,omitempty"`
	Password     string `json:"password,omitempty"`
	Confirmation string `json:"confirmation,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Privacy      string `json:"privacy,omitempty" validate:"omitempty,oneof=public private"`
	Role         string `json:"role,omitempty"`
	State        string `json:"state,omitempty"`

	CitizenID           string `json:"citizen_id,omitempty"`
	FinancialID         string `json:"financial_id,omitempty"`
	Employer            string `json:"employer,omitempty"`
	Function            string `json:"function,omitempty"`
	Address             string `json:"address,omitempty"`
	EmployerFinancialID string `json:"employer_financial_id,omitempty"`
}

type RoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type StateRequest struct {
	State string `json:"state" validate:"required"`
}

type PasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	Confirmation    string `json:"confirmation" validate:"required"`
}

type WorksheetCreateRequest struct {
	WorkReference string `json:"work_reference" validate:"required"`
	Description   string `json:"description" validate:"required"`
	TargetType    string `json:"target_type" validate:"required"`
	AwardStatus   string `json:"award_status" validate:"required"`

	AwardDate              string `json:"award_date,omitempty"`
	ExpectedStartDate      string `json:"expected_start_date,omitempty"`
	ExpectedCompletionDate string `json:"expected_completion_date,omitempty"`
	EntityAccount          string `json:"entity_account,omitempty"`
	AwardingEntity         string `json:"awarding_entity,omitempty"`
	CompanyTaxID           string `json:"company_tax_id,omitempty"`
	WorkStatus             string `json:"work_status,omitempty"`
	Notes                  string `json:"notes,omitempty"`
}

// WorksheetUpdateRequest is a partial update; absent fields are left
// untouched.
type WorksheetUpdateRequest struct {
	AwardDate              string `json:"award_date,omitempty"`
	ExpectedStartDate      string `json:"expected_start_date,omitempty"`
	ExpectedCompletionDate string `json:"expected_completion_date,omitempty"`
	EntityAccount          string `json:"entity_account,omitempty"`
	AwardingEntity         string `json:"awarding_entity,omitempty"`
	CompanyTaxID           string `json:"company_tax_id,omitempty"`
	WorkStatus             string `json:"work_status,omitempty"`
	Notes                  string `json:"notes,omitempty"`
}
