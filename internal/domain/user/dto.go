package user

import (
	"strings"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
)

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Role: u.Role, EmployeeID: u.EmployeeID}
}

// CreateUserRequest provisions an account. Employee accounts must be linked
// to an employee record; admin accounts may stand alone.
type CreateUserRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       Role    `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	if msg := PasswordProblem(r.Password); msg != "" {
		errs.Add("password", msg)
	}

	switch r.Role {
	case RoleEmployee:
		if r.EmployeeID == nil || !validator.IsValidUUID(*r.EmployeeID) {
			errs.Add("employee_id", "employee accounts must be linked to an employee id")
		}
	case RoleAdmin:
		if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
			errs.Add("employee_id", "invalid employee id")
		}
	default:
		errs.Add("role", "role must be admin or employee")
	}

	return errs.Err()
}

// PasswordProblem describes why password is unacceptable, or returns "".
func PasswordProblem(password string) string {
	switch {
	case validator.IsEmpty(password):
		return "password is required"
	case len(password) < 8:
		return "password must be at least 8 characters"
	case len(password) > 72:
		return "password must not exceed 72 bytes"
	}
	return ""
}
