package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Unit administrator - analytics, corrections, activation
	RoleEmployee Role = "employee" // Regular employee; reviewer duties come from the employee chain
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	// GoogleID is the Google account subject linked at first Google sign-in.
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
