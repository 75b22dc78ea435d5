// Package validator holds field checks shared by request DTOs.
package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects every failing field so a response can report
// them together.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// ToMap keys messages by field. A repeated field keeps its first message.
func (v ValidationErrors) ToMap() map[string]string {
	out := make(map[string]string, len(v))
	for _, e := range v {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e.Message
		}
	}
	return out
}

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns v as an error, or nil when empty.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidUUID accepts the canonical 36 character form of any version.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// IsValidDate parses a "YYYY-MM-DD" date.
func IsValidDate(s string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, s)
	return d, err == nil
}

// IsValidMonth checks the "YYYY-MM" month key format.
func IsValidMonth(s string) bool {
	_, err := time.Parse(monthLayout, s)
	return err == nil
}

// IsDateInMonth reports whether a "YYYY-MM-DD" date lies in a "YYYY-MM" month.
func IsDateInMonth(date, month string) bool {
	d, ok := IsValidDate(date)
	return ok && IsValidMonth(month) && d.Format(monthLayout) == month
}

func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
