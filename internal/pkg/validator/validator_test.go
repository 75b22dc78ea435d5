package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty(" \t "))
	assert.False(t, IsEmpty(" abc "))
}

func TestIsValidEmail(t *testing.T) {
	for _, email := range []string{"perawat@rsi.co.id", "user.name+1@domain.co", "a@b.cd"} {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range []string{"perawat@", "@rsi.co.id", "test@.com", "test@com", " ", ""} {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidUUID(t *testing.T) {
	for _, id := range []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-42d3-a456-426614174000",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	} {
		assert.True(t, IsValidUUID(id), id)
	}
	for _, id := range []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"urn:uuid:0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"",
	} {
		assert.False(t, IsValidUUID(id), id)
	}
}

func TestDatesAndMonths(t *testing.T) {
	_, ok := IsValidDate("2026-02-28")
	assert.True(t, ok)
	for _, s := range []string{"2026-13-01", "2026-02-30", "2026/01/01", ""} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}

	assert.True(t, IsValidMonth("2026-03"))
	for _, s := range []string{"2026-13", "2026-3", "03-2026", ""} {
		assert.False(t, IsValidMonth(s), s)
	}

	cases := []struct {
		date, month string
		want        bool
	}{
		{"2026-03-01", "2026-03", true},
		{"2026-03-31", "2026-03", true},
		{"2026-04-01", "2026-03", false},
		{"2026-02-30", "2026-02", false},
		{"2026-03-01", "bad", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsDateInMonth(c.date, c.month), c.date+" in "+c.month)
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.Err())

	errs.Add("email", "invalid")
	errs.Add("month", "required")
	errs.Add("email", "too long")

	assert.EqualError(t, errs.Err(), "email: invalid; month: required; email: too long")
	assert.Equal(t, map[string]string{"email": "invalid", "month": "required"}, errs.ToMap())
	assert.True(t, IsInSlice("month", []string{"email", "month"}))
	assert.False(t, IsInSlice("day", []string{"email", "month"}))
}
