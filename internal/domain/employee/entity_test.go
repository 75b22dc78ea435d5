package employee

import (
	"testing"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestEmployeeMonthActivation(t *testing.T) {
	e := Employee{ActivatedMonths: []string{"2026-01", "2026-03"}}
	assert.True(t, e.IsMonthActivated("2026-03"))
	assert.False(t, e.IsMonthActivated("2026-02"))
}

func TestEmployeeReviewChain(t *testing.T) {
	e := Employee{MentorID: strPtr("m1"), ManagerID: strPtr("mg1")}

	chain := e.ReviewChain()
	id, ok := chain.Reviewer(submission.RoleMentor)
	assert.True(t, ok)
	assert.Equal(t, "m1", id)
	_, ok = chain.Reviewer(submission.RoleSupervisor)
	assert.False(t, ok)

	assert.True(t, e.IsReviewedBy("mg1"))
	assert.False(t, e.IsReviewedBy("x"))
}

func TestAddReadingRequestValidate(t *testing.T) {
	req := AddReadingRequest{Kind: "novel", Amount: 0, ReadOn: "2026-13-01"}
	err := req.Validate()
	assert.Error(t, err)
	for _, field := range []string{"kind", "title", "amount", "read_on"} {
		assert.Contains(t, err.Error(), field)
	}

	ok := AddReadingRequest{Kind: "quran", Title: "Al-Kahfi", Amount: 4, ReadOn: "2026-03-06"}
	assert.NoError(t, ok.Validate())
}
