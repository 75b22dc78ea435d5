package submission

import "errors"

var (
	ErrSubmissionNotFound = errors.New("Submission not found")
	ErrInvalidTransition  = errors.New("Submission cannot move to the requested state")
	ErrReviewerMismatch   = errors.New("You are not the reviewer assigned to this stage")
	ErrUnsavedChanges     = errors.New("Save your changes before submitting")
	ErrWindowNotOpen      = errors.New("Submission for this month is not yet open")
	ErrNoMentorAssigned   = errors.New("No mentor is assigned to this employee")
)
