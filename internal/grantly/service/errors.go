package service

import (
	"errors"
	"strings"
)

var (
	ErrInvalidActor       = errors.New("actor is required")
	ErrInvalidResource    = errors.New("resource is required")
	ErrInvalidApplication = errors.New("student_id and scholarship_id are required")
	ErrInvalidStatus      = errors.New("invalid application status")
	ErrInvalidScholarship = errors.New("scholarship_id is required")

	// ErrAuditWrite means the audit ledger could not durably record an
	// attempt. It is fatal for the attempt: bookkeeping failure is never
	// downgraded to a policy denial or silently swallowed.
	ErrAuditWrite = errors.New("audit write failed")
)

// PolicyViolationError is returned when the write window denies a mutation.
// The attempt has already been audited by the time the caller sees this.
type PolicyViolationError struct {
	Reasons []string
}

func (e *PolicyViolationError) Error() string {
	return "restricted: " + strings.Join(e.Reasons, ", ")
}

// IsPolicyViolation reports whether err is (or wraps) a write-window denial.
func IsPolicyViolation(err error) bool {
	var pv *PolicyViolationError
	return errors.As(err, &pv)
}
