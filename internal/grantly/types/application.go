package types

import "time"

// ApplicationStatus values accepted by UpdateStatus.
const (
	AppSubmitted   = "submitted"
	AppUnderReview = "under_review"
	AppApproved    = "approved"
	AppRejected    = "rejected"
)

func ValidApplicationStatus(s string) bool {
	switch s {
	case AppSubmitted, AppUnderReview, AppApproved, AppRejected:
		return true
	}
	return false
}

type Application struct {
	ID            string    `json:"application_id"`
	StudentID     string    `json:"student_id"`
	ScholarshipID string    `json:"scholarship_id"`
	Status        string    `json:"status"`
	SubmittedAt   time.Time `json:"submitted_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Student struct {
	ID    string  `json:"student_id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	GPA   float64 `json:"gpa"`
}

type Scholarship struct {
	ID          string  `json:"scholarship_id"`
	Name        string  `json:"name"`
	MinGPA      float64 `json:"min_gpa"`
	AmountCents int64   `json:"amount_cents"`
}
