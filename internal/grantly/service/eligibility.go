package service

import (
	"context"
	"strings"

	"github.com/grantlyhq/grantly/internal/grantly/store"
	"github.com/grantlyhq/grantly/internal/grantly/types"
)

// EligibilityService answers the read-only retrieval queries. It never
// mutates anything and therefore never touches the gate.
type EligibilityService struct {
	apps store.ApplicationStore
}

func NewEligibilityService(apps store.ApplicationStore) *EligibilityService {
	return &EligibilityService{apps: apps}
}

func (s *EligibilityService) EligibleStudents(ctx context.Context, scholarshipID string) ([]types.Student, error) {
	scholarshipID = strings.TrimSpace(scholarshipID)
	if scholarshipID == "" {
		return nil, ErrInvalidScholarship
	}
	return s.apps.EligibleStudents(ctx, scholarshipID)
}

func (s *EligibilityService) ApplicationStatus(ctx context.Context, applicationID string) (string, error) {
	app, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return "", err
	}
	return app.Status, nil
}
