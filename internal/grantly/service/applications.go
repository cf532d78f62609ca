package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/grantlyhq/grantly/internal/grantly/store"
	"github.com/grantlyhq/grantly/internal/grantly/types"
)

const resourceApplications = "applications"

// ApplicationService owns mutations on the applications table. Every write
// passes through the gate; reads go straight to the store.
type ApplicationService struct {
	apps store.ApplicationStore
	gate *MutationGate
}

func NewApplicationService(apps store.ApplicationStore, gate *MutationGate) *ApplicationService {
	return &ApplicationService{apps: apps, gate: gate}
}

func (s *ApplicationService) Submit(ctx context.Context, actor, studentID, scholarshipID string) (types.Application, error) {
	studentID = strings.TrimSpace(studentID)
	scholarshipID = strings.TrimSpace(scholarshipID)
	if studentID == "" || scholarshipID == "" {
		return types.Application{}, ErrInvalidApplication
	}

	now := s.gate.clock.Now().In(s.gate.loc)
	app := types.Application{
		ID:            uuid.NewString(),
		StudentID:     studentID,
		ScholarshipID: scholarshipID,
		Status:        types.AppSubmitted,
		SubmittedAt:   now,
		UpdatedAt:     now,
	}

	err := s.gate.Do(ctx, types.MutationRequest{
		Resource: resourceApplications,
		Op:       types.OpInsert,
		Actor:    actor,
	}, func(ctx context.Context) error {
		return s.apps.Insert(ctx, app)
	})
	if err != nil {
		return types.Application{}, err
	}
	return app, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, actor, id, status string) error {
	if !types.ValidApplicationStatus(status) {
		return ErrInvalidStatus
	}

	now := s.gate.clock.Now().In(s.gate.loc)
	return s.gate.Do(ctx, types.MutationRequest{
		Resource: resourceApplications,
		Op:       types.OpUpdate,
		Actor:    actor,
	}, func(ctx context.Context) error {
		return s.apps.UpdateStatus(ctx, id, status, now)
	})
}

func (s *ApplicationService) Withdraw(ctx context.Context, actor, id string) error {
	return s.gate.Do(ctx, types.MutationRequest{
		Resource: resourceApplications,
		Op:       types.OpDelete,
		Actor:    actor,
	}, func(ctx context.Context) error {
		return s.apps.Delete(ctx, id)
	})
}

// Get is read-only and unaffected by the write window.
func (s *ApplicationService) Get(ctx context.Context, id string) (types.Application, error) {
	return s.apps.Get(ctx, id)
}
