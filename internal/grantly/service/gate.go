package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/grantlyhq/grantly/internal/grantly/store"
	"github.com/grantlyhq/grantly/internal/grantly/types"
)

// MutationFn executes the protected statement itself. It runs only after the
// write window has allowed the attempt.
type MutationFn func(ctx context.Context) error

// MutationGate is the enforcement point in front of every protected table.
// Each attempt walks a fixed path: evaluate once per statement, abort before
// any row change on deny, and append exactly one audit record describing the
// final outcome — denied, allowed, or allowed-but-failed.
type MutationGate struct {
	calendar store.CalendarStore
	audit    store.AuditStore
	clock    clockwork.Clock
	loc      *time.Location
}

func NewMutationGate(cal store.CalendarStore, audit store.AuditStore, clock clockwork.Clock, loc *time.Location) *MutationGate {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &MutationGate{calendar: cal, audit: audit, clock: clock, loc: loc}
}

// Do runs one mutation attempt through the gate.
//
// On deny, fn never runs; the denial is audited and a *PolicyViolationError
// is returned. On allow, fn runs and its outcome — nil, an ordinary failure,
// or a cancellation — is audited before being returned unchanged. If the
// audit append itself fails, ErrAuditWrite supersedes the attempt's result.
func (g *MutationGate) Do(ctx context.Context, req types.MutationRequest, fn MutationFn) error {
	actor := strings.TrimSpace(req.Actor)
	if actor == "" {
		return ErrInvalidActor
	}
	if strings.TrimSpace(req.Resource) == "" {
		return ErrInvalidResource
	}

	now := g.clock.Now().In(g.loc)

	decision, err := Evaluate(ctx, now, g.calendar)
	if err != nil {
		// The calendar lookup failed before any decision was reached;
		// the statement was never attempted, so nothing is audited.
		return fmt.Errorf("evaluate write window: %w", err)
	}

	if !decision.Allow {
		if aerr := g.record(ctx, req, actor, now, types.StatusDenied(decision.Reasons)); aerr != nil {
			return aerr
		}
		return &PolicyViolationError{Reasons: decision.Reasons}
	}

	execErr := fn(ctx)

	status := types.StatusAllowed
	if execErr != nil {
		status = types.StatusAllowedButFailed(failureDetail(execErr))
	}
	if aerr := g.record(ctx, req, actor, now, status); aerr != nil {
		return aerr
	}
	return execErr
}

// record appends the attempt's single audit entry. The append is detached
// from the caller's cancellation: a statement canceled mid-flight still
// leaves its trace.
func (g *MutationGate) record(ctx context.Context, req types.MutationRequest, actor string, now time.Time, status string) error {
	rec := types.AuditRecord{
		Actor:       actor,
		Resource:    req.Resource,
		Operation:   req.Op,
		Status:      status,
		AttemptedAt: now,
	}
	if _, err := g.audit.Append(context.WithoutCancel(ctx), rec); err != nil {
		return fmt.Errorf("%w: %v", ErrAuditWrite, err)
	}
	return nil
}

func failureDetail(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return err.Error()
}
