package store

import (
	"context"
	"time"

	"github.com/grantlyhq/grantly/internal/grantly/types"
)

// ApplicationStore is the protected resource: row-level access to scholarship
// applications. Write-window enforcement lives above it in the service layer;
// the store only enforces its own plain constraints (uniqueness, existence).
type ApplicationStore interface {
	Insert(ctx context.Context, app types.Application) error
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (types.Application, error)

	// EligibleStudents returns students meeting the scholarship's minimum
	// GPA who have not yet applied to it, highest GPA first.
	EligibleStudents(ctx context.Context, scholarshipID string) ([]types.Student, error)
}
