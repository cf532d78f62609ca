package types

import (
	"strings"
	"time"
)

// Audit status strings. Exactly one of these shapes is recorded per attempt.
const StatusAllowed = "Allowed"

func StatusDenied(reasons []string) string {
	return "Denied: " + strings.Join(reasons, ", ")
}

func StatusAllowedButFailed(detail string) string {
	return "Allowed but failed: " + detail
}

// AuditRecord is one immutable entry in the write-once audit ledger. It holds
// no foreign keys into the protected tables so the trail survives schema
// changes on the resources it describes.
type AuditRecord struct {
	ID          int64     `json:"id"`
	Actor       string    `json:"actor"`
	Resource    string    `json:"resource"`
	Operation   Operation `json:"operation"`
	Status      string    `json:"status"`
	AttemptedAt time.Time `json:"attempted_at"`
}
