package types

// Operation is the kind of mutation attempted against a protected resource.
type Operation string

const (
	OpInsert Operation = "insert"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// MutationRequest describes one mutation attempt. The gate evaluates it as a
// single unit regardless of how many rows the statement touches.
type MutationRequest struct {
	Resource string    // e.g. "applications"
	Op       Operation // insert | update | delete
	Actor    string    // identity of the caller
}

// Deny reasons produced by the policy evaluator.
const (
	ReasonWeekday = "weekday"
	ReasonHoliday = "holiday"
)

// Decision is the transient outcome of one policy evaluation. It is never
// persisted; the audit record carries a rendered status string instead.
type Decision struct {
	Allow   bool
	Reasons []string // present only on deny
}
