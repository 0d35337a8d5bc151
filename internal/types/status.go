package types

// Status tracks the lifecycle of a persisted resource. Ledger rows are
// append-only and stay active forever; the field exists so every table
// shares the same base columns.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)
