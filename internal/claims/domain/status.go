package domain

import "fmt"

// Status is the workflow state of a claim's approval record. Transitions are
// monotone: pending moves to approved or denied exactly once, and both of
// those are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// ParseStatus validates a raw status string from a boundary (HTTP query,
// console input, database row).
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusDenied:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown claim status %q", s)
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusDenied
}
