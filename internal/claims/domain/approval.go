package domain

import "time"

// Approval is the 1:1 decision record attached to a claim. Reviewer,
// comment and review date are nullable until the claim leaves pending, then
// all three are stamped together, exactly once.
type Approval struct {
	ID         int64
	ClaimID    int64
	Status     Status
	ReviewerID *int64
	Comment    *string
	ReviewedOn *time.Time
}
