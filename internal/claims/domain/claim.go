package domain

import (
	"time"

	"github.com/pavemint/claimdesk/pkg/money"
)

// DateLayout is how dates cross every boundary: ISO-8601 calendar dates.
// Stored as TEXT in this layout, lexicographic order matches chronological
// order, which the date-range queries rely on.
const DateLayout = "2006-01-02"

// Claim is a single expense record submitted by an employee. Claims are
// created by the employee-facing intake; this service reads and decides
// them but never deletes them.
type Claim struct {
	ID          int64
	UserID      int64
	Amount      money.Money
	Description string
	IncurredOn  time.Time // date precision only
}

// ClaimDetail is the read-time join of a claim with its owner's display
// name and current approval status. Neither field is stored on the claim.
type ClaimDetail struct {
	Claim

	EmployeeName string
	Status       Status
}
