package service

import (
	"context"
	"errors"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/store"
)

// ErrInvalidClaim reports a claim submission that violates the data model
// (non-positive amount, blank description).
var ErrInvalidClaim = errors.New("invalid_claim")

// IntakeService creates a claim together with its 1:1 pending approval
// record. It backs the employee-facing subsystem; the approval workflow
// itself never creates claims.
type IntakeService struct {
	Store store.Store
}

// Submit inserts the claim and its pending approval atomically and returns
// the new claim id. A claim is never visible without its approval half.
func (s *IntakeService) Submit(ctx context.Context, c domain.Claim) (int64, error) {
	if !c.Amount.IsPositive() {
		return 0, errors.Join(ErrInvalidClaim, errors.New("amount must be positive"))
	}
	if c.Description == "" {
		return 0, errors.Join(ErrInvalidClaim, errors.New("description is required"))
	}
	if c.IncurredOn.IsZero() {
		return 0, errors.Join(ErrInvalidClaim, errors.New("incurred date is required"))
	}

	var claimID int64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		if claimID, err = tx.Claims().CreateClaim(ctx, c); err != nil {
			return err
		}
		_, err = tx.Approvals().CreateApproval(ctx, claimID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return claimID, nil
}
