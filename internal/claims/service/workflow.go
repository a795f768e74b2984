package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/pkg/slogx"
)

// ErrInvalidTransition reports a decision attempted on a claim that already
// left pending. Approved and denied are terminal; a repeated decision fails
// fast instead of re-stamping a new reviewer or date.
var ErrInvalidTransition = errors.New("invalid_transition")

// WorkflowService applies the pending→approved/denied transition, stamping
// reviewer, comment and decision date through the claim store.
type WorkflowService struct {
	Store store.Store

	// Now is injectable for deterministic tests; defaults to time.Now.
	Now func() time.Time
}

// Approve records an approval on a pending claim.
func (s *WorkflowService) Approve(ctx context.Context, claimID, reviewerID int64, comment string) error {
	return s.decide(ctx, claimID, reviewerID, comment, domain.StatusApproved)
}

// Deny records a denial on a pending claim.
func (s *WorkflowService) Deny(ctx context.Context, claimID, reviewerID int64, comment string) error {
	return s.decide(ctx, claimID, reviewerID, comment, domain.StatusDenied)
}

func (s *WorkflowService) decide(ctx context.Context, claimID, reviewerID int64, comment string, status domain.Status) error {
	log := slogx.FromContext(ctx)
	today := s.now().UTC().Truncate(24 * time.Hour)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		appr, err := tx.Approvals().GetApprovalByClaimID(ctx, claimID)
		if err != nil {
			return err
		}

		// The read and the update share one transaction, so a claim that
		// already reached a terminal status cannot be silently overwritten.
		if appr.Status != domain.StatusPending {
			return fmt.Errorf("%w: claim %d is already %s", ErrInvalidTransition, claimID, appr.Status)
		}

		return tx.Approvals().UpdateApproval(ctx, claimID, status, reviewerID, comment, today)
	})
	if err != nil {
		return err
	}

	log.Info("claim decided",
		"claim_id", claimID,
		"status", status,
		"reviewer_id", reviewerID,
	)
	return nil
}

func (s *WorkflowService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
