package service

import (
	"context"
	"time"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/pkg/money"
)

// ReportService retrieves claim sets and computes aggregate totals. The
// finders are thin delegations; the store's ordering (newest incurred-date
// first) passes through unchanged, and reports are always whole result
// sets.
type ReportService struct {
	Store store.Store
}

func (s *ReportService) Pending(ctx context.Context) ([]domain.ClaimDetail, error) {
	return s.Store.Claims().ListPending(ctx)
}

func (s *ReportService) ClaimByID(ctx context.Context, id int64) (domain.ClaimDetail, error) {
	return s.Store.Claims().GetClaimByID(ctx, id)
}

func (s *ReportService) ByEmployee(ctx context.Context, username string) ([]domain.ClaimDetail, error) {
	return s.Store.Claims().ListByEmployee(ctx, username)
}

func (s *ReportService) ByDateRange(ctx context.Context, start, end time.Time) ([]domain.ClaimDetail, error) {
	return s.Store.Claims().ListByDateRange(ctx, start, end)
}

func (s *ReportService) ByStatus(ctx context.Context, status domain.Status) ([]domain.ClaimDetail, error) {
	return s.Store.Claims().ListByStatus(ctx, status)
}

func (s *ReportService) Approval(ctx context.Context, claimID int64) (domain.Approval, error) {
	return s.Store.Approvals().GetApprovalByClaimID(ctx, claimID)
}

// Total sums claim amounts in integer cents. Exact and order-independent;
// an empty sequence totals zero.
func (s *ReportService) Total(claims []domain.ClaimDetail) money.Money {
	var total money.Money
	for _, c := range claims {
		total = total.Add(c.Amount)
	}
	return total
}
