package service

import (
	"context"
	"testing"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/pkg/money"
	"github.com/stretchr/testify/require"
)

func TestReportTotals(t *testing.T) {
	reports := &ReportService{}

	t.Run("empty sequence totals zero", func(t *testing.T) {
		require.Equal(t, int64(0), reports.Total(nil).Cents)
		require.Equal(t, int64(0), reports.Total([]domain.ClaimDetail{}).Cents)
	})

	t.Run("12.50 plus 7.25 is exactly 19.75", func(t *testing.T) {
		total := reports.Total([]domain.ClaimDetail{
			{Claim: domain.Claim{Amount: money.FromCents(1250)}},
			{Claim: domain.Claim{Amount: money.FromCents(725)}},
		})
		require.Equal(t, "19.75", total.String())
	})

	t.Run("many fractional cents sum exactly", func(t *testing.T) {
		claims := make([]domain.ClaimDetail, 1000)
		for i := range claims {
			claims[i] = domain.ClaimDetail{Claim: domain.Claim{Amount: money.FromCents(3)}}
		}
		require.Equal(t, int64(3000), reports.Total(claims).Cents)
	})
}

func TestReportFinders(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", "alicepass", "Employee")
	bob := seedUser(t, s, "bob", "bobpass", "Employee")
	mgr := seedUser(t, s, "mgr", "mgrpass", domain.RoleManager)

	a1 := seedClaim(t, s, alice, 1250, "taxi", "2024-01-05")
	a2 := seedClaim(t, s, alice, 725, "lunch", "2024-01-20")
	b1 := seedClaim(t, s, bob, 9900, "flight", "2024-02-10")

	wf := &WorkflowService{Store: s}
	require.NoError(t, wf.Approve(ctx, a1, mgr, "fine"))

	reports := &ReportService{Store: s}

	t.Run("by employee delegates with store ordering", func(t *testing.T) {
		got, err := reports.ByEmployee(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, a2, got[0].ID, "newest first")
		require.Equal(t, a1, got[1].ID)
		require.Equal(t, "19.75", reports.Total(got).String())
	})

	t.Run("by date range is inclusive", func(t *testing.T) {
		got, err := reports.ByDateRange(ctx, date("2024-01-01"), date("2024-01-31"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, d := range got {
			require.NotEqual(t, b1, d.ID)
		}
	})

	t.Run("by status", func(t *testing.T) {
		approved, err := reports.ByStatus(ctx, domain.StatusApproved)
		require.NoError(t, err)
		require.Len(t, approved, 1)
		require.Equal(t, a1, approved[0].ID)

		pending, err := reports.ByStatus(ctx, domain.StatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 2)
	})

	t.Run("pending view", func(t *testing.T) {
		got, err := reports.Pending(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("claim by id", func(t *testing.T) {
		detail, err := reports.ClaimByID(ctx, b1)
		require.NoError(t, err)
		require.Equal(t, "bob", detail.EmployeeName)

		_, err = reports.ClaimByID(ctx, 999999)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestIntakeValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", "alicepass", "Employee")
	intake := &IntakeService{Store: s}

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := intake.Submit(ctx, domain.Claim{
			UserID:      alice,
			Amount:      money.FromCents(0),
			Description: "free stuff",
			IncurredOn:  date("2024-01-01"),
		})
		require.ErrorIs(t, err, ErrInvalidClaim)
	})

	t.Run("rejects blank description", func(t *testing.T) {
		_, err := intake.Submit(ctx, domain.Claim{
			UserID:     alice,
			Amount:     money.FromCents(100),
			IncurredOn: date("2024-01-01"),
		})
		require.ErrorIs(t, err, ErrInvalidClaim)
	})

	t.Run("created claim carries its approval from birth", func(t *testing.T) {
		id, err := intake.Submit(ctx, domain.Claim{
			UserID:      alice,
			Amount:      money.FromCents(100),
			Description: "stapler",
			IncurredOn:  date("2024-01-01"),
		})
		require.NoError(t, err)

		appr, err := s.Approvals().GetApprovalByClaimID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, appr.Status)
	})
}
