package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/pkg/money"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedUser(t *testing.T, s *Store, username, role string) int64 {
	t.Helper()

	id, err := s.Users().CreateUser(context.Background(), domain.User{
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		Role:         role,
	})
	require.NoError(t, err)
	return id
}

// seedClaim inserts a claim with its 1:1 pending approval, the way the
// employee-facing intake does.
func seedClaim(t *testing.T, s *Store, userID int64, cents int64, desc, incurred string) int64 {
	t.Helper()

	var claimID int64
	err := s.WithTx(context.Background(), func(tx store.Tx) error {
		var err error
		claimID, err = tx.Claims().CreateClaim(context.Background(), domain.Claim{
			UserID:      userID,
			Amount:      money.FromCents(cents),
			Description: desc,
			IncurredOn:  date(incurred),
		})
		if err != nil {
			return err
		}
		_, err = tx.Approvals().CreateApproval(context.Background(), claimID)
		return err
	})
	require.NoError(t, err)
	return claimID
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
}

func TestListPendingOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := seedUser(t, s, "alice", "Employee")

	oldest := seedClaim(t, s, alice, 1000, "taxi", "2024-01-03")
	newest := seedClaim(t, s, alice, 2000, "hotel", "2024-01-20")
	middle := seedClaim(t, s, alice, 1500, "meal", "2024-01-10")

	pending, err := s.Claims().ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	require.Equal(t, []int64{newest, middle, oldest},
		[]int64{pending[0].ID, pending[1].ID, pending[2].ID},
		"newest incurred date first")

	t.Run("decided claims drop out", func(t *testing.T) {
		err := s.Approvals().UpdateApproval(ctx, newest, domain.StatusApproved, alice, "ok", date("2024-02-01"))
		require.NoError(t, err)

		pending, err := s.Claims().ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 2)
	})

	t.Run("empty result is a slice not nil", func(t *testing.T) {
		none, err := s.Claims().ListByEmployee(ctx, "nobody")
		require.NoError(t, err)
		require.NotNil(t, none)
		require.Empty(t, none)
	})
}

func TestGetClaimByIDJoinsNameAndStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	bob := seedUser(t, s, "bob", "Employee")
	id := seedClaim(t, s, bob, 1250, "train ticket", "2024-03-05")

	detail, err := s.Claims().GetClaimByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "bob", detail.EmployeeName)
	require.Equal(t, domain.StatusPending, detail.Status)
	require.Equal(t, int64(1250), detail.Amount.Cents)
	require.Equal(t, "train ticket", detail.Description)
	require.Equal(t, date("2024-03-05"), detail.IncurredOn)

	_, err = s.Claims().GetClaimByID(ctx, 9999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestClaimWithoutApprovalIsExcluded(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	carol := seedUser(t, s, "carol", "Employee")

	// Orphan: a claim row with no approval half. Inner-join semantics keep
	// it out of every read path.
	orphan, err := s.Claims().CreateClaim(ctx, domain.Claim{
		UserID:      carol,
		Amount:      money.FromCents(500),
		Description: "no approval row",
		IncurredOn:  date("2024-04-01"),
	})
	require.NoError(t, err)

	_, err = s.Claims().GetClaimByID(ctx, orphan)
	require.ErrorIs(t, err, store.ErrNotFound)

	list, err := s.Claims().ListByEmployee(ctx, "carol")
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = s.Approvals().GetApprovalByClaimID(ctx, orphan)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListByDateRangeInclusiveBounds(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	dave := seedUser(t, s, "dave", "Employee")

	before := seedClaim(t, s, dave, 100, "too early", "2023-12-31")
	onStart := seedClaim(t, s, dave, 200, "on start", "2024-01-01")
	inside := seedClaim(t, s, dave, 300, "inside", "2024-01-15")
	onEnd := seedClaim(t, s, dave, 400, "on end", "2024-01-31")
	after := seedClaim(t, s, dave, 500, "too late", "2024-02-01")

	got, err := s.Claims().ListByDateRange(ctx, date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)

	ids := make([]int64, 0, len(got))
	for _, d := range got {
		ids = append(ids, d.ID)
	}
	require.Equal(t, []int64{onEnd, inside, onStart}, ids)
	require.NotContains(t, ids, before)
	require.NotContains(t, ids, after)
}

func TestListByStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	erin := seedUser(t, s, "erin", "Employee")
	mgr := seedUser(t, s, "mgr", "Manager")

	a := seedClaim(t, s, erin, 100, "a", "2024-05-01")
	b := seedClaim(t, s, erin, 200, "b", "2024-05-02")
	seedClaim(t, s, erin, 300, "c", "2024-05-03")

	require.NoError(t, s.Approvals().UpdateApproval(ctx, a, domain.StatusApproved, mgr, "fine", date("2024-05-10")))
	require.NoError(t, s.Approvals().UpdateApproval(ctx, b, domain.StatusDenied, mgr, "no receipt", date("2024-05-10")))

	approved, err := s.Claims().ListByStatus(ctx, domain.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	require.Equal(t, a, approved[0].ID)

	denied, err := s.Claims().ListByStatus(ctx, domain.StatusDenied)
	require.NoError(t, err)
	require.Len(t, denied, 1)
	require.Equal(t, b, denied[0].ID)

	pending, err := s.Claims().ListByStatus(ctx, domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

func TestUpdateApproval(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	frank := seedUser(t, s, "frank", "Employee")
	mgr := seedUser(t, s, "boss", "Manager")
	id := seedClaim(t, s, frank, 999, "parking", "2024-06-06")

	t.Run("stamps reviewer comment and date", func(t *testing.T) {
		require.NoError(t, s.Approvals().UpdateApproval(ctx, id, domain.StatusApproved, mgr, "ok", date("2024-06-10")))

		appr, err := s.Approvals().GetApprovalByClaimID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, appr.Status)
		require.NotNil(t, appr.ReviewerID)
		require.Equal(t, mgr, *appr.ReviewerID)
		require.NotNil(t, appr.Comment)
		require.Equal(t, "ok", *appr.Comment)
		require.NotNil(t, appr.ReviewedOn)
		require.Equal(t, date("2024-06-10"), *appr.ReviewedOn)
	})

	t.Run("zero rows affected is NotFound", func(t *testing.T) {
		err := s.Approvals().UpdateApproval(ctx, 12345, domain.StatusDenied, mgr, "nope", date("2024-06-10"))
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestPendingApprovalHasNullDecisionFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	gina := seedUser(t, s, "gina", "Employee")
	id := seedClaim(t, s, gina, 100, "pens", "2024-07-01")

	appr, err := s.Approvals().GetApprovalByClaimID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, appr.Status)
	require.Nil(t, appr.ReviewerID)
	require.Nil(t, appr.Comment)
	require.Nil(t, appr.ReviewedOn)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	hank := seedUser(t, s, "hank", "Employee")

	sentinel := context.Canceled
	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Claims().CreateClaim(ctx, domain.Claim{
			UserID:      hank,
			Amount:      money.FromCents(700),
			Description: "rolled back",
			IncurredOn:  date("2024-08-01"),
		})
		require.NoError(t, err)
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	list, err := s.Claims().ListByEmployee(ctx, "hank")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	id := seedUser(t, s, "mgr", domain.RoleManager)

	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)

	byName, err := s.Users().GetUserByUsername(ctx, "mgr")
	require.NoError(t, err)
	require.Equal(t, id, byName.ID)
	require.True(t, byName.IsManager())

	byID, err := s.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "mgr", byID.Username)

	_, err = s.Users().GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}
