package store

import (
	"context"
	"errors"
	"time"

	"github.com/pavemint/claimdesk/internal/claims/domain"
)

var (
	// ErrNotFound reports an absent entity or relation. It is an expected,
	// cheap outcome (wrong id, no matching approval row), not an infra
	// failure.
	ErrNotFound = errors.New("store: not found")

	// ErrUnavailable wraps connectivity and backend failures so callers can
	// report them distinctly from ErrNotFound.
	ErrUnavailable = errors.New("store: backend unavailable")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable, and it is
// the sole mutator of the claims and approvals tables.
type Store interface {
	Claims() Claims
	Approvals() Approvals
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back on error and
	// committing on nil. Multi-step operations that must be atomic (claim
	// intake, decision stamping) go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection. Required on every exit path.
	Close() error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Claims reads the claim × user × approval join. A claim lacking either its
// approval row or its owning user is excluded from every result
// (inner-join semantics); all listings are newest incurred-date first and
// return an empty, never nil, slice.
type Claims interface {
	// ListPending returns claims whose approval is still pending.
	ListPending(ctx context.Context) ([]domain.ClaimDetail, error)

	// GetClaimByID returns a single joined claim or ErrNotFound.
	GetClaimByID(ctx context.Context, id int64) (domain.ClaimDetail, error)

	// ListByEmployee returns the named employee's claims.
	ListByEmployee(ctx context.Context, username string) ([]domain.ClaimDetail, error)

	// ListByDateRange returns claims incurred within [start, end], bounds
	// inclusive.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.ClaimDetail, error)

	// ListByStatus returns claims currently in the given status.
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.ClaimDetail, error)

	// CreateClaim inserts a claim row and returns its id. The employee-facing
	// intake pairs this with Approvals.CreateApproval inside one transaction.
	CreateClaim(ctx context.Context, c domain.Claim) (int64, error)
}

type Approvals interface {
	// GetApprovalByClaimID returns the claim's 1:1 approval record or
	// ErrNotFound. Never a partial object.
	GetApprovalByClaimID(ctx context.Context, claimID int64) (domain.Approval, error)

	// UpdateApproval stamps a decision onto the claim's approval row in a
	// single statement. Zero rows affected means the claim or its approval
	// record is absent and yields ErrNotFound, never a silent no-op.
	UpdateApproval(ctx context.Context, claimID int64, status domain.Status, reviewerID int64, comment string, reviewedOn time.Time) error

	// CreateApproval inserts the pending approval row for a new claim.
	CreateApproval(ctx context.Context, claimID int64) (int64, error)
}

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user and returns its id.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// IsEmpty returns true if there are no users; bootstrap probes this.
	IsEmpty(ctx context.Context) (bool, error)
}
