package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/pkg/money"
)

type claimsRepo struct {
	q querier
}

// claimJoin is the shared projection: every read query joins claims with
// the owning user and the 1:1 approval. A claim missing either side is a
// data-integrity breach and silently drops out of the result set.
const claimJoin = `
SELECT c.id, c.user_id, c.amount_cents, c.description, c.incurred_on,
       u.username, a.status
FROM claims c
JOIN users u ON u.id = c.user_id
JOIN approvals a ON a.claim_id = c.id`

const newestFirst = ` ORDER BY c.incurred_on DESC, c.id DESC`

func (r *claimsRepo) ListPending(ctx context.Context) ([]domain.ClaimDetail, error) {
	return r.list(ctx, claimJoin+` WHERE a.status = ?`+newestFirst, string(domain.StatusPending))
}

func (r *claimsRepo) GetClaimByID(ctx context.Context, id int64) (domain.ClaimDetail, error) {
	row := r.q.QueryRowContext(ctx, claimJoin+` WHERE c.id = ?`, id)
	detail, err := scanClaimDetail(row)
	if err != nil {
		return domain.ClaimDetail{}, mapErr(err)
	}
	return detail, nil
}

func (r *claimsRepo) ListByEmployee(ctx context.Context, username string) ([]domain.ClaimDetail, error) {
	return r.list(ctx, claimJoin+` WHERE u.username = ?`+newestFirst, username)
}

func (r *claimsRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.ClaimDetail, error) {
	// Dates are stored as YYYY-MM-DD text, so BETWEEN is chronological and
	// both bounds are inclusive.
	return r.list(ctx,
		claimJoin+` WHERE c.incurred_on BETWEEN ? AND ?`+newestFirst,
		formatDate(start), formatDate(end))
}

func (r *claimsRepo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.ClaimDetail, error) {
	return r.list(ctx, claimJoin+` WHERE a.status = ?`+newestFirst, string(status))
}

func (r *claimsRepo) CreateClaim(ctx context.Context, c domain.Claim) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO claims (user_id, amount_cents, description, incurred_on) VALUES (?, ?, ?, ?)`,
		c.UserID, c.Amount.Cents, c.Description, formatDate(c.IncurredOn))
	if err != nil {
		return 0, wrapUnavailable(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrapUnavailable(err)
	}
	return id, nil
}

func (r *claimsRepo) list(ctx context.Context, query string, args ...any) ([]domain.ClaimDetail, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	defer rows.Close()

	// Empty result is a slice, never nil.
	details := make([]domain.ClaimDetail, 0)
	for rows.Next() {
		detail, err := scanClaimDetail(rows)
		if err != nil {
			return nil, wrapUnavailable(err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapUnavailable(err)
	}
	return details, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClaimDetail(row rowScanner) (domain.ClaimDetail, error) {
	var (
		detail     domain.ClaimDetail
		cents      int64
		incurredOn string
		status     string
	)
	err := row.Scan(
		&detail.ID,
		&detail.UserID,
		&cents,
		&detail.Description,
		&incurredOn,
		&detail.EmployeeName,
		&status,
	)
	if err != nil {
		return domain.ClaimDetail{}, err
	}

	detail.Amount = money.FromCents(cents)
	if detail.IncurredOn, err = time.Parse(domain.DateLayout, incurredOn); err != nil {
		return domain.ClaimDetail{}, err
	}
	if detail.Status, err = domain.ParseStatus(status); err != nil {
		return domain.ClaimDetail{}, err
	}
	return detail, nil
}

var _ rowScanner = (*sql.Row)(nil)
