package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/store"
)

type approvalsRepo struct {
	q querier
}

func (r *approvalsRepo) GetApprovalByClaimID(ctx context.Context, claimID int64) (domain.Approval, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, claim_id, status, reviewer_id, comment, reviewed_on
		 FROM approvals WHERE claim_id = ?`, claimID)

	var (
		appr       domain.Approval
		status     string
		reviewerID sql.NullInt64
		comment    sql.NullString
		reviewedOn sql.NullString
	)
	if err := row.Scan(&appr.ID, &appr.ClaimID, &status, &reviewerID, &comment, &reviewedOn); err != nil {
		return domain.Approval{}, mapErr(err)
	}

	var err error
	if appr.Status, err = domain.ParseStatus(status); err != nil {
		return domain.Approval{}, wrapUnavailable(err)
	}
	appr.ReviewerID = mapNullInt64Ptr(reviewerID)
	appr.Comment = mapNullStringPtr(comment)
	if appr.ReviewedOn, err = mapNullDatePtr(reviewedOn); err != nil {
		return domain.Approval{}, wrapUnavailable(err)
	}
	return appr, nil
}

// UpdateApproval stamps the decision in a single UPDATE. Exactly one row
// must be affected; zero rows means the approval record is absent and is
// reported as ErrNotFound rather than swallowed.
func (r *approvalsRepo) UpdateApproval(
	ctx context.Context,
	claimID int64,
	status domain.Status,
	reviewerID int64,
	comment string,
	reviewedOn time.Time,
) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE approvals
		 SET status = ?, reviewer_id = ?, comment = ?, reviewed_on = ?
		 WHERE claim_id = ?`,
		string(status), reviewerID, comment, formatDate(reviewedOn), claimID)
	if err != nil {
		return wrapUnavailable(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return wrapUnavailable(err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *approvalsRepo) CreateApproval(ctx context.Context, claimID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO approvals (claim_id, status) VALUES (?, ?)`,
		claimID, string(domain.StatusPending))
	if err != nil {
		return 0, wrapUnavailable(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrapUnavailable(err)
	}
	return id, nil
}
