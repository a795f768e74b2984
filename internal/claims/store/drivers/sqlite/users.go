package sqlite

import (
	"context"

	"github.com/pavemint/claimdesk/internal/claims/domain"
)

type usersRepo struct {
	q querier
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return r.get(ctx, `SELECT id, username, password_hash, role FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.get(ctx, `SELECT id, username, password_hash, role FROM users WHERE username = ?`, username)
}

func (r *usersRepo) get(ctx context.Context, query string, arg any) (domain.User, error) {
	var u domain.User
	row := r.q.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
		return domain.User{}, mapErr(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		u.Username, u.PasswordHash, u.Role)
	if err != nil {
		return 0, wrapUnavailable(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrapUnavailable(err)
	}
	return id, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	row := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`)
	if err := row.Scan(&count); err != nil {
		return false, wrapUnavailable(err)
	}
	return count == 0, nil
}
