package service

import (
	"context"
	"errors"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/pkg/cryptox"
	"github.com/pavemint/claimdesk/pkg/slogx"
)

// ErrBadCredentials is the negative login result: unknown username, wrong
// password, or a non-manager account. It is a valid outcome, not a store
// failure; store failures pass through untouched so callers can report
// "infra is down" distinctly from "try again".
var ErrBadCredentials = errors.New("bad_credentials")

// AuthService validates a credential pair against the identity store and
// yields an authenticated principal restricted to the Manager role.
type AuthService struct {
	Store store.Store
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login rejected", "username", username, "reason", "unknown user")
			return domain.User{}, ErrBadCredentials
		}
		return domain.User{}, err
	}

	// Same negative result for a wrong role as for a wrong password; the
	// caller learns nothing about which accounts exist.
	if !user.IsManager() {
		log.Info("login rejected", "username", username, "reason", "not a manager")
		return domain.User{}, ErrBadCredentials
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Info("login rejected", "username", username, "reason", "password mismatch")
		return domain.User{}, ErrBadCredentials
	}

	log.Info("login successful", "username", username, "user_id", user.ID)
	return user, nil
}
