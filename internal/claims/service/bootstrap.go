package service

import (
	"context"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"github.com/pavemint/claimdesk/pkg/cryptox"
	"github.com/pavemint/claimdesk/pkg/slogx"
)

// BootstrapService creates the initial manager account on a fresh database.
// User management beyond this is out of scope; accounts are otherwise
// provisioned externally.
type BootstrapService struct {
	Store store.Store
}

// EnsureManager creates a Manager account with the given credentials if and
// only if the identity store is empty. Returns true when an account was
// created. The password is hashed before it goes anywhere near the store.
func (s *BootstrapService) EnsureManager(ctx context.Context, username, password string) (bool, error) {
	log := slogx.FromContext(ctx)

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return false, err
	}

	id, err := s.Store.Users().CreateUser(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleManager,
	})
	if err != nil {
		return false, err
	}

	log.Info("bootstrap manager created", "username", username, "user_id", id)
	return true, nil
}
