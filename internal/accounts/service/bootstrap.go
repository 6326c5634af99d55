package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store"
	"github.com/msgmaciel/adc-2024-2025/pkg/cryptox"
)

// BootstrapService seeds the root admin account at startup so a fresh
// deployment always has one active admin to activate everyone else.
type BootstrapService struct {
	Store  store.Store
	Logger *slog.Logger
	Now    func() time.Time

	Username string
	Password string
	Email    string
}

// EnsureRootAccount creates the configured root admin if it does not exist
// yet. Idempotent: an existing account under the root username is left
// untouched, password included.
func (s *BootstrapService) EnsureRootAccount(ctx context.Context) error {
	if s.Username == "" || s.Password == "" {
		s.Logger.Warn("root bootstrap skipped: no root credentials configured")
		return nil
	}

	hash, err := cryptox.HashPassword(s.Password)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Accounts().GetByUsername(ctx, s.Username)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("check root account: %w", err)
		}

		root := domain.Account{
			Username:     s.Username,
			Name:         s.Username,
			Email:        s.Email,
			PasswordHash: hash,
			Privacy:      domain.PrivacyPrivate,
			Role:         domain.RoleAdmin,
			State:        domain.StateActive,
			CreatedAt:    nowOrDefault(s.Now),
		}
		if err := tx.Accounts().Create(ctx, root); err != nil {
			return fmt.Errorf("create root account: %w", err)
		}
		s.Logger.Info("root account created", "username", s.Username)
		return nil
	})
}
