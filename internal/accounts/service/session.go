package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store"
	"github.com/msgmaciel/adc-2024-2025/pkg/cryptox"
)

// SessionService mints and revokes session tokens.
type SessionService struct {
	Store store.Store
	Now   func() time.Time // optional clock override for tests
}

// Login authenticates a username/password pair and mints a fresh session
// with the fixed two-hour validity window.
//
// A non-active account is rejected with ErrForbidden before the password is
// checked. An unknown username and a wrong password are indistinguishable to
// the caller: both return ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if username == "" || password == "" {
		return domain.Session{}, invalid("username and password are required")
	}

	now := nowOrDefault(s.Now)

	var sess domain.Session
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := tx.Accounts().GetByUsername(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		if err != nil {
			return fmt.Errorf("load account: %w", err)
		}

		if account.State != domain.StateActive {
			return fmt.Errorf("%w: account is not active", ErrForbidden)
		}

		if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
			return ErrInvalidCredentials
		}

		sess = domain.NewSession(uuid.NewString(), account.Username, account.Role, now)
		if err := tx.Sessions().Create(ctx, sess); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// Logout revokes every session owned by the presented token's account, not
// just the presented one. The token must still resolve to a live session.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	now := nowOrDefault(s.Now)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := resolveSession(ctx, tx, token, now)
		if err != nil {
			return err
		}
		if err := tx.Sessions().DeleteByUsername(ctx, sess.Username); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		return nil
	})
}
