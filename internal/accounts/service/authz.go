package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store"
)

// resolveSession turns a bearer token into the session snapshot every
// authorization decision runs on. The cached username and role are used as-is;
// the owning account is never reloaded here, the fan-out writes keep the
// snapshot current.
//
// An expired session is reported the same way as an unknown token. The stale
// row itself is left for the housekeeping sweep: a failed resolution rolls
// the surrounding transaction back, so deleting here would not stick anyway.
func resolveSession(ctx context.Context, tx store.Tx, token string, now time.Time) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, ErrInvalidToken
	}

	sess, err := tx.Sessions().Get(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, ErrInvalidToken
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	if sess.ExpiredAt(now) {
		return domain.Session{}, ErrInvalidToken
	}

	return sess, nil
}

// loadTarget fetches the account an actor wants to operate on. A missing
// target is reported as ErrForbidden so cross-account operations cannot be
// used to probe which usernames exist.
func loadTarget(ctx context.Context, tx store.Tx, username string) (domain.Account, error) {
	target, err := tx.Accounts().GetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, fmt.Errorf("%w: unknown target", ErrForbidden)
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("load target account: %w", err)
	}
	return target, nil
}
