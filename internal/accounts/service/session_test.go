package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store"
)

func TestLoginMintsTwoHourSession(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := newTestClock()
	seedAccount(t, st, "alice", domain.RoleEnduser, domain.StateActive)

	svc := &SessionService{Store: st, Now: clock.Now}
	sess, err := svc.Login(ctx, "alice", testPassword)
	require.NoError(t, err)

	require.NotEmpty(t, sess.Token)
	require.Equal(t, "alice", sess.Username)
	require.Equal(t, domain.RoleEnduser, sess.Role)
	require.Equal(t, testStart, sess.ValidFrom)
	require.Equal(t, testStart.Add(2*time.Hour), sess.ValidUntil)

	stored, err := st.Sessions().Get(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, sess.Token, stored.Token)
	require.Equal(t, sess.Username, stored.Username)
	require.Equal(t, sess.Role, stored.Role)
	require.True(t, sess.ValidFrom.Equal(stored.ValidFrom))
	require.True(t, sess.ValidUntil.Equal(stored.ValidUntil))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := newTestClock()
	seedAccount(t, st, "alice", domain.RoleEnduser, domain.StateActive)

	svc := &SessionService{Store: st, Now: clock.Now}

	_, err := svc.Login(ctx, "alice", "Wrong.Passw0rd")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", testPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsNonActiveAccounts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := newTestClock()
	seedAccount(t, st, "disabled", domain.RoleEnduser, domain.StateDisabled)
	seedAccount(t, st, "suspended", domain.RoleEnduser, domain.StateSuspended)

	svc := &SessionService{Store: st, Now: clock.Now}

	_, err := svc.Login(ctx, "disabled", testPassword)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Login(ctx, "suspended", testPassword)
	require.ErrorIs(t, err, ErrForbidden)

	// State is checked before the password, so a wrong password on a
	// non-active account still reports the state problem.
	_, err = svc.Login(ctx, "disabled", "Wrong.Passw0rd")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestLogoutRevokesEverySessionOfTheOwner(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := newTestClock()
	seedAccount(t, st, "alice", domain.RoleEnduser, domain.StateActive)
	seedAccount(t, st, "bob", domain.RoleEnduser, domain.StateActive)

	first := loginAs(t, st, clock, "alice")
	second := loginAs(t, st, clock, "alice")
	other := loginAs(t, st, clock, "bob")

	svc := &SessionService{Store: st, Now: clock.Now}
	require.NoError(t, svc.Logout(ctx, first.Token))

	_, err := st.Sessions().Get(ctx, first.Token)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Sessions().Get(ctx, second.Token)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Unrelated sessions survive.
	_, err = st.Sessions().Get(ctx, other.Token)
	require.NoError(t, err)
}

func TestExpiredSessionIsRejectedAndDeleted(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := newTestClock()
	seedAccount(t, st, "alice", domain.RoleEnduser, domain.StateActive)

	sess := loginAs(t, st, clock, "alice")
	clock.Advance(2*time.Hour + time.Minute)

	svc := &SessionService{Store: st, Now: clock.Now}
	err := svc.Logout(ctx, sess.Token)
	require.ErrorIs(t, err, ErrInvalidToken)

	// The stale row is left for housekeeping to sweep.
	require.NoError(t, st.Sessions().DeleteExpired(ctx, clock.Now()))
	_, err = st.Sessions().Get(ctx, sess.Token)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUnknownAndEmptyTokensAreRejected(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := newTestClock()

	svc := &SessionService{Store: st, Now: clock.Now}
	require.ErrorIs(t, svc.Logout(ctx, ""), ErrInvalidToken)
	require.ErrorIs(t, svc.Logout(ctx, "no-such-token"), ErrInvalidToken)
}
