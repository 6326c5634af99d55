package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
)

func TestEnsureRootAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := newTestClock()

	svc := &BootstrapService{
		Store:    st,
		Logger:   slog.Default(),
		Now:      clock.Now,
		Username: "root",
		Password: testPassword,
		Email:    "root@example.com",
	}
	require.NoError(t, svc.EnsureRootAccount(ctx))

	root, err := st.Accounts().GetByUsername(ctx, "root")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, root.Role)
	require.Equal(t, domain.StateActive, root.State)
	require.Equal(t, domain.PrivacyPrivate, root.Privacy)

	// The seeded admin can log in straight away.
	sessions := &SessionService{Store: st, Now: clock.Now}
	_, err = sessions.Login(ctx, "root", testPassword)
	require.NoError(t, err)

	// Idempotent: a second run with a different password changes nothing.
	svc.Password = "Other.Passw0rd"
	require.NoError(t, svc.EnsureRootAccount(ctx))
	_, err = sessions.Login(ctx, "root", testPassword)
	require.NoError(t, err)
}

func TestEnsureRootAccountSkippedWithoutCredentials(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	svc := &BootstrapService{Store: st, Logger: slog.Default()}
	require.NoError(t, svc.EnsureRootAccount(ctx))

	empty, err := st.Accounts().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)
}
