package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store/drivers/sqlite"
	"github.com/msgmaciel/adc-2024-2025/pkg/cryptox"
)

// testPassword satisfies the complexity policy and is shared by every seeded
// account.
const testPassword = "Sup3r.Secret"

var testStart = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// testClock is a controllable time source wired into the services' Now hook.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock { return &testClock{now: testStart} }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// seedAccount writes an account directly through the store, bypassing the
// registration flow, so tests can start from any role/state combination.
func seedAccount(t *testing.T, st store.Store, username string, role domain.Role, state domain.AccountState) domain.Account {
	t.Helper()

	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)

	account := domain.Account{
		Username:     username,
		Name:         username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Phone:        "+351210000000",
		Privacy:      domain.PrivacyPublic,
		Role:         role,
		State:        state,
		CreatedAt:    testStart,
	}
	require.NoError(t, st.Accounts().Create(context.Background(), account))
	return account
}

// loginAs seeds nothing; it logs the given (already seeded, active) account
// in and returns the minted session.
func loginAs(t *testing.T, st store.Store, clock *testClock, username string) domain.Session {
	t.Helper()

	svc := &SessionService{Store: st, Now: clock.Now}
	sess, err := svc.Login(context.Background(), username, testPassword)
	require.NoError(t, err)
	return sess
}
