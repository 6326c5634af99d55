package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store/drivers/sqlite"
	"github.com/msgmaciel/adc-2024-2025/pkg/cryptox"
)

const testPassword = "Sup3r.Secret"

func newTestRouter(t *testing.T) (*Router, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	router := NewRouter("test", st, slog.Default())
	router.SessionService = &service.SessionService{Store: st}
	router.AccountService = &service.AccountService{Store: st}
	router.WorksheetService = &service.WorksheetService{Store: st}
	router.ApplyRoutes()
	return router, st
}

func seedAccount(t *testing.T, st store.Store, username string, role domain.Role) {
	t.Helper()

	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, st.Accounts().Create(context.Background(), domain.Account{
		Username:     username,
		Name:         username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Phone:        "+351210000000",
		Privacy:      domain.PrivacyPublic,
		Role:         role,
		State:        domain.StateActive,
		CreatedAt:    time.Now().UTC(),
	}))
}

// do issues a JSON request against the router. Every route carries its own
// rate limiter and no test sends enough requests to exhaust a burst, so a
// fixed client address is fine.
func do(t *testing.T, router *Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "203.0.113.7:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *Router, username string) string {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Username: username,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginEndpoint(t *testing.T) {
	router, st := newTestRouter(t)
	seedAccount(t, st, "alice", domain.RoleEnduser)

	t.Run("success returns a two hour token", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/v1/auth/login", "", LoginRequest{
			Username: "alice",
			Password: testPassword,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		var resp LoginResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Equal(t, "alice", resp.Username)
		require.Equal(t, "enduser", resp.Role)
		require.Equal(t, 2*time.Hour, resp.ValidUntil.Sub(resp.ValidFrom))
	})

	t.Run("wrong password is a 401", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/v1/auth/login", "", LoginRequest{
			Username: "alice",
			Password: "Wrong.Passw0rd",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_credentials")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRegisterAndActivationFlow(t *testing.T) {
	router, st := newTestRouter(t)
	seedAccount(t, st, "root", domain.RoleAdmin)

	rec := do(t, router, http.MethodPost, "/v1/accounts", "", RegisterRequest{
		Username:     "newuser",
		Password:     testPassword,
		Confirmation: testPassword,
		Email:        "newuser@example.com",
		Name:         "New User",
		Phone:        "+351930000000",
		Privacy:      "public",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Fresh accounts are disabled: login is forbidden until activation.
	rec = do(t, router, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Username: "newuser",
		Password: testPassword,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := login(t, router, "root")
	rec = do(t, router, http.MethodPut, "/v1/accounts/newuser/state", adminToken,
		StateRequest{State: "active"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	login(t, router, "newuser")

	// Re-registering the same username conflicts.
	rec = do(t, router, http.MethodPost, "/v1/accounts", "", RegisterRequest{
		Username:     "newuser",
		Password:     testPassword,
		Confirmation: testPassword,
		Email:        "other@example.com",
		Name:         "New User",
		Phone:        "+351930000000",
		Privacy:      "public",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestStatusMapping(t *testing.T) {
	router, st := newTestRouter(t)
	seedAccount(t, st, "root", domain.RoleAdmin)
	seedAccount(t, st, "partner", domain.RolePartner)

	adminToken := login(t, router, "root")
	partnerToken := login(t, router, "partner")

	t.Run("missing token is a 401", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/v1/accounts", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_token")
	})

	t.Run("forbidden listing is a 403", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/v1/accounts", partnerToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin listing is a 200", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/v1/accounts", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var views []service.AccountView
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
		require.Len(t, views, 2)
	})

	t.Run("unknown worksheet is a 404", func(t *testing.T) {
		rec := do(t, router, http.MethodPatch, "/v1/worksheets/ghost", adminToken,
			WorksheetUpdateRequest{Notes: "x"})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad state literal is a 400", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/v1/accounts/partner/state", adminToken,
			StateRequest{State: "frozen"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_request")
	})
}
