package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
)

// bearerToken extracts the session token from the Authorization header. An
// empty string means no credential was presented; the services reject that
// with ErrInvalidToken.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an internal failure: it is logged and
// reported as an opaque 500 so storage details never leak to clients.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest,
			"invalid_request", strings.Join(verr.Problems, "; "))
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_credentials", "Incorrect username or password.")
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized,
			"invalid_token", "Session is missing, expired or revoked.")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden,
			"forbidden", "You are not allowed to perform this operation.")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound,
			"not_found", "The requested resource does not exist.")
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict,
			"conflict", "A record with the same identifier already exists.")
	default:
		log.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError,
			"server_error", "Something went wrong.")
	}
}
