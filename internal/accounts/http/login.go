package http

import (
	"net/http"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/login. A successful login mints a fresh
// two-hour session token; the response is marked non-cacheable.
type LoginHandler struct {
	SessionService *service.SessionService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if desc := decodeJSON(r, &req); desc != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
		return
	}

	sess, err := h.SessionService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("login", "username", sess.Username)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Token:      sess.Token,
		Username:   sess.Username,
		Role:       sess.Role.String(),
		ValidFrom:  sess.ValidFrom,
		ValidUntil: sess.ValidUntil,
	})
}
