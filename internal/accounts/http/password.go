package http

import (
	"net/http"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// PasswordHandler serves POST /v1/password, the self-service password
// rotation. The current password must verify before the new one is accepted.
type PasswordHandler struct {
	AccountService *service.AccountService
}

func (h *PasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req PasswordRequest
	if desc := decodeJSON(r, &req); desc != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
		return
	}

	err := h.AccountService.ChangePassword(ctx, bearerToken(r),
		req.CurrentPassword, req.NewPassword, req.Confirmation)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
