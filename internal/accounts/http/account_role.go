package http

import (
	"net/http"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// AccountRoleHandler serves PUT /v1/accounts/{username}/role. The caller must
// strictly outrank both the target's current role and the new one.
type AccountRoleHandler struct {
	AccountService *service.AccountService
}

func (h *AccountRoleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	target := r.PathValue("username")

	var req RoleRequest
	if desc := decodeJSON(r, &req); desc != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
		return
	}

	if err := h.AccountService.ChangeRole(ctx, bearerToken(r), target, req.Role); err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("account role changed", "target", target, "role", req.Role)
	w.WriteHeader(http.StatusNoContent)
}
