package http

import (
	"net/http"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// AccountStateHandler serves PUT /v1/accounts/{username}/state. Moving an
// account out of the active state revokes its sessions in the same
// transaction.
type AccountStateHandler struct {
	AccountService *service.AccountService
}

func (h *AccountStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	target := r.PathValue("username")

	var req StateRequest
	if desc := decodeJSON(r, &req); desc != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
		return
	}

	if err := h.AccountService.ChangeState(ctx, bearerToken(r), target, req.State); err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("account state changed", "target", target, "state", req.State)
	w.WriteHeader(http.StatusNoContent)
}
