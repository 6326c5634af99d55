package http

import (
	"net/http"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// AccountRemoveHandler serves DELETE /v1/accounts/{target}. The target path
// segment may be a username or an email address; the account and all of its
// sessions are removed together.
type AccountRemoveHandler struct {
	AccountService *service.AccountService
}

func (h *AccountRemoveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	target := r.PathValue("target")

	if err := h.AccountService.Remove(ctx, bearerToken(r), target); err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("account removed", "target", target)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
