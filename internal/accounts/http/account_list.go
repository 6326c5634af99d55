package http

import (
	"net/http"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// AccountListHandler serves GET /v1/accounts. The shape of the result depends
// on the caller's role: full detail for privileged actors, a public summary
// for endusers, nothing for partners.
type AccountListHandler struct {
	AccountService *service.AccountService
}

func (h *AccountListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	views, err := h.AccountService.List(ctx, bearerToken(r))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, views)
}
