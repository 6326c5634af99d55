package http

import (
	"net/http"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// AccountAttributesHandler serves PATCH /v1/accounts/{username}. Which of the
// patch fields are accepted depends on the caller's role relative to the
// target account.
type AccountAttributesHandler struct {
	AccountService *service.AccountService
}

func (h *AccountAttributesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	target := r.PathValue("username")

	var req AttributesRequest
	if desc := decodeJSON(r, &req); desc != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
		return
	}

	err := h.AccountService.ChangeAttributes(ctx, bearerToken(r), target, service.AttributePatch{
		Username:     req.Username,
		Email:        req.Email,
		Name:         req.Name,
		Password:     req.Password,
		Confirmation: req.Confirmation,
		Phone:        req.Phone,
		Privacy:      req.Privacy,
		Role:         req.Role,
		State:        req.State,
		Profile: domain.Profile{
			CitizenID:           req.CitizenID,
			FinancialID:         req.FinancialID,
			Employer:            req.Employer,
			Function:            req.Function,
			Address:             req.Address,
			EmployerFinancialID: req.EmployerFinancialID,
		},
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("account attributes changed", "target", target)
	w.WriteHeader(http.StatusNoContent)
}
