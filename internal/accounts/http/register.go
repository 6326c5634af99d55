package http

import (
	"net/http"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// RegisterHandler serves POST /v1/accounts, the public self-registration
// endpoint. New accounts start as disabled endusers and need activation by a
// privileged actor before they can log in.
type RegisterHandler struct {
	AccountService *service.AccountService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if desc := decodeJSON(r, &req); desc != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
		return
	}

	err := h.AccountService.Register(ctx, service.RegisterInput{
		Username:     req.Username,
		Password:     req.Password,
		Confirmation: req.Confirmation,
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		Privacy:      req.Privacy,
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

	log.Info("account registered", "username", req.Username)
	w.WriteHeader(http.StatusCreated)
}
