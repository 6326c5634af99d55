package http

import (
	"net/http"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// WorksheetCreateHandler serves POST /v1/worksheets. Creating an awarded
// sheet, award details included, is restricted to backoffice actors.
type WorksheetCreateHandler struct {
	WorksheetService *service.WorksheetService
}

func (h *WorksheetCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req WorksheetCreateRequest
	if desc := decodeJSON(r, &req); desc != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
		return
	}

	err := h.WorksheetService.Create(ctx, bearerToken(r), service.WorksheetInput{
		WorkReference:          req.WorkReference,
		Description:            req.Description,
		TargetType:             req.TargetType,
		AwardStatus:            req.AwardStatus,
		AwardDate:              req.AwardDate,
		ExpectedStartDate:      req.ExpectedStartDate,
		ExpectedCompletionDate: req.ExpectedCompletionDate,
		EntityAccount:          req.EntityAccount,
		AwardingEntity:         req.AwardingEntity,
		CompanyTaxID:           req.CompanyTaxID,
		WorkStatus:             req.WorkStatus,
		Notes:                  req.Notes,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	log.Info("worksheet created", "work_reference", req.WorkReference)
	w.WriteHeader(http.StatusCreated)
}
