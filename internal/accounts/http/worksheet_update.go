package http

import (
	"net/http"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/service"
	"github.com/msgmaciel/adc-2024-2025/pkg/httpx"
	"github.com/msgmaciel/adc-2024-2025/pkg/slogx"
)

// WorksheetUpdateHandler serves PATCH /v1/worksheets/{ref}. Backoffice actors
// maintain award details; the assigned partner reports work status and notes.
type WorksheetUpdateHandler struct {
	WorksheetService *service.WorksheetService
}

func (h *WorksheetUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	ref := r.PathValue("ref")

	var req WorksheetUpdateRequest
	if desc := decodeJSON(r, &req); desc != "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
		return
	}

	err := h.WorksheetService.Update(ctx, bearerToken(r), service.WorksheetPatch{
		WorkReference:          ref,
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

	log.Info("worksheet updated", "work_reference", ref)
	w.WriteHeader(http.StatusNoContent)
}
