package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store"
)

// WorksheetService implements worksheet creation and the two-sided update
// flow: backoffice actors maintain the award details, the assigned partner
// reports execution progress.
type WorksheetService struct {
	Store store.Store
	Now   func() time.Time // optional clock override for tests
}

// WorksheetInput carries a worksheet creation request. The award fields are
// mandatory iff AwardStatus is "awarded".
type WorksheetInput struct {
	WorkReference string
	Description   string
	TargetType    string
	AwardStatus   string

	AwardDate              string
	ExpectedStartDate      string
	ExpectedCompletionDate string
	EntityAccount          string
	AwardingEntity         string
	CompanyTaxID           string
	WorkStatus             string
	Notes                  string
}

// Create registers a new worksheet. Any authenticated actor may create a
// not-awarded sheet; creating an awarded one, award details included, is
// restricted to backoffice actors.
func (s *WorksheetService) Create(ctx context.Context, token string, in WorksheetInput) error {
	var problems []string
	if in.WorkReference == "" {
		problems = append(problems, "work reference is required")
	}
	if in.Description == "" {
		problems = append(problems, "description is required")
	}
	if in.TargetType == "" {
		problems = append(problems, "target type is required")
	}
	awardStatus, ok := domain.ParseAwardStatus(in.AwardStatus)
	if !ok {
		problems = append(problems, "award status must be 'awarded' or 'not awarded'")
	}

	sheet := domain.Worksheet{
		WorkReference: in.WorkReference,
		Description:   in.Description,
		TargetType:    in.TargetType,
		AwardStatus:   awardStatus,
	}

	if awardStatus == domain.Awarded {
		if in.AwardDate == "" || in.ExpectedStartDate == "" || in.ExpectedCompletionDate == "" ||
			in.EntityAccount == "" || in.AwardingEntity == "" || in.CompanyTaxID == "" {
			problems = append(problems, "awarded worksheets require all award fields")
		}
		workStatus, ok := domain.ParseWorkStatus(in.WorkStatus)
		if !ok {
			problems = append(problems, "work status must be 'not started', 'in progress' or 'completed'")
		}
		sheet.Award = domain.AwardDetails{
			AwardDate:              in.AwardDate,
			ExpectedStartDate:      in.ExpectedStartDate,
			ExpectedCompletionDate: in.ExpectedCompletionDate,
			EntityAccount:          in.EntityAccount,
			AwardingEntity:         in.AwardingEntity,
			CompanyTaxID:           in.CompanyTaxID,
			WorkStatus:             workStatus,
			Notes:                  in.Notes,
		}
	}
	if len(problems) > 0 {
		return invalid(problems...)
	}

	now := nowOrDefault(s.Now)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := resolveSession(ctx, tx, token, now)
		if err != nil {
			return err
		}
		if sheet.AwardStatus == domain.Awarded && sess.Role != domain.RoleBackoffice {
			return fmt.Errorf("%w: only backoffice actors create awarded worksheets", ErrForbidden)
		}

		if err := tx.Worksheets().Create(ctx, sheet); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("%w: work reference is taken", ErrConflict)
			}
			return fmt.Errorf("create worksheet: %w", err)
		}
		return nil
	})
}

// WorksheetPatch carries a partial worksheet update keyed by WorkReference.
// Blank fields are left untouched.
type WorksheetPatch struct {
	WorkReference string

	AwardDate              string
	ExpectedStartDate      string
	ExpectedCompletionDate string
	EntityAccount          string
	AwardingEntity         string
	CompanyTaxID           string

	WorkStatus string
	Notes      string
}

// Update patches an existing worksheet. Award-detail fields may only be
// touched by backoffice actors, and only on awarded sheets. Work status and
// notes may be set by backoffice actors or by the partner assigned as the
// sheet's entity account.
func (s *WorksheetService) Update(ctx context.Context, token string, patch WorksheetPatch) error {
	if patch.WorkReference == "" {
		return invalid("work reference is required")
	}
	now := nowOrDefault(s.Now)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := resolveSession(ctx, tx, token, now)
		if err != nil {
			return err
		}

		sheet, err := tx.Worksheets().Get(ctx, patch.WorkReference)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: worksheet", ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("load worksheet: %w", err)
		}

		touchesAward := patch.AwardDate != "" || patch.ExpectedStartDate != "" ||
			patch.ExpectedCompletionDate != "" || patch.EntityAccount != "" ||
			patch.AwardingEntity != "" || patch.CompanyTaxID != ""
		touchesProgress := patch.WorkStatus != "" || patch.Notes != ""

		if sheet.AwardStatus != domain.Awarded && (touchesAward || touchesProgress) {
			return invalid("worksheet is not awarded")
		}

		if touchesAward && sess.Role != domain.RoleBackoffice {
			return fmt.Errorf("%w: only backoffice actors change award details", ErrForbidden)
		}
		if touchesProgress && sess.Role != domain.RoleBackoffice {
			if sess.Role != domain.RolePartner || sess.Username != sheet.Award.EntityAccount {
				return fmt.Errorf("%w: only the assigned partner reports progress", ErrForbidden)
			}
		}

		if patch.AwardDate != "" {
			sheet.Award.AwardDate = patch.AwardDate
		}
		if patch.ExpectedStartDate != "" {
			sheet.Award.ExpectedStartDate = patch.ExpectedStartDate
		}
		if patch.ExpectedCompletionDate != "" {
			sheet.Award.ExpectedCompletionDate = patch.ExpectedCompletionDate
		}
		if patch.EntityAccount != "" {
			sheet.Award.EntityAccount = patch.EntityAccount
		}
		if patch.AwardingEntity != "" {
			sheet.Award.AwardingEntity = patch.AwardingEntity
		}
		if patch.CompanyTaxID != "" {
			sheet.Award.CompanyTaxID = patch.CompanyTaxID
		}
		if patch.WorkStatus != "" {
			workStatus, ok := domain.ParseWorkStatus(patch.WorkStatus)
			if !ok {
				return invalid("work status must be 'not started', 'in progress' or 'completed'")
			}
			sheet.Award.WorkStatus = workStatus
		}
		if patch.Notes != "" {
			sheet.Award.Notes = patch.Notes
		}

		if err := tx.Worksheets().Update(ctx, sheet); err != nil {
			return fmt.Errorf("update worksheet: %w", err)
		}
		return nil
	})
}
