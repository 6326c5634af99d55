package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
)

func awardedWorksheet(ref, entityAccount string) WorksheetInput {
	return WorksheetInput{
		WorkReference:          ref,
		Description:            "forest clearing around the power line",
		TargetType:             "property",
		AwardStatus:            "awarded",
		AwardDate:              "2025-02-01",
		ExpectedStartDate:      "2025-03-01",
		ExpectedCompletionDate: "2025-06-01",
		EntityAccount:          entityAccount,
		AwardingEntity:         "Municipality",
		CompanyTaxID:           "509876543",
		WorkStatus:             "not started",
	}
}

func TestWorksheetCreate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := newTestClock()
	seedAccount(t, st, "gbo", domain.RoleBackoffice, domain.StateActive)
	seedAccount(t, st, "alice", domain.RoleEnduser, domain.StateActive)

	gboSess := loginAs(t, st, clock, "gbo")
	aliceSess := loginAs(t, st, clock, "alice")

	svc := &WorksheetService{Store: st, Now: clock.Now}

	t.Run("any actor may create a not-awarded sheet", func(t *testing.T) {
		err := svc.Create(ctx, aliceSess.Token, WorksheetInput{
			WorkReference: "ws-1",
			Description:   "trail maintenance",
			TargetType:    "public",
			AwardStatus:   "not awarded",
		})
		require.NoError(t, err)

		sheet, err := st.Worksheets().Get(ctx, "ws-1")
		require.NoError(t, err)
		require.Equal(t, domain.NotAwarded, sheet.AwardStatus)
		require.Empty(t, sheet.Award.EntityAccount)
	})

	t.Run("awarded sheets are backoffice only", func(t *testing.T) {
		err := svc.Create(ctx, aliceSess.Token, awardedWorksheet("ws-2", "partner"))
		require.ErrorIs(t, err, ErrForbidden)

		require.NoError(t, svc.Create(ctx, gboSess.Token, awardedWorksheet("ws-2", "partner")))

		sheet, err := st.Worksheets().Get(ctx, "ws-2")
		require.NoError(t, err)
		require.Equal(t, domain.Awarded, sheet.AwardStatus)
		require.Equal(t, "partner", sheet.Award.EntityAccount)
		require.Equal(t, domain.WorkNotStarted, sheet.Award.WorkStatus)
	})

	t.Run("awarded sheets require every award field", func(t *testing.T) {
		in := awardedWorksheet("ws-3", "partner")
		in.AwardingEntity = ""
		err := svc.Create(ctx, gboSess.Token, in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("duplicate references conflict", func(t *testing.T) {
		err := svc.Create(ctx, gboSess.Token, awardedWorksheet("ws-2", "partner"))
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("requires a live session", func(t *testing.T) {
		err := svc.Create(ctx, "no-such-token", awardedWorksheet("ws-4", "partner"))
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestWorksheetUpdate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	clock := newTestClock()
	seedAccount(t, st, "gbo", domain.RoleBackoffice, domain.StateActive)
	seedAccount(t, st, "partner", domain.RolePartner, domain.StateActive)
	seedAccount(t, st, "rival", domain.RolePartner, domain.StateActive)

	gboSess := loginAs(t, st, clock, "gbo")
	partnerSess := loginAs(t, st, clock, "partner")
	rivalSess := loginAs(t, st, clock, "rival")

	svc := &WorksheetService{Store: st, Now: clock.Now}
	require.NoError(t, svc.Create(ctx, gboSess.Token, awardedWorksheet("ws-1", "partner")))
	require.NoError(t, svc.Create(ctx, gboSess.Token, WorksheetInput{
		WorkReference: "ws-bare",
		Description:   "unassigned survey",
		TargetType:    "public",
		AwardStatus:   "not awarded",
	}))

	t.Run("assigned partner reports progress", func(t *testing.T) {
		err := svc.Update(ctx, partnerSess.Token, WorksheetPatch{
			WorkReference: "ws-1",
			WorkStatus:    "in progress",
			Notes:         "machinery on site",
		})
		require.NoError(t, err)

		sheet, err := st.Worksheets().Get(ctx, "ws-1")
		require.NoError(t, err)
		require.Equal(t, domain.WorkInProgress, sheet.Award.WorkStatus)
		require.Equal(t, "machinery on site", sheet.Award.Notes)
	})

	t.Run("other partners may not", func(t *testing.T) {
		err := svc.Update(ctx, rivalSess.Token, WorksheetPatch{
			WorkReference: "ws-1",
			WorkStatus:    "completed",
		})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("award details are backoffice only", func(t *testing.T) {
		err := svc.Update(ctx, partnerSess.Token, WorksheetPatch{
			WorkReference:  "ws-1",
			AwardingEntity: "Someone Else",
		})
		require.ErrorIs(t, err, ErrForbidden)

		err = svc.Update(ctx, gboSess.Token, WorksheetPatch{
			WorkReference:          "ws-1",
			ExpectedCompletionDate: "2025-07-01",
		})
		require.NoError(t, err)
	})

	t.Run("invalid work status literal", func(t *testing.T) {
		err := svc.Update(ctx, partnerSess.Token, WorksheetPatch{
			WorkReference: "ws-1",
			WorkStatus:    "almost done",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("not-awarded sheets have nothing to patch", func(t *testing.T) {
		err := svc.Update(ctx, gboSess.Token, WorksheetPatch{
			WorkReference: "ws-bare",
			WorkStatus:    "in progress",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("unknown reference is not found", func(t *testing.T) {
		err := svc.Update(ctx, gboSess.Token, WorksheetPatch{
			WorkReference: "ws-ghost",
			WorkStatus:    "completed",
		})
		require.ErrorIs(t, err, ErrNotFound)
	})
}
