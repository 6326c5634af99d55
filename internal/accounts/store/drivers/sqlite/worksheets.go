package sqlite

import (
	"context"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
)

const worksheetColumns = `work_reference, description, target_type, award_status,
	award_date, expected_start_date, expected_completion_date, entity_account,
	awarding_entity, company_tax_id, work_status, notes`

type worksheetsRepo struct {
	db dbtx
}

func (r *worksheetsRepo) Get(ctx context.Context, workReference string) (domain.Worksheet, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+worksheetColumns+` FROM worksheets WHERE work_reference = ?`, workReference)

	var w domain.Worksheet
	var awardStatus, workStatus string
	err := row.Scan(
		&w.WorkReference, &w.Description, &w.TargetType, &awardStatus,
		&w.Award.AwardDate, &w.Award.ExpectedStartDate, &w.Award.ExpectedCompletionDate,
		&w.Award.EntityAccount, &w.Award.AwardingEntity, &w.Award.CompanyTaxID,
		&workStatus, &w.Award.Notes,
	)
	if err != nil {
		return domain.Worksheet{}, mapNotFound(err)
	}
	w.AwardStatus = domain.AwardStatus(awardStatus)
	w.Award.WorkStatus = domain.WorkStatus(workStatus)
	return w, nil
}

func (r *worksheetsRepo) Create(ctx context.Context, w domain.Worksheet) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO worksheets (`+worksheetColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		worksheetArgs(w)...)
	return mapConstraint(err)
}

func (r *worksheetsRepo) Update(ctx context.Context, w domain.Worksheet) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE worksheets SET description = ?, target_type = ?, award_status = ?,
		        award_date = ?, expected_start_date = ?, expected_completion_date = ?,
		        entity_account = ?, awarding_entity = ?, company_tax_id = ?,
		        work_status = ?, notes = ?
		 WHERE work_reference = ?`,
		w.Description, w.TargetType, string(w.AwardStatus),
		w.Award.AwardDate, w.Award.ExpectedStartDate, w.Award.ExpectedCompletionDate,
		w.Award.EntityAccount, w.Award.AwardingEntity, w.Award.CompanyTaxID,
		string(w.Award.WorkStatus), w.Award.Notes,
		w.WorkReference)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func worksheetArgs(w domain.Worksheet) []any {
	return []any{
		w.WorkReference, w.Description, w.TargetType, string(w.AwardStatus),
		w.Award.AwardDate, w.Award.ExpectedStartDate, w.Award.ExpectedCompletionDate,
		w.Award.EntityAccount, w.Award.AwardingEntity, w.Award.CompanyTaxID,
		string(w.Award.WorkStatus), w.Award.Notes,
	}
}
