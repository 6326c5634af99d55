package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store"
	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const accountColumns = `username, name, email, password_hash, phone, privacy, role, state, created_at,
	citizen_id, financial_id, employer, function, address, employer_financial_id`

type accountsRepo struct {
	db dbtx
}

func (r *accountsRepo) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username)
	return scanAccount(row)
}

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		accountArgs(a)...)
	return mapConstraint(err)
}

func (r *accountsRepo) Update(ctx context.Context, a domain.Account) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, email = ?, password_hash = ?, phone = ?, privacy = ?,
		        role = ?, state = ?, created_at = ?, citizen_id = ?, financial_id = ?,
		        employer = ?, function = ?, address = ?, employer_financial_id = ?
		 WHERE username = ?`,
		a.Name, a.Email, a.PasswordHash, a.Phone, string(a.Privacy),
		string(a.Role), string(a.State), a.CreatedAt, a.Profile.CitizenID, a.Profile.FinancialID,
		a.Profile.Employer, a.Profile.Function, a.Profile.Address, a.Profile.EmployerFinancialID,
		a.Username)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

// Rename re-keys the account in a single UPDATE. An insert-then-delete
// re-key would trip the UNIQUE email constraint whenever the email stays the
// same, since SQLite enforces UNIQUE per statement. Must run inside the
// caller's transaction together with the session fan-out so a failure leaves
// the old key intact.
func (r *accountsRepo) Rename(ctx context.Context, oldUsername string, a domain.Account) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET username = ?, name = ?, email = ?, password_hash = ?, phone = ?,
		        privacy = ?, role = ?, state = ?, created_at = ?, citizen_id = ?,
		        financial_id = ?, employer = ?, function = ?, address = ?, employer_financial_id = ?
		 WHERE username = ?`,
		append(accountArgs(a), oldUsername)...)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *accountsRepo) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE username = ?`, username)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) List(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY username`)
}

func (r *accountsRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	return r.list(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE role = ? ORDER BY username`,
		string(role))
}

func (r *accountsRepo) ListVisible(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	return r.list(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE role = ? AND privacy = ? AND state = ?
		 ORDER BY username`,
		string(role), string(domain.PrivacyPublic), string(domain.StateActive))
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *accountsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func accountArgs(a domain.Account) []any {
	return []any{
		a.Username, a.Name, a.Email, a.PasswordHash, a.Phone,
		string(a.Privacy), string(a.Role), string(a.State), a.CreatedAt,
		a.Profile.CitizenID, a.Profile.FinancialID, a.Profile.Employer,
		a.Profile.Function, a.Profile.Address, a.Profile.EmployerFinancialID,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	a, err := scanAccountRow(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func scanAccountRow(row rowScanner) (domain.Account, error) {
	var a domain.Account
	var privacy, role, state string
	err := row.Scan(
		&a.Username, &a.Name, &a.Email, &a.PasswordHash, &a.Phone,
		&privacy, &role, &state, &a.CreatedAt,
		&a.Profile.CitizenID, &a.Profile.FinancialID, &a.Profile.Employer,
		&a.Profile.Function, &a.Profile.Address, &a.Profile.EmployerFinancialID,
	)
	if err != nil {
		return domain.Account{}, err
	}
	a.Privacy = domain.Privacy(privacy)
	a.Role = domain.Role(role)
	a.State = domain.AccountState(state)
	return a, nil
}

// requireRow converts a zero-row UPDATE/DELETE into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// mapConstraint converts sqlite uniqueness violations into ErrAlreadyExists.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var serr *sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return store.ErrAlreadyExists
		}
	}
	return err
}
