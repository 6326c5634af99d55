package sqlite

import (
	"context"
	"time"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
)

const sessionColumns = `token, username, role, valid_from, valid_until`

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) Create(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?)`,
		s.Token, s.Username, string(s.Role), s.ValidFrom, s.ValidUntil)
	return mapConstraint(err)
}

func (r *sessionsRepo) Get(ctx context.Context, token string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE token = ?`, token)

	var s domain.Session
	var role string
	if err := row.Scan(&s.Token, &s.Username, &role, &s.ValidFrom, &s.ValidUntil); err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.Role = domain.Role(role)
	return s, nil
}

func (r *sessionsRepo) ListByUsername(ctx context.Context, username string) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE username = ? ORDER BY valid_from`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		var s domain.Session
		var role string
		if err := rows.Scan(&s.Token, &s.Username, &role, &s.ValidFrom, &s.ValidUntil); err != nil {
			return nil, err
		}
		s.Role = domain.Role(role)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sessionsRepo) UpdateRoleByUsername(ctx context.Context, username string, role domain.Role) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET role = ? WHERE username = ?`, string(role), username)
	return err
}

func (r *sessionsRepo) UpdateUsername(ctx context.Context, oldUsername, newUsername string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET username = ? WHERE username = ?`, newUsername, oldUsername)
	return err
}

func (r *sessionsRepo) Delete(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *sessionsRepo) DeleteByUsername(ctx context.Context, username string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE username = ?`, username)
	return err
}

func (r *sessionsRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE valid_until < ?`, now)
	return err
}
