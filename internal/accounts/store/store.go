package store

import (
	"context"
	"errors"
	"time"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a Tx/WithTx pair for the multi-record mutations every use
// case runs: reads, derived writes and session fan-out must all go through
// one Tx so they commit or roll back together.
type Store interface {
	Accounts() Accounts
	Sessions() Sessions
	Worksheets() Worksheets

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error, the
	// transaction is rolled back; otherwise it is committed. This is the
	// recommended entry point for use cases.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetByUsername returns the account stored under the given key.
	GetByUsername(ctx context.Context, username string) (domain.Account, error)

	// GetByEmail looks an account up via the unique email property.
	GetByEmail(ctx context.Context, email string) (domain.Account, error)

	// Create inserts a new account. Returns ErrAlreadyExists if the
	// username key is taken.
	Create(ctx context.Context, a domain.Account) error

	// Update rewrites every stored attribute of the account identified by
	// a.Username.
	Update(ctx context.Context, a domain.Account) error

	// Rename re-keys an account: the record is written under a.Username and
	// the record under oldUsername is removed. Callers run this inside a Tx
	// together with the session fan-out.
	Rename(ctx context.Context, oldUsername string, a domain.Account) error

	// Delete removes the account stored under the given key.
	Delete(ctx context.Context, username string) error

	// List returns all accounts ordered by username.
	List(ctx context.Context) ([]domain.Account, error)

	// ListByRole returns accounts with the given role, ordered by username.
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)

	// ListVisible returns active, public accounts of the given role ordered
	// by username. Used for the same-rank summary listing.
	ListVisible(ctx context.Context, role domain.Role) ([]domain.Account, error)

	// IsEmpty returns true if there are no accounts.
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	// Create stores a freshly minted session.
	Create(ctx context.Context, s domain.Session) error

	// Get returns the session stored under the given token.
	Get(ctx context.Context, token string) (domain.Session, error)

	// ListByUsername enumerates every session owned by a username.
	ListByUsername(ctx context.Context, username string) ([]domain.Session, error)

	// UpdateRoleByUsername rewrites the cached role on every session owned
	// by username. Fan-out step of a role change.
	UpdateRoleByUsername(ctx context.Context, username string, role domain.Role) error

	// UpdateUsername rewrites the owner on every session owned by
	// oldUsername. Fan-out step of an account rename.
	UpdateUsername(ctx context.Context, oldUsername, newUsername string) error

	// Delete removes a single session by token. Logout intentionally revokes
	// by owner via DeleteByUsername instead; this is the narrower primitive.
	Delete(ctx context.Context, token string) error

	// DeleteByUsername removes every session owned by a username.
	DeleteByUsername(ctx context.Context, username string) error

	// DeleteExpired removes sessions whose valid_until is before now.
	// Housekeeping only; resolution rejects expired sessions regardless.
	DeleteExpired(ctx context.Context, now time.Time) error
}

type Worksheets interface {
	// Get returns the worksheet stored under the given work reference.
	Get(ctx context.Context, workReference string) (domain.Worksheet, error)

	// Create inserts a new worksheet. Returns ErrAlreadyExists if the
	// reference is taken.
	Create(ctx context.Context, w domain.Worksheet) error

	// Update rewrites every stored attribute of the worksheet identified by
	// w.WorkReference.
	Update(ctx context.Context, w domain.Worksheet) error
}
