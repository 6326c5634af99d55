package domain

import "time"

// AccountState is the closed set of account lifecycle states.
type AccountState string

const (
	StateActive    AccountState = "active"
	StateSuspended AccountState = "suspended"
	StateDisabled  AccountState = "disabled"
)

// ParseAccountState maps a string literal to an AccountState.
func ParseAccountState(s string) (AccountState, bool) {
	switch AccountState(s) {
	case StateActive, StateSuspended, StateDisabled:
		return AccountState(s), true
	}
	return "", false
}

func (s AccountState) String() string { return string(s) }

// Privacy controls whether an account shows up in same-rank listings.
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

// ParsePrivacy maps a string literal to a Privacy setting.
func ParsePrivacy(s string) (Privacy, bool) {
	switch Privacy(s) {
	case PrivacyPublic, PrivacyPrivate:
		return Privacy(s), true
	}
	return "", false
}

func (p Privacy) String() string { return string(p) }

// Account is the source-of-truth user record, keyed by Username. Username
// and Email are each globally unique; Username never contains '@' so the
// two namespaces cannot collide on lookup-by-either.
//
// The Profile fields are optional registration extras; an empty string means
// the field was never supplied.
type Account struct {
	Username     string
	Name         string
	Email        string
	PasswordHash string // argon2id PHC encoded
	Phone        string
	Privacy      Privacy
	Role         Role
	State        AccountState
	CreatedAt    time.Time

	Profile Profile
}

// Profile carries the optional account attributes.
type Profile struct {
	CitizenID           string
	FinancialID         string
	Employer            string
	Function            string
	Address             string
	EmployerFinancialID string
}
