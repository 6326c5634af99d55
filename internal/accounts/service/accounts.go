package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msgmaciel/adc-2024-2025/internal/accounts/domain"
	"github.com/msgmaciel/adc-2024-2025/internal/accounts/store"
	"github.com/msgmaciel/adc-2024-2025/pkg/cryptox"
)

// AccountService implements registration, attribute and lifecycle mutations
// and the role-dependent account listing.
type AccountService struct {
	Store store.Store
	Now   func() time.Time // optional clock override for tests
}

// RegisterInput carries a self-registration request. Profile fields are
// optional; everything else is mandatory.
type RegisterInput struct {
	Username     string
	Password     string
	Confirmation string
	Email        string
	Name         string
	Phone        string
	Privacy      string

	Profile domain.Profile
}

// Register creates a new enduser account in the disabled state. The account
// cannot log in until a privileged actor activates it.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) error {
	var problems []string
	if !validUsername(in.Username) {
		problems = append(problems, "username is required and must not contain '@'")
	}
	if !validEmail(in.Email) {
		problems = append(problems, "email must contain '@'")
	}
	if in.Name == "" {
		problems = append(problems, "name is required")
	}
	if !validPhone(in.Phone) {
		problems = append(problems, "phone must contain the '+' country prefix")
	}
	privacy, ok := domain.ParsePrivacy(in.Privacy)
	if !ok {
		problems = append(problems, "privacy must be 'public' or 'private'")
	}
	problems = append(problems, passwordProblems(in.Password, in.Confirmation)...)
	if len(problems) > 0 {
		return invalid(problems...)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account := domain.Account{
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Privacy:      privacy,
		Role:         domain.RoleEnduser,
		State:        domain.StateDisabled,
		CreatedAt:    nowOrDefault(s.Now),
		Profile:      in.Profile,
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Accounts().GetByUsername(ctx, account.Username); err == nil {
			return fmt.Errorf("%w: username is taken", ErrConflict)
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("check username: %w", err)
		}
		if _, err := tx.Accounts().GetByEmail(ctx, account.Email); err == nil {
			return fmt.Errorf("%w: email is taken", ErrConflict)
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("check email: %w", err)
		}
		if err := tx.Accounts().Create(ctx, account); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("%w: username is taken", ErrConflict)
			}
			return fmt.Errorf("create account: %w", err)
		}
		return nil
	})
}

// AttributePatch carries a partial account update. A blank field is left
// untouched; which non-blank fields are accepted depends on the actor's role.
type AttributePatch struct {
	Username string
	Email    string
	Name     string

	Password     string
	Confirmation string

	Phone   string
	Privacy string
	Role    string
	State   string

	Profile domain.Profile
}

// ChangeAttributes applies a patch to the target account on behalf of the
// session's owner.
//
// Endusers may only patch their own account and never username, email, name,
// role or state. Backoffice actors may patch accounts they outrank, except
// username and email. Admins may patch anything, including re-keying the
// account under a new username. Role, username and state changes fan out to
// the target's sessions inside the same transaction.
func (s *AccountService) ChangeAttributes(ctx context.Context, token, targetUsername string, patch AttributePatch) error {
	if targetUsername == "" {
		return invalid("target username is required")
	}
	now := nowOrDefault(s.Now)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := resolveSession(ctx, tx, token, now)
		if err != nil {
			return err
		}
		if sess.Role == domain.RolePartner {
			return fmt.Errorf("%w: partners cannot change account attributes", ErrForbidden)
		}

		target, err := loadTarget(ctx, tx, targetUsername)
		if err != nil {
			return err
		}

		switch sess.Role {
		case domain.RoleEnduser:
			if target.Username != sess.Username {
				return fmt.Errorf("%w: endusers can only change their own account", ErrForbidden)
			}
			if patch.Username != "" || patch.Email != "" || patch.Name != "" {
				return fmt.Errorf("%w: endusers cannot change username, email or name", ErrForbidden)
			}
			if patch.Role != "" || patch.State != "" {
				return fmt.Errorf("%w: endusers cannot change role or state", ErrForbidden)
			}
		case domain.RoleBackoffice:
			if !sess.Role.IsAbove(target.Role) {
				return fmt.Errorf("%w: target account is not below the actor", ErrForbidden)
			}
			if patch.Username != "" || patch.Email != "" {
				return fmt.Errorf("%w: backoffice cannot change username or email", ErrForbidden)
			}
		case domain.RoleAdmin:
			// Unrestricted.
		}

		updated, err := applyPatch(sess.Role, target, patch)
		if err != nil {
			return err
		}

		oldUsername := target.Username
		renamed := updated.Username != oldUsername

		if renamed {
			if _, err := tx.Accounts().GetByUsername(ctx, updated.Username); err == nil {
				return fmt.Errorf("%w: username is taken", ErrConflict)
			} else if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("check username: %w", err)
			}
		}
		if updated.Email != target.Email {
			if _, err := tx.Accounts().GetByEmail(ctx, updated.Email); err == nil {
				return fmt.Errorf("%w: email is taken", ErrConflict)
			} else if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("check email: %w", err)
			}
		}

		if renamed {
			if err := tx.Accounts().Rename(ctx, oldUsername, updated); err != nil {
				return fmt.Errorf("rename account: %w", err)
			}
			if err := tx.Sessions().UpdateUsername(ctx, oldUsername, updated.Username); err != nil {
				return fmt.Errorf("rewrite session owners: %w", err)
			}
		} else {
			if err := tx.Accounts().Update(ctx, updated); err != nil {
				return fmt.Errorf("update account: %w", err)
			}
		}

		if updated.Role != target.Role {
			if err := tx.Sessions().UpdateRoleByUsername(ctx, updated.Username, updated.Role); err != nil {
				return fmt.Errorf("rewrite session roles: %w", err)
			}
		}
		if updated.State != target.State && updated.State != domain.StateActive {
			if err := tx.Sessions().DeleteByUsername(ctx, updated.Username); err != nil {
				return fmt.Errorf("revoke sessions: %w", err)
			}
		}
		return nil
	})
}

// applyPatch folds the non-blank patch fields into the target account,
// validating literals and enforcing the remaining role rules on role and
// state values.
func applyPatch(actor domain.Role, target domain.Account, patch AttributePatch) (domain.Account, error) {
	updated := target
	var problems []string

	if patch.Username != "" {
		if !validUsername(patch.Username) {
			problems = append(problems, "username must not contain '@'")
		}
		updated.Username = patch.Username
	}
	if patch.Email != "" {
		if !validEmail(patch.Email) {
			problems = append(problems, "email must contain '@'")
		}
		updated.Email = patch.Email
	}
	if patch.Name != "" {
		updated.Name = patch.Name
	}
	if patch.Phone != "" {
		if !validPhone(patch.Phone) {
			problems = append(problems, "phone must contain the '+' country prefix")
		}
		updated.Phone = patch.Phone
	}
	if patch.Privacy != "" {
		privacy, ok := domain.ParsePrivacy(patch.Privacy)
		if !ok {
			problems = append(problems, "privacy must be 'public' or 'private'")
		} else {
			updated.Privacy = privacy
		}
	}
	if patch.Role != "" {
		role, ok := domain.ParseRole(patch.Role)
		if !ok {
			problems = append(problems, "unknown role")
		} else if actor != domain.RoleAdmin && !actor.IsAbove(role) {
			return domain.Account{}, fmt.Errorf("%w: cannot grant a role at or above the actor's", ErrForbidden)
		} else {
			updated.Role = role
		}
	}
	if patch.State != "" {
		state, ok := domain.ParseAccountState(patch.State)
		if !ok {
			problems = append(problems, "unknown account state")
		} else if state == domain.StateSuspended && actor != domain.RoleAdmin {
			return domain.Account{}, fmt.Errorf("%w: only admins can suspend accounts", ErrForbidden)
		} else {
			updated.State = state
		}
	}
	if patch.Password != "" {
		if pw := passwordProblems(patch.Password, patch.Confirmation); len(pw) > 0 {
			problems = append(problems, pw...)
		} else {
			hash, err := cryptox.HashPassword(patch.Password)
			if err != nil {
				return domain.Account{}, fmt.Errorf("hash password: %w", err)
			}
			updated.PasswordHash = hash
		}
	}

	if patch.Profile.CitizenID != "" {
		updated.Profile.CitizenID = patch.Profile.CitizenID
	}
	if patch.Profile.FinancialID != "" {
		updated.Profile.FinancialID = patch.Profile.FinancialID
	}
	if patch.Profile.Employer != "" {
		updated.Profile.Employer = patch.Profile.Employer
	}
	if patch.Profile.Function != "" {
		updated.Profile.Function = patch.Profile.Function
	}
	if patch.Profile.Address != "" {
		updated.Profile.Address = patch.Profile.Address
	}
	if patch.Profile.EmployerFinancialID != "" {
		updated.Profile.EmployerFinancialID = patch.Profile.EmployerFinancialID
	}

	if len(problems) > 0 {
		return domain.Account{}, invalid(problems...)
	}
	return updated, nil
}

// ChangePassword lets the session owner rotate their own password. The
// current password must verify before the new one is accepted.
func (s *AccountService) ChangePassword(ctx context.Context, token, current, password, confirmation string) error {
	now := nowOrDefault(s.Now)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := resolveSession(ctx, tx, token, now)
		if err != nil {
			return err
		}

		account, err := tx.Accounts().GetByUsername(ctx, sess.Username)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: account", ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("load account: %w", err)
		}

		if err := cryptox.VerifyPassword(current, account.PasswordHash); err != nil {
			return invalid("current password is incorrect")
		}
		if problems := passwordProblems(password, confirmation); len(problems) > 0 {
			return invalid(problems...)
		}

		hash, err := cryptox.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hash
		if err := tx.Accounts().Update(ctx, account); err != nil {
			return fmt.Errorf("update account: %w", err)
		}
		return nil
	})
}

// ChangeRole moves the target account to a new role. The actor must strictly
// outrank both the target's current role and the new one, so privileges can
// never be escalated sideways or upwards. Every session of the target is
// rewritten with the new role in the same transaction.
func (s *AccountService) ChangeRole(ctx context.Context, token, targetUsername, newRole string) error {
	role, ok := domain.ParseRole(newRole)
	if !ok {
		return invalid("unknown role")
	}
	now := nowOrDefault(s.Now)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := resolveSession(ctx, tx, token, now)
		if err != nil {
			return err
		}
		if sess.Role != domain.RoleAdmin && sess.Role != domain.RoleBackoffice {
			return fmt.Errorf("%w: role changes require a privileged actor", ErrForbidden)
		}

		target, err := loadTarget(ctx, tx, targetUsername)
		if err != nil {
			return err
		}
		if !sess.Role.IsAbove(target.Role) || !sess.Role.IsAbove(role) {
			return fmt.Errorf("%w: actor must outrank both the current and the new role", ErrForbidden)
		}

		target.Role = role
		if err := tx.Accounts().Update(ctx, target); err != nil {
			return fmt.Errorf("update account: %w", err)
		}
		if err := tx.Sessions().UpdateRoleByUsername(ctx, target.Username, role); err != nil {
			return fmt.Errorf("rewrite session roles: %w", err)
		}
		return nil
	})
}

// ChangeState moves the target account to a new lifecycle state. Backoffice
// actors may toggle active/disabled on accounts they outrank; suspension is
// admin-only. Leaving the active state revokes every session of the target in
// the same transaction.
func (s *AccountService) ChangeState(ctx context.Context, token, targetUsername, newState string) error {
	state, ok := domain.ParseAccountState(newState)
	if !ok {
		return invalid("unknown account state")
	}
	now := nowOrDefault(s.Now)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := resolveSession(ctx, tx, token, now)
		if err != nil {
			return err
		}
		if sess.Role != domain.RoleAdmin && sess.Role != domain.RoleBackoffice {
			return fmt.Errorf("%w: state changes require a privileged actor", ErrForbidden)
		}

		target, err := loadTarget(ctx, tx, targetUsername)
		if err != nil {
			return err
		}
		if !sess.Role.IsAbove(target.Role) {
			return fmt.Errorf("%w: target account is not below the actor", ErrForbidden)
		}
		if state == domain.StateSuspended && sess.Role != domain.RoleAdmin {
			return fmt.Errorf("%w: only admins can suspend accounts", ErrForbidden)
		}

		target.State = state
		if err := tx.Accounts().Update(ctx, target); err != nil {
			return fmt.Errorf("update account: %w", err)
		}
		if state != domain.StateActive {
			if err := tx.Sessions().DeleteByUsername(ctx, target.Username); err != nil {
				return fmt.Errorf("revoke sessions: %w", err)
			}
		}
		return nil
	})
}

// Remove deletes the target account and every one of its sessions. The
// target may be identified by username or by email; the actor must strictly
// outrank it.
func (s *AccountService) Remove(ctx context.Context, token, targetID string) error {
	if targetID == "" {
		return invalid("target identifier is required")
	}
	now := nowOrDefault(s.Now)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := resolveSession(ctx, tx, token, now)
		if err != nil {
			return err
		}
		if sess.Role != domain.RoleAdmin && sess.Role != domain.RoleBackoffice {
			return fmt.Errorf("%w: account removal requires a privileged actor", ErrForbidden)
		}

		var target domain.Account
		if isEmailIdentifier(targetID) {
			target, err = tx.Accounts().GetByEmail(ctx, targetID)
		} else {
			target, err = tx.Accounts().GetByUsername(ctx, targetID)
		}
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: unknown target", ErrForbidden)
		}
		if err != nil {
			return fmt.Errorf("load target account: %w", err)
		}

		if !sess.Role.IsAbove(target.Role) {
			return fmt.Errorf("%w: target account is not below the actor", ErrForbidden)
		}

		if err := tx.Sessions().DeleteByUsername(ctx, target.Username); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		if err := tx.Accounts().Delete(ctx, target.Username); err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		return nil
	})
}

// AccountView is a listing entry. Summary listings only populate username,
// email and name; detailed listings carry everything but the password hash.
type AccountView struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`

	Phone     string    `json:"phone,omitempty"`
	Privacy   string    `json:"privacy,omitempty"`
	Role      string    `json:"role,omitempty"`
	State     string    `json:"state,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`

	CitizenID           string `json:"citizen_id,omitempty"`
	FinancialID         string `json:"financial_id,omitempty"`
	Employer            string `json:"employer,omitempty"`
	Function            string `json:"function,omitempty"`
	Address             string `json:"address,omitempty"`
	EmployerFinancialID string `json:"employer_financial_id,omitempty"`
}

// List returns the accounts visible to the session owner, ordered by
// username. Admins see every account in full detail, backoffice actors see
// every enduser account in full detail, endusers see a summary of active
// public accounts of their own role, and partners see nothing.
func (s *AccountService) List(ctx context.Context, token string) ([]AccountView, error) {
	now := nowOrDefault(s.Now)

	var views []AccountView
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := resolveSession(ctx, tx, token, now)
		if err != nil {
			return err
		}

		var (
			accounts []domain.Account
			detailed bool
		)
		switch sess.Role {
		case domain.RoleAdmin:
			accounts, err = tx.Accounts().List(ctx)
			detailed = true
		case domain.RoleBackoffice:
			accounts, err = tx.Accounts().ListByRole(ctx, domain.RoleEnduser)
			detailed = true
		case domain.RoleEnduser:
			accounts, err = tx.Accounts().ListVisible(ctx, sess.Role)
		default:
			return fmt.Errorf("%w: partners cannot list accounts", ErrForbidden)
		}
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}

		views = make([]AccountView, 0, len(accounts))
		for _, a := range accounts {
			views = append(views, newAccountView(a, detailed))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func newAccountView(a domain.Account, detailed bool) AccountView {
	v := AccountView{
		Username: a.Username,
		Email:    a.Email,
		Name:     a.Name,
	}
	if !detailed {
		return v
	}
	v.Phone = a.Phone
	v.Privacy = a.Privacy.String()
	v.Role = a.Role.String()
	v.State = a.State.String()
	v.CreatedAt = a.CreatedAt
	v.CitizenID = a.Profile.CitizenID
	v.FinancialID = a.Profile.FinancialID
	v.Employer = a.Profile.Employer
	v.Function = a.Profile.Function
	v.Address = a.Profile.Address
	v.EmployerFinancialID = a.Profile.EmployerFinancialID
	return v
}
