package domain

// Role is the closed set of account roles. Values are the wire/storage
// literals; parse free-form input with ParseRole.
type Role string

const (
	RoleEnduser    Role = "enduser"
	RolePartner    Role = "partner"
	RoleBackoffice Role = "backoffice"
	RoleAdmin      Role = "admin"
)

// ParseRole maps a string literal to a Role. The boolean reports whether the
// input named a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEnduser, RolePartner, RoleBackoffice, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// rank orders roles for permission decisions. Enduser and partner share the
// bottom rank on purpose: neither is ever above the other.
func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleBackoffice:
		return 2
	default:
		return 1
	}
}

// IsAbove reports whether r outranks other, strictly. Equal rank is never
// above, so a backoffice cannot act on another backoffice and no role can
// act on itself.
func (r Role) IsAbove(other Role) bool {
	return r.rank() > other.rank()
}

func (r Role) String() string { return string(r) }
