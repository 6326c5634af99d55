package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, literal := range []string{"enduser", "partner", "backoffice", "admin"} {
		role, ok := ParseRole(literal)
		require.True(t, ok, literal)
		require.Equal(t, literal, role.String())
	}

	for _, literal := range []string{"", "ADMIN", "root", "superuser"} {
		_, ok := ParseRole(literal)
		require.False(t, ok, literal)
	}
}

func TestIsAboveIsStrict(t *testing.T) {
	t.Parallel()

	cases := []struct {
		actor  Role
		target Role
		above  bool
	}{
		{RoleAdmin, RoleBackoffice, true},
		{RoleAdmin, RolePartner, true},
		{RoleAdmin, RoleEnduser, true},
		{RoleAdmin, RoleAdmin, false},

		{RoleBackoffice, RoleEnduser, true},
		{RoleBackoffice, RolePartner, true},
		{RoleBackoffice, RoleBackoffice, false},
		{RoleBackoffice, RoleAdmin, false},

		// Enduser and partner share the bottom rank: neither is above the
		// other, and neither is above itself.
		{RoleEnduser, RolePartner, false},
		{RolePartner, RoleEnduser, false},
		{RoleEnduser, RoleEnduser, false},
		{RolePartner, RolePartner, false},

		{RoleEnduser, RoleAdmin, false},
		{RolePartner, RoleBackoffice, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.above, tc.actor.IsAbove(tc.target),
			"%s above %s", tc.actor, tc.target)
	}
}

func TestSessionExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sess := NewSession("tok", "alice", RoleEnduser, now)

	require.Equal(t, now, sess.ValidFrom)
	require.Equal(t, now.Add(SessionTTL), sess.ValidUntil)

	require.False(t, sess.ExpiredAt(now))
	require.False(t, sess.ExpiredAt(now.Add(SessionTTL)))
	require.True(t, sess.ExpiredAt(now.Add(SessionTTL+1)))
}
