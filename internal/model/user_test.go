package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRolesColumnRoundTrip(t *testing.T) {
	roles := []string{RoleUser, RoleAdmin}
	require.Equal(t, "USER,ADMIN", JoinRoles(roles))
	require.Equal(t, roles, SplitRoles("USER,ADMIN"))

	require.Equal(t, []string{RoleUser}, SplitRoles(" USER , "))
	require.Empty(t, SplitRoles(""))
}

func TestHasRole(t *testing.T) {
	u := &User{Roles: []string{RoleUser}}
	require.True(t, u.HasRole("USER"))
	require.True(t, u.HasRole("user"))
	require.False(t, u.HasRole(RoleAdmin))
}
