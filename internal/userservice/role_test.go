package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleImplies(t *testing.T) {
	testCases := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleUser, RoleUser, true},
		{RoleUser, RoleAuthor, false},
		{RoleUser, RoleAdmin, false},
		{RoleAuthor, RoleUser, true},
		{RoleAuthor, RoleAuthor, true},
		{RoleAuthor, RoleAdmin, false},
		{RoleAdmin, RoleUser, true},
		{RoleAdmin, RoleAuthor, true},
		{RoleAdmin, RoleAdmin, true},
		{Role(""), RoleUser, false},
		{Role("ROLE_ROOT"), RoleUser, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role)+"/"+string(tc.required), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.role.Implies(tc.required))
		})
	}
}

func TestParseRole(t *testing.T) {
	testCases := []struct {
		in      string
		want    Role
		wantErr error
	}{
		{in: "ROLE_ADMIN", want: RoleAdmin},
		{in: "author", want: RoleAuthor},
		{in: " User ", want: RoleUser},
		{in: "ROLE_ROOT", wantErr: ErrInvalidRole},
		{in: "", wantErr: ErrInvalidRole},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRole(tc.in)
			assert.Equal(t, tc.wantErr, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUserHasRole(t *testing.T) {
	assert.False(t, AnonymousUser.HasRole(RoleUser))
	assert.True(t, AnonymousUser.IsAnonymous())

	admin := &User{Role: RoleAdmin}
	assert.False(t, admin.IsAnonymous())
	assert.True(t, admin.HasRole(RoleAuthor))
	assert.True(t, admin.IsAdmin())

	author := &User{Role: RoleAuthor}
	assert.True(t, author.HasRole(RoleUser))
	assert.False(t, author.IsAdmin())
}
