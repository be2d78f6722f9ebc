package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"user", "farmer", "admin"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, Role(s), role)
	}

	for _, s := range []string{"", "superadmin", "Farmer", "USER", "vendeur"} {
		_, err := ParseRole(s)
		assert.Error(t, err, "valeur %q", s)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		status, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), status)
	}

	for _, s := range []string{"", "Approved", "deleted", "en_attente"} {
		_, err := ParseStatus(s)
		assert.Error(t, err, "valeur %q", s)
	}
}

func TestCanLogin(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		status Status
		want   bool
	}{
		{"consommateur approuvé", RoleUser, StatusApproved, true},
		{"admin", RoleAdmin, StatusApproved, true},
		{"fermier approuvé", RoleFarmer, StatusApproved, true},
		{"fermier en attente", RoleFarmer, StatusPending, false},
		{"fermier rejeté", RoleFarmer, StatusRejected, false},
		{"rôle vide", Role(""), StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Role: tt.role, Status: tt.status}
			assert.Equal(t, tt.want, u.CanLogin())
		})
	}
}
