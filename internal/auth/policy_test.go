package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabrielAlencar33564/weather/internal/model"
)

func adminClaim() *Claim {
	return &Claim{Subject: "1", Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin}
}

func userClaim(sub string) *Claim {
	return &Claim{Subject: sub, Email: "user@example.com", Name: "User", Role: model.RoleUser}
}

func TestCheckAdmin(t *testing.T) {
	assert.Equal(t, Allow, CheckAdmin(adminClaim()))
	assert.Equal(t, DenyNotAdmin, CheckAdmin(userClaim("7")))
	assert.Equal(t, DenyUnauthenticated, CheckAdmin(nil))
}

func TestCheckOwnerAdminBypass(t *testing.T) {
	// admins pass regardless of which resource they target
	for _, target := range []string{"1", "2", "999"} {
		assert.Equal(t, Allow, CheckOwner(adminClaim(), target))
	}
}

func TestCheckOwnerMatch(t *testing.T) {
	assert.Equal(t, Allow, CheckOwner(userClaim("42"), "42"))
	assert.Equal(t, DenyNotOwner, CheckOwner(userClaim("42"), "43"))
}

func TestCheckOwnerFailsClosed(t *testing.T) {
	// missing claim or target id must be distinguishable from an
	// ownership denial
	assert.Equal(t, DenyUnauthenticated, CheckOwner(nil, "42"))
	assert.Equal(t, DenyUnauthenticated, CheckOwner(userClaim("42"), ""))
	assert.Equal(t, DenyUnauthenticated, CheckOwner(nil, ""))
}

func TestDecisionMessages(t *testing.T) {
	assert.Equal(t, "", Allow.Message())
	assert.Equal(t, MsgUnauthorized, DenyUnauthenticated.Message())
	assert.Equal(t, MsgAdminRequired, DenyNotAdmin.Message())
	assert.Equal(t, MsgNotOwner, DenyNotOwner.Message())
}

func TestDecisionsAreDeterministic(t *testing.T) {
	claim := userClaim("5")
	first := CheckOwner(claim, "9")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CheckOwner(claim, "9"))
	}
}
